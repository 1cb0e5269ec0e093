package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/meridian-legal/insights-backend/internal/repository"
)

type Repositories struct {
	Insights repo.Insights
	Admins   repo.Admins
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Insights: &insightsRepo{pool},
		Admins:   &adminsRepo{pool},
	}
}

// mapErr translates driver errors into the repository sentinels so nothing
// above this package has to know about pgx.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repo.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return repo.ErrConflict
	}
	return err
}
