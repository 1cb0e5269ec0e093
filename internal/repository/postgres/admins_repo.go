package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-legal/insights-backend/internal/models"
	repo "github.com/meridian-legal/insights-backend/internal/repository"
)

type adminsRepo struct{ pool *pgxpool.Pool }

const adminCols = `id, username, email, password_hash, created_at`

func (r *adminsRepo) get(ctx context.Context, where string, arg any) (models.Admin, error) {
	var a models.Admin
	err := r.pool.QueryRow(ctx,
		`SELECT `+adminCols+` FROM admins WHERE `+where, arg,
	).Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt)
	return a, mapErr(err)
}

func (r *adminsRepo) GetByEmail(ctx context.Context, email string) (models.Admin, error) {
	return r.get(ctx, `email=$1`, email)
}

func (r *adminsRepo) GetByUsername(ctx context.Context, username string) (models.Admin, error) {
	return r.get(ctx, `username=$1`, username)
}

func (r *adminsRepo) GetByID(ctx context.Context, id int64) (models.Admin, error) {
	a, err := r.get(ctx, `id=$1`, id)
	if err != nil {
		return models.Admin{}, err
	}
	a.PasswordHash = ""
	return a, nil
}

func (r *adminsRepo) Create(ctx context.Context, username, email, passwordHash string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO admins (username, email, password_hash) VALUES ($1,$2,$3) RETURNING id`,
		username, email, passwordHash,
	).Scan(&id)
	return id, mapErr(err)
}

func (r *adminsRepo) Update(ctx context.Context, id int64, username, email, passwordHash *string) (int64, error) {
	var sets []string
	args := []any{id}
	add := func(col string, v *string) {
		if v != nil {
			args = append(args, *v)
			sets = append(sets, fmt.Sprintf("%s=$%d", col, len(args)))
		}
	}
	add("username", username)
	add("email", email)
	add("password_hash", passwordHash)
	if len(sets) == 0 {
		return 0, nil
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE admins SET `+strings.Join(sets, ", ")+` WHERE id=$1`, args...)
	if err != nil {
		return 0, mapErr(err)
	}
	return tag.RowsAffected(), nil
}

var _ repo.Admins = (*adminsRepo)(nil)
