package repository

import (
	"context"
	"errors"

	"github.com/meridian-legal/insights-backend/internal/models"
)

var (
	// ErrNotFound is returned when an id, slug or email resolves to no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned on unique-constraint violations (slug,
	// username, email).
	ErrConflict = errors.New("already exists")
)

// InsightPage is one page of a filtered listing.
type InsightPage struct {
	Items      []models.Insight
	Total      int64
	Page       int
	TotalPages int64
}

type InsightFilter struct {
	Status   models.Status
	Category models.Category
}

type Insights interface {
	// ListPage returns insights ordered by creation time descending,
	// restricted by the non-empty filter fields.
	ListPage(ctx context.Context, page, pageSize int, f InsightFilter) (InsightPage, error)
	GetByID(ctx context.Context, id int64) (models.Insight, error)
	GetBySlug(ctx context.Context, slug string) (models.Insight, error)
	// Create assigns id and created_at; published_at is stored as given.
	Create(ctx context.Context, in models.Insight) (int64, error)
	// Update rewrites the mutable columns. published_at is set server-side
	// the first time status lands on published and never overwritten after.
	Update(ctx context.Context, in models.Insight) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	// IncrementViews bumps the counter atomically at the storage layer.
	IncrementViews(ctx context.Context, id int64) error
	// ListRecent returns published insights by published_at descending.
	ListRecent(ctx context.Context, limit int) ([]models.Insight, error)
	// Search matches term case-insensitively against title, content and
	// excerpt of published insights.
	Search(ctx context.Context, term string, page, pageSize int) (InsightPage, error)
}

type Admins interface {
	GetByEmail(ctx context.Context, email string) (models.Admin, error)
	GetByUsername(ctx context.Context, username string) (models.Admin, error)
	GetByID(ctx context.Context, id int64) (models.Admin, error)
	// Create stores the already-hashed password, never the plaintext.
	Create(ctx context.Context, username, email, passwordHash string) (int64, error)
	// Update applies only the present patch fields; the password arrives
	// pre-hashed.
	Update(ctx context.Context, id int64, username, email, passwordHash *string) (int64, error)
}
