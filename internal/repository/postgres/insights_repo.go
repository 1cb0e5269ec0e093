package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-legal/insights-backend/internal/models"
	repo "github.com/meridian-legal/insights-backend/internal/repository"
)

type insightsRepo struct{ pool *pgxpool.Pool }

const insightCols = `id, title, slug, content, excerpt, image_url, image_type, category, author, status, views, published_at, created_at`

func scanInsight(row pgx.Row) (models.Insight, error) {
	var in models.Insight
	err := row.Scan(&in.ID, &in.Title, &in.Slug, &in.Content, &in.Excerpt,
		&in.ImageURL, &in.ImageType, &in.Category, &in.Author, &in.Status,
		&in.Views, &in.PublishedAt, &in.CreatedAt)
	return in, mapErr(err)
}

func (r *insightsRepo) ListPage(ctx context.Context, page, pageSize int, f repo.InsightFilter) (repo.InsightPage, error) {
	page, pageSize = normalizePage(page, pageSize)

	var conds []string
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status=$%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category=$%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM insights`+where, args...).Scan(&total); err != nil {
		return repo.InsightPage{}, mapErr(err)
	}

	args = append(args, pageSize, (page-1)*pageSize)
	q := fmt.Sprintf(`SELECT %s FROM insights%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		insightCols, where, len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return repo.InsightPage{}, mapErr(err)
	}
	defer rows.Close()

	items, err := collectInsights(rows)
	if err != nil {
		return repo.InsightPage{}, err
	}
	return repo.InsightPage{
		Items:      items,
		Total:      total,
		Page:       page,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (r *insightsRepo) GetByID(ctx context.Context, id int64) (models.Insight, error) {
	return scanInsight(r.pool.QueryRow(ctx,
		`SELECT `+insightCols+` FROM insights WHERE id=$1`, id))
}

func (r *insightsRepo) GetBySlug(ctx context.Context, slug string) (models.Insight, error) {
	return scanInsight(r.pool.QueryRow(ctx,
		`SELECT `+insightCols+` FROM insights WHERE slug=$1`, slug))
}

func (r *insightsRepo) Create(ctx context.Context, in models.Insight) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO insights (title, slug, content, excerpt, image_url, image_type, category, author, status, published_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 RETURNING id`,
		in.Title, in.Slug, in.Content, in.Excerpt, in.ImageURL, in.ImageType,
		in.Category, in.Author, in.Status, in.PublishedAt,
	).Scan(&id)
	return id, mapErr(err)
}

func (r *insightsRepo) Update(ctx context.Context, in models.Insight) (int64, error) {
	// published_at is stamped the first time status reaches published and
	// is never reset or overwritten after that.
	tag, err := r.pool.Exec(ctx,
		`UPDATE insights
		    SET title=$2, slug=$3, content=$4, excerpt=$5, image_url=$6,
		        image_type=$7, category=$8, author=$9, status=$10,
		        published_at = CASE
		            WHEN $10 = 'published' AND published_at IS NULL THEN now()
		            ELSE published_at
		        END
		  WHERE id=$1`,
		in.ID, in.Title, in.Slug, in.Content, in.Excerpt, in.ImageURL,
		in.ImageType, in.Category, in.Author, in.Status,
	)
	if err != nil {
		return 0, mapErr(err)
	}
	return tag.RowsAffected(), nil
}

func (r *insightsRepo) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM insights WHERE id=$1`, id)
	if err != nil {
		return 0, mapErr(err)
	}
	return tag.RowsAffected(), nil
}

func (r *insightsRepo) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE insights SET views = views + 1 WHERE id=$1`, id)
	return mapErr(err)
}

func (r *insightsRepo) ListRecent(ctx context.Context, limit int) ([]models.Insight, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+insightCols+` FROM insights WHERE status='published' ORDER BY published_at DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	return collectInsights(rows)
}

func (r *insightsRepo) Search(ctx context.Context, term string, page, pageSize int) (repo.InsightPage, error) {
	page, pageSize = normalizePage(page, pageSize)
	pattern := "%" + term + "%"

	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM insights
		  WHERE (title ILIKE $1 OR content ILIKE $1 OR excerpt ILIKE $1) AND status='published'`,
		pattern).Scan(&total); err != nil {
		return repo.InsightPage{}, mapErr(err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+insightCols+` FROM insights
		  WHERE (title ILIKE $1 OR content ILIKE $1 OR excerpt ILIKE $1) AND status='published'
		  ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		pattern, pageSize, (page-1)*pageSize)
	if err != nil {
		return repo.InsightPage{}, mapErr(err)
	}
	defer rows.Close()

	items, err := collectInsights(rows)
	if err != nil {
		return repo.InsightPage{}, err
	}
	return repo.InsightPage{
		Items:      items,
		Total:      total,
		Page:       page,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func collectInsights(rows pgx.Rows) ([]models.Insight, error) {
	var out []models.Insight
	for rows.Next() {
		in, err := scanInsight(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, mapErr(rows.Err())
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return page, pageSize
}

func totalPages(total int64, pageSize int) int64 {
	return (total + int64(pageSize) - 1) / int64(pageSize)
}
