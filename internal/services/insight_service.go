package services

import (
	"context"
	"errors"
	"log/slog"
	"path"
	"time"

	"github.com/meridian-legal/insights-backend/internal/metrics"
	"github.com/meridian-legal/insights-backend/internal/models"
	repo "github.com/meridian-legal/insights-backend/internal/repository"
	"github.com/meridian-legal/insights-backend/internal/slug"
)

// ErrSlugTaken is returned when a create or update would collide with
// another insight's slug. Titles differing only in case or punctuation
// slugify identically, and that collision is surfaced, not suffixed away.
var ErrSlugTaken = errors.New("an insight with a similar title already exists")

// ImageRemover deletes a locally stored image by bare filename.
type ImageRemover interface {
	Remove(filename string) error
}

// Submitter queues work that should not hold up the response.
type Submitter interface {
	Submit(func())
}

type InsightService struct {
	r      repo.Insights
	images ImageRemover
	pool   Submitter
}

func NewInsightService(r repo.Insights, images ImageRemover, pool Submitter) *InsightService {
	return &InsightService{r: r, images: images, pool: pool}
}

// CreateInput carries a validated create request. Empty optional fields get
// the documented defaults; author falls back to the creating admin.
type CreateInput struct {
	Title         string
	Content       string
	Excerpt       string
	ImageURL      string
	ImageType     models.ImageType
	Category      models.Category
	Author        string
	Status        models.Status
	AdminUsername string
}

func (s *InsightService) Create(ctx context.Context, in CreateInput) (int64, error) {
	sl := slug.Make(in.Title)
	if _, err := s.r.GetBySlug(ctx, sl); err == nil {
		return 0, ErrSlugTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return 0, err
	}

	insight := models.Insight{
		Title:     in.Title,
		Slug:      sl,
		Content:   in.Content,
		Excerpt:   in.Excerpt,
		ImageURL:  in.ImageURL,
		ImageType: in.ImageType,
		Category:  in.Category,
		Author:    in.Author,
		Status:    in.Status,
	}
	if insight.ImageType == "" {
		insight.ImageType = models.ImageLocal
	}
	if insight.Category == "" {
		insight.Category = models.CategoryBlog
	}
	if insight.Status == "" {
		insight.Status = models.StatusDraft
	}
	if insight.Author == "" {
		insight.Author = in.AdminUsername
	}
	if insight.Status == models.StatusPublished {
		now := time.Now()
		insight.PublishedAt = &now
	}

	id, err := s.r.Create(ctx, insight)
	if errors.Is(err, repo.ErrConflict) {
		return 0, ErrSlugTaken
	}
	return id, err
}

// Update loads the stored insight, overlays only the fields present in the
// patch and regenerates the slug when the title actually changed. The
// storage layer stamps published_at on the first transition to published.
func (s *InsightService) Update(ctx context.Context, id int64, patch models.InsightPatch) error {
	existing, err := s.r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if patch.Title != nil && *patch.Title != existing.Title {
		sl := slug.Make(*patch.Title)
		if other, err := s.r.GetBySlug(ctx, sl); err == nil && other.ID != id {
			return ErrSlugTaken
		} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return err
		}
		existing.Slug = sl
	}
	patch.Apply(&existing)

	affected, err := s.r.Update(ctx, existing)
	if errors.Is(err, repo.ErrConflict) {
		return ErrSlugTaken
	}
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// Delete removes the insight and, for locally stored images, the file on
// disk. A failed file removal is logged and does not fail the delete; the
// two are not transactionally linked.
func (s *InsightService) Delete(ctx context.Context, id int64) error {
	existing, err := s.r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	affected, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo.ErrNotFound
	}

	if existing.ImageType == models.ImageLocal && existing.ImageURL != "" {
		if err := s.images.Remove(path.Base(existing.ImageURL)); err != nil {
			slog.Warn("orphaned insight image left on disk",
				"insight_id", id, "image_url", existing.ImageURL, "err", err)
		}
	}
	return nil
}

// GetBySlug resolves a public detail view and queues the view-counter
// increment off the request path. The returned snapshot carries the count
// as read.
func (s *InsightService) GetBySlug(ctx context.Context, sl string) (models.Insight, error) {
	insight, err := s.r.GetBySlug(ctx, sl)
	if err != nil {
		return models.Insight{}, err
	}

	id := insight.ID
	s.pool.Submit(func() {
		// request context is gone by the time this runs
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.r.IncrementViews(ctx, id); err != nil {
			slog.Error("incrementing views", "insight_id", id, "err", err)
			return
		}
		metrics.InsightViews.Inc()
	})
	return insight, nil
}

func (s *InsightService) List(ctx context.Context, page, pageSize int, f repo.InsightFilter) (repo.InsightPage, error) {
	return s.r.ListPage(ctx, page, pageSize, f)
}

func (s *InsightService) Recent(ctx context.Context, limit int) ([]models.Insight, error) {
	return s.r.ListRecent(ctx, limit)
}

func (s *InsightService) Search(ctx context.Context, term string, page, pageSize int) (repo.InsightPage, error) {
	return s.r.Search(ctx, term, page, pageSize)
}
