package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/meridian-legal/insights-backend/internal/models"
	repo "github.com/meridian-legal/insights-backend/internal/repository"
)

// fakeInsights is an in-memory repository.Insights honoring the same
// contract as the postgres implementation, including the published_at
// stamping on update.
type fakeInsights struct {
	mu    sync.Mutex
	seq   int64
	clock int64
	items map[int64]models.Insight
}

func newFakeInsights() *fakeInsights {
	return &fakeInsights{items: map[int64]models.Insight{}}
}

// tick hands out strictly increasing creation timestamps.
func (f *fakeInsights) tick() time.Time {
	f.clock++
	return time.Unix(f.clock, 0)
}

func (f *fakeInsights) sortedByCreatedDesc(filter func(models.Insight) bool) []models.Insight {
	var out []models.Insight
	for _, in := range f.items {
		if filter == nil || filter(in) {
			out = append(out, in)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func paginate(items []models.Insight, page, pageSize int) repo.InsightPage {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	total := int64(len(items))
	start := (page - 1) * pageSize
	if start > len(items) {
		start = len(items)
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return repo.InsightPage{
		Items:      items[start:end],
		Total:      total,
		Page:       page,
		TotalPages: (total + int64(pageSize) - 1) / int64(pageSize),
	}
}

func (f *fakeInsights) ListPage(_ context.Context, page, pageSize int, flt repo.InsightFilter) (repo.InsightPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := f.sortedByCreatedDesc(func(in models.Insight) bool {
		if flt.Status != "" && in.Status != flt.Status {
			return false
		}
		if flt.Category != "" && in.Category != flt.Category {
			return false
		}
		return true
	})
	return paginate(items, page, pageSize), nil
}

func (f *fakeInsights) GetByID(_ context.Context, id int64) (models.Insight, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	in, ok := f.items[id]
	if !ok {
		return models.Insight{}, repo.ErrNotFound
	}
	return in, nil
}

func (f *fakeInsights) GetBySlug(_ context.Context, slug string) (models.Insight, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, in := range f.items {
		if in.Slug == slug {
			return in, nil
		}
	}
	return models.Insight{}, repo.ErrNotFound
}

func (f *fakeInsights) Create(_ context.Context, in models.Insight) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, other := range f.items {
		if other.Slug == in.Slug {
			return 0, repo.ErrConflict
		}
	}
	f.seq++
	in.ID = f.seq
	in.CreatedAt = f.tick()
	f.items[in.ID] = in
	return in.ID, nil
}

func (f *fakeInsights) Update(_ context.Context, in models.Insight) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.items[in.ID]
	if !ok {
		return 0, nil
	}
	for _, other := range f.items {
		if other.ID != in.ID && other.Slug == in.Slug {
			return 0, repo.ErrConflict
		}
	}
	in.Views = stored.Views
	in.CreatedAt = stored.CreatedAt
	in.PublishedAt = stored.PublishedAt
	if in.Status == models.StatusPublished && stored.PublishedAt == nil {
		now := time.Now()
		in.PublishedAt = &now
	}
	f.items[in.ID] = in
	return 1, nil
}

func (f *fakeInsights) Delete(_ context.Context, id int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return 0, nil
	}
	delete(f.items, id)
	return 1, nil
}

func (f *fakeInsights) IncrementViews(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	in, ok := f.items[id]
	if !ok {
		return repo.ErrNotFound
	}
	in.Views++
	f.items[id] = in
	return nil
}

func (f *fakeInsights) ListRecent(_ context.Context, limit int) ([]models.Insight, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Insight
	for _, in := range f.items {
		if in.Status == models.StatusPublished {
			out = append(out, in)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PublishedAt.After(*out[j].PublishedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeInsights) Search(_ context.Context, term string, page, pageSize int) (repo.InsightPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	needle := strings.ToLower(term)
	items := f.sortedByCreatedDesc(func(in models.Insight) bool {
		if in.Status != models.StatusPublished {
			return false
		}
		return strings.Contains(strings.ToLower(in.Title), needle) ||
			strings.Contains(strings.ToLower(in.Content), needle) ||
			strings.Contains(strings.ToLower(in.Excerpt), needle)
	})
	return paginate(items, page, pageSize), nil
}

// fakeAdmins is an in-memory repository.Admins.
type fakeAdmins struct {
	mu    sync.Mutex
	seq   int64
	items map[int64]models.Admin
}

func newFakeAdmins() *fakeAdmins {
	return &fakeAdmins{items: map[int64]models.Admin{}}
}

func (f *fakeAdmins) GetByEmail(_ context.Context, email string) (models.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.items {
		if a.Email == email {
			return a, nil
		}
	}
	return models.Admin{}, repo.ErrNotFound
}

func (f *fakeAdmins) GetByUsername(_ context.Context, username string) (models.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.items {
		if a.Username == username {
			return a, nil
		}
	}
	return models.Admin{}, repo.ErrNotFound
}

func (f *fakeAdmins) GetByID(_ context.Context, id int64) (models.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.items[id]
	if !ok {
		return models.Admin{}, repo.ErrNotFound
	}
	a.PasswordHash = ""
	return a, nil
}

func (f *fakeAdmins) Create(_ context.Context, username, email, passwordHash string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.items {
		if a.Username == username || a.Email == email {
			return 0, repo.ErrConflict
		}
	}
	f.seq++
	f.items[f.seq] = models.Admin{
		ID: f.seq, Username: username, Email: email,
		PasswordHash: passwordHash, CreatedAt: time.Now(),
	}
	return f.seq, nil
}

func (f *fakeAdmins) Update(_ context.Context, id int64, username, email, passwordHash *string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.items[id]
	if !ok {
		return 0, nil
	}
	if username != nil {
		a.Username = *username
	}
	if email != nil {
		a.Email = *email
	}
	if passwordHash != nil {
		a.PasswordHash = *passwordHash
	}
	f.items[id] = a
	return 1, nil
}

// hash exposes the stored hash for assertions; GetByID strips it.
func (f *fakeAdmins) hash(id int64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[id].PasswordHash
}

// syncPool runs submitted tasks inline so tests stay deterministic.
type syncPool struct{}

func (syncPool) Submit(f func()) { f() }

// fakeRemover records image removals and can be told to fail.
type fakeRemover struct {
	removed []string
	err     error
}

func (f *fakeRemover) Remove(name string) error {
	if f.err != nil {
		return f.err
	}
	f.removed = append(f.removed, name)
	return nil
}
