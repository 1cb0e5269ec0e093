package models

import "time"

type Category string

const (
	CategoryBlog Category = "blog"
	CategoryNews Category = "news"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

type ImageType string

const (
	ImageLocal  ImageType = "local"
	ImageOnline ImageType = "online"
)

// Insight is a single article (blog post or news item).
type Insight struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content"`
	Excerpt     string     `json:"excerpt"`
	ImageURL    string     `json:"image_url"`
	ImageType   ImageType  `json:"image_type"`
	Category    Category   `json:"category"`
	Author      string     `json:"author"`
	Status      Status     `json:"status"`
	Views       int64      `json:"views"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// InsightPatch carries the fields of an update request. Nil means the field
// was absent and the stored value must be kept as-is.
type InsightPatch struct {
	Title     *string    `json:"title"`
	Content   *string    `json:"content"`
	Excerpt   *string    `json:"excerpt"`
	ImageURL  *string    `json:"image_url"`
	ImageType *ImageType `json:"image_type"`
	Category  *Category  `json:"category"`
	Author    *string    `json:"author"`
	Status    *Status    `json:"status"`
}

// Apply overlays the present patch fields onto in. Slug, views and the
// timestamps are never patched directly.
func (p InsightPatch) Apply(in *Insight) {
	if p.Title != nil {
		in.Title = *p.Title
	}
	if p.Content != nil {
		in.Content = *p.Content
	}
	if p.Excerpt != nil {
		in.Excerpt = *p.Excerpt
	}
	if p.ImageURL != nil {
		in.ImageURL = *p.ImageURL
	}
	if p.ImageType != nil {
		in.ImageType = *p.ImageType
	}
	if p.Category != nil {
		in.Category = *p.Category
	}
	if p.Author != nil {
		in.Author = *p.Author
	}
	if p.Status != nil {
		in.Status = *p.Status
	}
}

func (c Category) Valid() bool  { return c == CategoryBlog || c == CategoryNews }
func (s Status) Valid() bool    { return s == StatusDraft || s == StatusPublished }
func (t ImageType) Valid() bool { return t == ImageLocal || t == ImageOnline }
