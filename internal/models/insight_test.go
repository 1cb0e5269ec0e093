package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestInsightPatchApply(t *testing.T) {
	in := Insight{
		ID:        1,
		Title:     "Original Title",
		Slug:      "original-title",
		Content:   "original content",
		Excerpt:   "original excerpt",
		ImageURL:  "/uploads/insights/a.jpg",
		ImageType: ImageLocal,
		Category:  CategoryBlog,
		Author:    "jane",
		Status:    StatusDraft,
		Views:     7,
	}

	status := StatusPublished
	patch := InsightPatch{
		Content: strPtr("new content"),
		Status:  &status,
	}
	patch.Apply(&in)

	assert.Equal(t, "new content", in.Content)
	assert.Equal(t, StatusPublished, in.Status)

	// absent fields stay untouched
	assert.Equal(t, "Original Title", in.Title)
	assert.Equal(t, "original-title", in.Slug)
	assert.Equal(t, "original excerpt", in.Excerpt)
	assert.Equal(t, ImageLocal, in.ImageType)
	assert.Equal(t, "jane", in.Author)
	assert.Equal(t, int64(7), in.Views)
}

func TestInsightPatchApplyEmptyStringIsPresent(t *testing.T) {
	in := Insight{Excerpt: "something"}
	patch := InsightPatch{Excerpt: strPtr("")}
	patch.Apply(&in)
	assert.Equal(t, "", in.Excerpt)
}

func TestEnumValid(t *testing.T) {
	assert.True(t, CategoryBlog.Valid())
	assert.True(t, CategoryNews.Valid())
	assert.False(t, Category("opinion").Valid())

	assert.True(t, StatusDraft.Valid())
	assert.True(t, StatusPublished.Valid())
	assert.False(t, Status("archived").Valid())

	assert.True(t, ImageLocal.Valid())
	assert.True(t, ImageOnline.Valid())
	assert.False(t, ImageType("remote").Valid())
}

func TestAdminValidate(t *testing.T) {
	a := Admin{Username: "jo", Email: "jo@example.com"}
	assert.Error(t, a.Validate())

	a.Username = "joanna"
	assert.NoError(t, a.Validate())

	a.Email = "not-an-email"
	assert.Error(t, a.Validate())
}
