package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-legal/insights-backend/internal/api/httpx"
	"github.com/meridian-legal/insights-backend/internal/api/validate"
	"github.com/meridian-legal/insights-backend/internal/middleware"
	"github.com/meridian-legal/insights-backend/internal/models"
	repo "github.com/meridian-legal/insights-backend/internal/repository"
	"github.com/meridian-legal/insights-backend/internal/services"
)

type InsightHandler struct {
	svc *services.InsightService
}

func NewInsightHandler(svc *services.InsightService) *InsightHandler {
	return &InsightHandler{svc: svc}
}

// intParam parses a query/path value, falling back on absent or
// non-numeric input.
func intParam(v string, def int) int {
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return n
	}
	return def
}

// storageFail logs the real error and hands the client a generic message.
func storageFail(w http.ResponseWriter, action string, err error) {
	slog.Error(action, "err", err)
	httpx.Fail(w, http.StatusInternalServerError, "Error "+action)
}

func pagePayload(p repo.InsightPage) httpx.M {
	items := p.Items
	if items == nil {
		items = []models.Insight{}
	}
	return httpx.M{
		"insights":   items,
		"total":      p.Total,
		"page":       p.Page,
		"totalPages": p.TotalPages,
	}
}

// List handles GET /insights with optional status/category filters.
func (h *InsightHandler) List(w http.ResponseWriter, r *http.Request) {
	page := intParam(r.URL.Query().Get("page"), 1)
	limit := intParam(r.URL.Query().Get("limit"), 10)
	f := repo.InsightFilter{
		Status:   models.Status(r.URL.Query().Get("status")),
		Category: models.Category(r.URL.Query().Get("category")),
	}

	p, err := h.svc.List(r.Context(), page, limit, f)
	if err != nil {
		storageFail(w, "fetching insights", err)
		return
	}
	httpx.OK(w, http.StatusOK, pagePayload(p))
}

// GetBySlug handles GET /insights/{slug} and records the view.
func (h *InsightHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	insight, err := h.svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if errors.Is(err, repo.ErrNotFound) {
		httpx.Fail(w, http.StatusNotFound, "Insight not found")
		return
	}
	if err != nil {
		storageFail(w, "fetching insight", err)
		return
	}
	httpx.OK(w, http.StatusOK, httpx.M{"insight": insight})
}

// Recent handles GET /insights/recent/{limit}.
func (h *InsightHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := intParam(chi.URLParam(r, "limit"), 5)
	items, err := h.svc.Recent(r.Context(), limit)
	if err != nil {
		storageFail(w, "fetching recent insights", err)
		return
	}
	if items == nil {
		items = []models.Insight{}
	}
	httpx.OK(w, http.StatusOK, httpx.M{"insights": items})
}

// Search handles GET /insights/search/{term}.
func (h *InsightHandler) Search(w http.ResponseWriter, r *http.Request) {
	page := intParam(r.URL.Query().Get("page"), 1)
	limit := intParam(r.URL.Query().Get("limit"), 10)

	p, err := h.svc.Search(r.Context(), chi.URLParam(r, "term"), page, limit)
	if err != nil {
		storageFail(w, "searching insights", err)
		return
	}
	httpx.OK(w, http.StatusOK, pagePayload(p))
}

type insightReq struct {
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	Excerpt   string           `json:"excerpt"`
	ImageURL  string           `json:"image_url"`
	ImageType models.ImageType `json:"image_type"`
	Category  models.Category  `json:"category"`
	Author    string           `json:"author"`
	Status    models.Status    `json:"status"`
}

func (req insightReq) validate() validate.Errs {
	checks := []*validate.ErrField{
		validate.MinLen("title", req.Title, 5),
		validate.MinLen("content", req.Content, 50),
		validate.MaxLen("excerpt", req.Excerpt, 200),
	}
	if req.Category != "" {
		checks = append(checks, validate.OneOf("category", string(req.Category), "blog", "news"))
	}
	if req.Status != "" {
		checks = append(checks, validate.OneOf("status", string(req.Status), "draft", "published"))
	}
	if req.ImageType != "" {
		checks = append(checks, validate.OneOf("image_type", string(req.ImageType), "local", "online"))
	}
	return validate.Collect(checks...)
}

// Create handles POST /insights (admin only).
func (h *InsightHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req insightReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); errs != nil {
		httpx.FailFields(w, errs)
		return
	}

	admin, _ := middleware.Principal(r.Context())
	id, err := h.svc.Create(r.Context(), services.CreateInput{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		ImageURL:      req.ImageURL,
		ImageType:     req.ImageType,
		Category:      req.Category,
		Author:        req.Author,
		Status:        req.Status,
		AdminUsername: admin.Username,
	})
	if errors.Is(err, services.ErrSlugTaken) {
		httpx.Fail(w, http.StatusConflict, services.ErrSlugTaken.Error())
		return
	}
	if err != nil {
		storageFail(w, "creating insight", err)
		return
	}
	httpx.OK(w, http.StatusCreated, httpx.M{
		"message":   "Insight created successfully",
		"insightId": id,
	})
}

// patchReq mirrors insightReq but keeps absence information: nil fields were
// not present in the request and must leave the stored value untouched.
type patchReq models.InsightPatch

func (req patchReq) validate() validate.Errs {
	var checks []*validate.ErrField
	if req.Title != nil {
		checks = append(checks, validate.MinLen("title", *req.Title, 5))
	}
	if req.Content != nil {
		checks = append(checks, validate.MinLen("content", *req.Content, 50))
	}
	if req.Excerpt != nil {
		checks = append(checks, validate.MaxLen("excerpt", *req.Excerpt, 200))
	}
	if req.Category != nil {
		checks = append(checks, validate.OneOf("category", string(*req.Category), "blog", "news"))
	}
	if req.Status != nil {
		checks = append(checks, validate.OneOf("status", string(*req.Status), "draft", "published"))
	}
	if req.ImageType != nil {
		checks = append(checks, validate.OneOf("image_type", string(*req.ImageType), "local", "online"))
	}
	return validate.Collect(checks...)
}

// Update handles PUT /insights/{id} (admin only).
func (h *InsightHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusNotFound, "Insight not found")
		return
	}

	var req patchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); errs != nil {
		httpx.FailFields(w, errs)
		return
	}

	err = h.svc.Update(r.Context(), id, models.InsightPatch(req))
	switch {
	case errors.Is(err, repo.ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "Insight not found")
	case errors.Is(err, services.ErrSlugTaken):
		httpx.Fail(w, http.StatusConflict, services.ErrSlugTaken.Error())
	case err != nil:
		storageFail(w, "updating insight", err)
	default:
		httpx.OK(w, http.StatusOK, httpx.M{"message": "Insight updated successfully"})
	}
}

// Delete handles DELETE /insights/{id} (admin only).
func (h *InsightHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusNotFound, "Insight not found")
		return
	}

	err = h.svc.Delete(r.Context(), id)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "Insight not found")
	case err != nil:
		storageFail(w, "deleting insight", err)
	default:
		httpx.OK(w, http.StatusOK, httpx.M{"message": "Insight deleted successfully"})
	}
}
