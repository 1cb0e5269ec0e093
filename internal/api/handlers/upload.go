package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-legal/insights-backend/internal/api/httpx"
	"github.com/meridian-legal/insights-backend/internal/metrics"
	"github.com/meridian-legal/insights-backend/internal/upload"
)

type UploadHandler struct {
	store *upload.Store
}

func NewUploadHandler(store *upload.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload handles POST /upload/insight (multipart, field name "image").
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// hard cap on the request body so an oversized upload is cut off
	// before it is buffered anywhere
	r.Body = http.MaxBytesReader(w, r.Body, upload.MaxUploadSize+4096)

	file, header, err := r.FormFile("image")
	if err != nil {
		metrics.UploadsRejected.Inc()
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpx.Fail(w, http.StatusBadRequest, "File exceeds the 5 MB upload limit")
			return
		}
		httpx.Fail(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	res, err := h.store.Save(file, header)
	switch {
	case errors.Is(err, upload.ErrTooLarge):
		metrics.UploadsRejected.Inc()
		httpx.Fail(w, http.StatusBadRequest, "File exceeds the 5 MB upload limit")
	case errors.Is(err, upload.ErrNotImage):
		metrics.UploadsRejected.Inc()
		httpx.Fail(w, http.StatusBadRequest, "Only image files are allowed")
	case err != nil:
		storageFail(w, "uploading file", err)
	default:
		metrics.UploadsTotal.Inc()
		httpx.OK(w, http.StatusOK, httpx.M{
			"message":      "File uploaded successfully",
			"fileUrl":      res.URL,
			"fileName":     res.Filename,
			"originalName": header.Filename,
			"size":         res.Size,
		})
	}
}

// Delete handles DELETE /upload/insight/{filename}.
func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.store.Remove(chi.URLParam(r, "filename"))
	switch {
	case errors.Is(err, upload.ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "File not found")
	case errors.Is(err, upload.ErrBadFilename):
		httpx.Fail(w, http.StatusBadRequest, "Invalid filename")
	case err != nil:
		storageFail(w, "deleting file", err)
	default:
		httpx.OK(w, http.StatusOK, httpx.M{"message": "File deleted successfully"})
	}
}
