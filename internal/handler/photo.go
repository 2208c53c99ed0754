package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/photo"
	"github.com/dukerupert/seedstudio/internal/store"
)

type PhotoHandler struct {
	photos photo.Store
	logger *slog.Logger
}

func NewPhotoHandler(photos photo.Store, logger *slog.Logger) *PhotoHandler {
	return &PhotoHandler{photos: photos, logger: logger}
}

type photoRequest struct {
	DataURL string `json:"dataUrl"`
}

// Upload handles POST /api/photos. The body carries a base64 image data URL;
// the response holds the new photo id to reference from a log or journal
// entry.
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req photoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if _, _, err := photo.ParseDataURL(req.DataURL); err != nil {
		writeError(w, h.logger, err, "failed to store photo")
		return
	}

	p := model.Photo{ID: store.NewID(), DataURL: req.DataURL}
	if err := h.photos.Put(r.Context(), p); err != nil {
		writeError(w, h.logger, err, "failed to store photo")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": p.ID})
}

// Get handles GET /api/photos/{id}
func (h *PhotoHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.photos.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err, "failed to get photo")
		return
	}
	if p == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "photo not found"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Raw handles GET /api/photos/{id}/raw, serving the decoded image.
func (h *PhotoHandler) Raw(w http.ResponseWriter, r *http.Request) {
	p, err := h.photos.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err, "failed to get photo")
		return
	}
	if p == nil {
		http.NotFound(w, r)
		return
	}
	mediaType, data, err := photo.ParseDataURL(p.DataURL)
	if err != nil {
		h.logger.Warn("stored photo unreadable", "id", p.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "photo is unreadable"})
		return
	}
	w.Header().Set("Content-Type", mediaType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.Write(data)
}

// Delete handles DELETE /api/photos/{id}
func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.photos.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, h.logger, err, "failed to delete photo")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
