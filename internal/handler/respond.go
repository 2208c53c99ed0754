package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/seedstudio/internal/garden"
	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/photo"
	"github.com/dukerupert/seedstudio/internal/store"
	"github.com/dukerupert/seedstudio/internal/transfer"
	"github.com/dukerupert/seedstudio/internal/view"
	"github.com/dukerupert/seedstudio/internal/websocket"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON reads the request body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return false
	}
	return true
}

// writeError maps domain errors to a status code. Unexpected errors are
// logged and reported as 500 with msg.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error, msg string) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, store.ErrUnreadable):
		logger.Error(msg, "error", err)
		writeJSON(w, http.StatusConflict, map[string]string{"error": "saved data could not be read; restore a backup before making changes"})
	case errors.Is(err, garden.ErrUnknownTask):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "unknown task", "fields": map[string]string{"taskId": "Please select an activity."}})
	case errors.Is(err, garden.ErrUnknownSeed):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "unknown seed", "fields": map[string]string{"seedId": "Please select a seed."}})
	case errors.Is(err, view.ErrUnknownSortKey):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, photo.ErrInvalidDataURL):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, transfer.ErrMissingKeys), errors.Is(err, transfer.ErrInvalidDocument), errors.Is(err, transfer.ErrDecrypt):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		logger.Error(msg, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": msg})
	}
}

// broadcaster sends record-change messages to connected tabs. A nil hub is
// allowed.
type broadcaster struct {
	hub *websocket.Hub
}

func (b broadcaster) broadcast(entity, action, id string) {
	if b.hub != nil {
		b.hub.Broadcast(websocket.NewMessage(entity, action, id, nil))
	}
}
