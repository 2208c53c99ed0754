package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/seedstudio/internal/catalog"
	"github.com/dukerupert/seedstudio/internal/garden"
	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/store"
	"github.com/dukerupert/seedstudio/internal/view"
	"github.com/dukerupert/seedstudio/internal/websocket"
)

type LogHandler struct {
	broadcaster
	svc    *garden.Service
	slots  *store.SlotStore
	logger *slog.Logger
}

func NewLogHandler(svc *garden.Service, slots *store.SlotStore, hub *websocket.Hub, logger *slog.Logger) *LogHandler {
	return &LogHandler{broadcaster: broadcaster{hub}, svc: svc, slots: slots, logger: logger}
}

// List handles GET /api/logs?q=&sort=&dir=&task=
func (h *LogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := view.ParseQuery(r.URL.Query(), view.Sort{Key: "date", Direction: view.Desc})

	logs := store.NewLogStore(h.slots)
	entries := logs.List()
	if task := r.URL.Query().Get("task"); task != "" {
		entries = logs.ListByTask(task)
	}
	rows := garden.LogRows(entries, store.NewSeedStore(h.slots).List(), store.NewTaskStore(h.slots).List(), catalog.Load(h.slots))

	out, err := view.Project(rows, view.Logs, q)
	if err != nil {
		writeError(w, h.logger, err, "failed to list logs")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /api/logs
func (h *LogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var entry model.LogEntry
	if !decodeJSON(w, r, &entry) {
		return
	}
	entry.ID = ""

	saved, err := h.svc.RecordLog(r.Context(), entry)
	if err != nil {
		writeError(w, h.logger, err, "failed to create log")
		return
	}
	h.broadcast("log", "created", saved.ID)
	if saved.SeedID != "" {
		h.broadcast("seed", "updated", saved.SeedID)
	}
	writeJSON(w, http.StatusCreated, saved)
}

// Update handles PUT /api/logs/{id}
func (h *LogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, err := store.NewLogStore(h.slots).GetByID(id)
	if err != nil {
		writeError(w, h.logger, err, "failed to get log")
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "log not found"})
		return
	}

	var entry model.LogEntry
	if !decodeJSON(w, r, &entry) {
		return
	}
	entry.ID = id

	saved, err := h.svc.RecordLog(r.Context(), entry)
	if err != nil {
		writeError(w, h.logger, err, "failed to update log")
		return
	}
	h.broadcast("log", "updated", id)
	writeJSON(w, http.StatusOK, saved)
}

// Delete handles DELETE /api/logs/{id}
func (h *LogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.svc.DeleteLog(r.Context(), id); err != nil {
		writeError(w, h.logger, err, "failed to delete log")
		return
	}
	h.broadcast("log", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
