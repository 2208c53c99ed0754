package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/store"
	"github.com/dukerupert/seedstudio/internal/websocket"
)

type TaskHandler struct {
	broadcaster
	slots  *store.SlotStore
	logger *slog.Logger
}

func NewTaskHandler(slots *store.SlotStore, hub *websocket.Hub, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{broadcaster: broadcaster{hub}, slots: slots, logger: logger}
}

type taskResponse struct {
	model.TaskType
	Glyph  string `json:"glyph"`
	Custom bool   `json:"custom"`
}

// List handles GET /api/tasks: built-ins first, then custom tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	all := store.NewTaskStore(h.slots).All()
	out := make([]taskResponse, 0, len(all))
	for _, t := range all {
		out = append(out, taskResponse{TaskType: t, Glyph: model.IconGlyph(t.Icon), Custom: t.IsCustom()})
	}
	writeJSON(w, http.StatusOK, out)
}

// Icons handles GET /api/tasks/icons
func (h *TaskHandler) Icons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.IconGlyphs)
}

// Create handles POST /api/tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var t model.TaskType
	if !decodeJSON(w, r, &t) {
		return
	}
	t.Name = strings.TrimSpace(t.Name)
	if err := t.Validate(); err != nil {
		writeError(w, h.logger, err, "failed to create task")
		return
	}

	saved, err := store.NewTaskStore(h.slots).Create(t)
	if err != nil {
		writeError(w, h.logger, err, "failed to create task")
		return
	}
	h.broadcast("task", "created", saved.ID)
	writeJSON(w, http.StatusCreated, saved)
}

// Update handles PUT /api/tasks/{id}. Built-in tasks cannot be changed.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !strings.HasPrefix(id, model.CustomTaskPrefix) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "built-in tasks cannot be changed"})
		return
	}

	var t model.TaskType
	if !decodeJSON(w, r, &t) {
		return
	}
	t.ID = id
	t.Name = strings.TrimSpace(t.Name)
	if t.Icon == "" {
		t.Icon = model.DefaultCustomIcon
	}
	if err := t.Validate(); err != nil {
		writeError(w, h.logger, err, "failed to update task")
		return
	}

	if err := store.NewTaskStore(h.slots).Update(t); err != nil {
		writeError(w, h.logger, err, "failed to update task")
		return
	}
	h.broadcast("task", "updated", id)
	writeJSON(w, http.StatusOK, t)
}

// Delete handles DELETE /api/tasks/{id}. Logs keep the dangling id.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !strings.HasPrefix(id, model.CustomTaskPrefix) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "built-in tasks cannot be deleted"})
		return
	}
	if err := store.NewTaskStore(h.slots).Delete(id); err != nil {
		writeError(w, h.logger, err, "failed to delete task")
		return
	}
	h.broadcast("task", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
