package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/seedstudio/internal/garden"
	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/schedule"
	"github.com/dukerupert/seedstudio/internal/store"
	"github.com/dukerupert/seedstudio/internal/websocket"
)

type ScheduleHandler struct {
	broadcaster
	svc    *garden.Service
	slots  *store.SlotStore
	logger *slog.Logger
	now    func() time.Time
}

func NewScheduleHandler(svc *garden.Service, slots *store.SlotStore, hub *websocket.Hub, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{broadcaster: broadcaster{hub}, svc: svc, slots: slots, logger: logger, now: time.Now}
}

// List handles GET /api/schedule. Overdue tasks come first.
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks := store.NewScheduleStore(h.slots).List()
	logs := store.NewLogStore(h.slots).List()
	writeJSON(w, http.StatusOK, schedule.EvaluateAll(tasks, logs, h.now()))
}

// Create handles POST /api/schedule
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var task model.ScheduledTask
	if !decodeJSON(w, r, &task) {
		return
	}
	task.ID = ""

	saved, err := h.svc.SaveScheduledTask(r.Context(), task)
	if err != nil {
		writeError(w, h.logger, err, "failed to create scheduled task")
		return
	}
	h.broadcast("scheduled_task", "created", saved.ID)
	writeJSON(w, http.StatusCreated, saved)
}

// Update handles PUT /api/schedule/{id}
func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, err := store.NewScheduleStore(h.slots).GetByID(id)
	if err != nil {
		writeError(w, h.logger, err, "failed to get scheduled task")
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "scheduled task not found"})
		return
	}

	var task model.ScheduledTask
	if !decodeJSON(w, r, &task) {
		return
	}
	task.ID = id

	saved, err := h.svc.SaveScheduledTask(r.Context(), task)
	if err != nil {
		writeError(w, h.logger, err, "failed to update scheduled task")
		return
	}
	h.broadcast("scheduled_task", "updated", id)
	writeJSON(w, http.StatusOK, saved)
}

// Delete handles DELETE /api/schedule/{id}
func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := store.NewScheduleStore(h.slots).Delete(id); err != nil {
		writeError(w, h.logger, err, "failed to delete scheduled task")
		return
	}
	h.broadcast("scheduled_task", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

type completeRequest struct {
	Notes string `json:"notes"`
}

// Complete handles POST /api/schedule/{id}/complete. The body is optional.
func (h *ScheduleHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if r.ContentLength > 0 && !decodeJSON(w, r, &req) {
		return
	}

	id := r.PathValue("id")
	entry, err := h.svc.CompleteScheduledTask(r.Context(), id, req.Notes)
	if err != nil {
		writeError(w, h.logger, err, "failed to complete scheduled task")
		return
	}
	h.broadcast("log", "created", entry.ID)
	h.broadcast("scheduled_task", "completed", id)
	writeJSON(w, http.StatusCreated, entry)
}
