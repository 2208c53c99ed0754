package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/seedstudio/internal/garden"
	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/store"
	"github.com/dukerupert/seedstudio/internal/view"
	"github.com/dukerupert/seedstudio/internal/websocket"
)

type JournalHandler struct {
	broadcaster
	svc    *garden.Service
	slots  *store.SlotStore
	logger *slog.Logger
}

func NewJournalHandler(svc *garden.Service, slots *store.SlotStore, hub *websocket.Hub, logger *slog.Logger) *JournalHandler {
	return &JournalHandler{broadcaster: broadcaster{hub}, svc: svc, slots: slots, logger: logger}
}

// List handles GET /api/journal?q=&sort=&dir=
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	q := view.ParseQuery(r.URL.Query(), view.Sort{Key: "date", Direction: view.Desc})
	out, err := view.Project(store.NewJournalStore(h.slots).List(), view.Journal, q)
	if err != nil {
		writeError(w, h.logger, err, "failed to list journal entries")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/journal/{id}
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := store.NewJournalStore(h.slots).GetByID(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err, "failed to get journal entry")
		return
	}
	if entry == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "journal entry not found"})
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Create handles POST /api/journal
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var j model.JournalEntry
	if !decodeJSON(w, r, &j) {
		return
	}
	j.ID = ""

	saved, err := h.svc.SaveJournalEntry(r.Context(), j)
	if err != nil {
		writeError(w, h.logger, err, "failed to create journal entry")
		return
	}
	h.broadcast("journal_entry", "created", saved.ID)
	writeJSON(w, http.StatusCreated, saved)
}

// Update handles PUT /api/journal/{id}
func (h *JournalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, err := store.NewJournalStore(h.slots).GetByID(id)
	if err != nil {
		writeError(w, h.logger, err, "failed to get journal entry")
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "journal entry not found"})
		return
	}

	var j model.JournalEntry
	if !decodeJSON(w, r, &j) {
		return
	}
	j.ID = id

	saved, err := h.svc.SaveJournalEntry(r.Context(), j)
	if err != nil {
		writeError(w, h.logger, err, "failed to update journal entry")
		return
	}
	h.broadcast("journal_entry", "updated", id)
	writeJSON(w, http.StatusOK, saved)
}

// Delete handles DELETE /api/journal/{id}. Attached photos go first.
func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.svc.DeleteJournalEntry(r.Context(), id); err != nil {
		writeError(w, h.logger, err, "failed to delete journal entry")
		return
	}
	h.broadcast("journal_entry", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
