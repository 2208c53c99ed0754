package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/seedstudio/internal/catalog"
	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/store"
	"github.com/dukerupert/seedstudio/internal/websocket"
)

type CatalogHandler struct {
	broadcaster
	slots  *store.SlotStore
	logger *slog.Logger
}

func NewCatalogHandler(slots *store.SlotStore, hub *websocket.Hub, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{broadcaster: broadcaster{hub}, slots: slots, logger: logger}
}

// List handles GET /api/catalog?q=
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	entries := catalog.Load(h.slots).Entries()
	needle := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	if needle == "" {
		writeJSON(w, http.StatusOK, entries)
		return
	}
	out := make([]model.SeedDatabaseEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name+" "+e.Variety), needle) {
			out = append(out, e)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /api/catalog, adding a custom entry.
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var e model.SeedDatabaseEntry
	if !decodeJSON(w, r, &e) {
		return
	}
	e.ID = "custom-db-" + store.NewID()
	e.Name = strings.TrimSpace(e.Name)
	e.Variety = strings.TrimSpace(e.Variety)
	if err := e.Validate(); err != nil {
		writeError(w, h.logger, err, "failed to create seed entry")
		return
	}

	saved, err := store.NewCatalogStore(h.slots).Create(e)
	if err != nil {
		writeError(w, h.logger, err, "failed to create seed entry")
		return
	}
	h.broadcast("seed_entry", "created", saved.ID)
	writeJSON(w, http.StatusCreated, saved)
}

// Update handles PUT /api/catalog/{id}. Built-in entries are read-only.
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	entries := store.NewCatalogStore(h.slots)
	existing, err := entries.GetByID(id)
	if err != nil {
		writeError(w, h.logger, err, "failed to get seed entry")
		return
	}
	if existing == nil {
		if _, ok := catalog.Load(h.slots).Lookup(id); ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "built-in entries cannot be changed"})
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "seed entry not found"})
		return
	}

	var e model.SeedDatabaseEntry
	if !decodeJSON(w, r, &e) {
		return
	}
	e.ID = id
	e.Name = strings.TrimSpace(e.Name)
	e.Variety = strings.TrimSpace(e.Variety)
	if err := e.Validate(); err != nil {
		writeError(w, h.logger, err, "failed to update seed entry")
		return
	}
	if err := entries.Update(e); err != nil {
		writeError(w, h.logger, err, "failed to update seed entry")
		return
	}
	e.Custom = true
	h.broadcast("seed_entry", "updated", id)
	writeJSON(w, http.StatusOK, e)
}

// Delete handles DELETE /api/catalog/{id}. An entry still referenced by a
// seed cannot be removed.
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	for _, s := range store.NewSeedStore(h.slots).List() {
		if s.SeedDetailsID == id {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "seed entry is used by a seed in the inventory"})
			return
		}
	}
	if err := store.NewCatalogStore(h.slots).Delete(id); err != nil {
		writeError(w, h.logger, err, "failed to delete seed entry")
		return
	}
	h.broadcast("seed_entry", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
