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

type PlantingHandler struct {
	broadcaster
	svc    *garden.Service
	slots  *store.SlotStore
	logger *slog.Logger
}

func NewPlantingHandler(svc *garden.Service, slots *store.SlotStore, hub *websocket.Hub, logger *slog.Logger) *PlantingHandler {
	return &PlantingHandler{broadcaster: broadcaster{hub}, svc: svc, slots: slots, logger: logger}
}

// List handles GET /api/plantings?q=&sort=&dir=
func (h *PlantingHandler) List(w http.ResponseWriter, r *http.Request) {
	q := view.ParseQuery(r.URL.Query(), view.Sort{Key: "sowingDate", Direction: view.Desc})
	rows := garden.PlantingRows(store.NewPlantingStore(h.slots).List(), store.NewSeedStore(h.slots).List(), catalog.Load(h.slots))

	out, err := view.Project(rows, view.Plantings, q)
	if err != nil {
		writeError(w, h.logger, err, "failed to list plantings")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /api/plantings. A planting log is written alongside.
func (h *PlantingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p model.Planting
	if !decodeJSON(w, r, &p) {
		return
	}
	p.ID = ""

	saved, _, err := h.svc.SavePlanting(r.Context(), p)
	if err != nil {
		writeError(w, h.logger, err, "failed to create planting")
		return
	}
	h.broadcast("planting", "created", saved.ID)
	h.broadcast("log", "created", "")
	writeJSON(w, http.StatusCreated, saved)
}

// Update handles PUT /api/plantings/{id}
func (h *PlantingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, err := store.NewPlantingStore(h.slots).GetByID(id)
	if err != nil {
		writeError(w, h.logger, err, "failed to get planting")
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "planting not found"})
		return
	}

	var p model.Planting
	if !decodeJSON(w, r, &p) {
		return
	}
	p.ID = id

	saved, _, err := h.svc.SavePlanting(r.Context(), p)
	if err != nil {
		writeError(w, h.logger, err, "failed to update planting")
		return
	}
	h.broadcast("planting", "updated", id)
	writeJSON(w, http.StatusOK, saved)
}

// Delete handles DELETE /api/plantings/{id}
func (h *PlantingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.svc.DeletePlanting(r.Context(), id); err != nil {
		writeError(w, h.logger, err, "failed to delete planting")
		return
	}
	h.broadcast("planting", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
