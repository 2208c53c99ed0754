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

type SeedHandler struct {
	broadcaster
	svc    *garden.Service
	slots  *store.SlotStore
	logger *slog.Logger
}

func NewSeedHandler(svc *garden.Service, slots *store.SlotStore, hub *websocket.Hub, logger *slog.Logger) *SeedHandler {
	return &SeedHandler{broadcaster: broadcaster{hub}, svc: svc, slots: slots, logger: logger}
}

// List handles GET /api/seeds?q=&tag=&sort=&dir=&wishlist=
func (h *SeedHandler) List(w http.ResponseWriter, r *http.Request) {
	q := view.ParseQuery(r.URL.Query(), view.Sort{Key: "name", Direction: view.Asc})
	details := catalog.Load(h.slots).DetailsAll(store.NewSeedStore(h.slots).List())
	details = view.FilterWishlist(details, view.Wishlist(r.URL.Query().Get("wishlist")))

	out, err := view.Project(details, view.Seeds, q)
	if err != nil {
		writeError(w, h.logger, err, "failed to list seeds")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/seeds/{id}
func (h *SeedHandler) Get(w http.ResponseWriter, r *http.Request) {
	seed, err := store.NewSeedStore(h.slots).GetByID(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err, "failed to get seed")
		return
	}
	if seed == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "seed not found"})
		return
	}
	writeJSON(w, http.StatusOK, catalog.Load(h.slots).Details(*seed))
}

// Create handles POST /api/seeds
func (h *SeedHandler) Create(w http.ResponseWriter, r *http.Request) {
	var seed model.Seed
	if !decodeJSON(w, r, &seed) {
		return
	}
	seed.ID = ""

	saved, err := h.svc.SaveSeed(r.Context(), seed)
	if err != nil {
		writeError(w, h.logger, err, "failed to create seed")
		return
	}
	h.broadcast("seed", "created", saved.ID)
	writeJSON(w, http.StatusCreated, saved)
}

// Update handles PUT /api/seeds/{id}
func (h *SeedHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, err := store.NewSeedStore(h.slots).GetByID(id)
	if err != nil {
		writeError(w, h.logger, err, "failed to get seed")
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "seed not found"})
		return
	}

	var seed model.Seed
	if !decodeJSON(w, r, &seed) {
		return
	}
	seed.ID = id

	saved, err := h.svc.SaveSeed(r.Context(), seed)
	if err != nil {
		writeError(w, h.logger, err, "failed to update seed")
		return
	}
	h.broadcast("seed", "updated", id)
	writeJSON(w, http.StatusOK, saved)
}

// Delete handles DELETE /api/seeds/{id}
func (h *SeedHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.svc.DeleteSeed(r.Context(), id); err != nil {
		writeError(w, h.logger, err, "failed to delete seed")
		return
	}
	h.broadcast("seed", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

type stockRequest struct {
	Delta int `json:"delta"`
}

// AdjustStock handles POST /api/seeds/{id}/stock
func (h *SeedHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := r.PathValue("id")
	change, err := h.svc.AdjustSeedStock(r.Context(), id, req.Delta)
	if err != nil {
		writeError(w, h.logger, err, "failed to adjust stock")
		return
	}
	h.broadcast("seed", "updated", id)
	writeJSON(w, http.StatusOK, change)
}

// LowStock handles GET /api/seeds/low-stock
func (h *SeedHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	seeds := garden.LowStock(store.NewSeedStore(h.slots).List())
	writeJSON(w, http.StatusOK, catalog.Load(h.slots).DetailsAll(seeds))
}
