package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/seedstudio/internal/garden"
	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/store"
	"github.com/dukerupert/seedstudio/internal/websocket"
)

type SettingsHandler struct {
	broadcaster
	settings *store.SettingsStore
	svc      *garden.Service
	logger   *slog.Logger
}

func NewSettingsHandler(slots *store.SlotStore, svc *garden.Service, hub *websocket.Hub, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{broadcaster: broadcaster{hub}, settings: store.NewSettingsStore(slots), svc: svc, logger: logger}
}

type themeRequest struct {
	Theme model.Theme `json:"theme"`
}

// GetTheme handles GET /api/settings/theme
func (h *SettingsHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, themeRequest{Theme: h.settings.Theme()})
}

// UpdateTheme handles PUT /api/settings/theme
func (h *SettingsHandler) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.Theme.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": map[string]string{"theme": "Theme must be light, dark, or system."},
		})
		return
	}
	if err := h.settings.SetTheme(req.Theme); err != nil {
		writeError(w, h.logger, err, "failed to save theme")
		return
	}
	h.broadcast("settings", "updated", "theme")
	writeJSON(w, http.StatusOK, req)
}

// Get handles GET /api/settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	version, _ := h.settings.SchemaVersion()
	writeJSON(w, http.StatusOK, map[string]any{
		"theme":              h.settings.Theme(),
		"schemaVersion":      version,
		"allowNegativeStock": h.svc.Policy().AllowNegativeStock,
	})
}

// Pages handles GET /api/pages
func (h *SettingsHandler) Pages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.Pages)
}

// Dashboard handles GET /api/dashboard
func (h *SettingsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Dashboard())
}
