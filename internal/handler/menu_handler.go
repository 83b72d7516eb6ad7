package handler

import (
	"net/http"

	"whatsfood/internal/siteconfig"

	"github.com/rs/zerolog"
)

// MenuHandler serves the public storefront surface: the menu catalogue
// and the site configuration behind it.
type MenuHandler struct {
	config *siteconfig.Store
	logger zerolog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(config *siteconfig.Store, logger zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		config: config,
		logger: logger.With().Str("handler", "menu").Logger(),
	}
}

// Menu handles GET /api/menu
func (h *MenuHandler) Menu(w http.ResponseWriter, r *http.Request) {
	cfg := h.config.Active()
	writeJSON(w, http.StatusOK, cfg.Categories)
}

// Config handles GET /api/config
func (h *MenuHandler) Config(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.config.Active())
}

// Health handles GET /health
func (h *MenuHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
