package handler

import (
	"encoding/json"
	"net/http"

	"whatsfood/internal/cart"
	"whatsfood/internal/middleware"
	"whatsfood/internal/model"
	"whatsfood/internal/siteconfig"

	"github.com/rs/zerolog"
)

// CartHandler exposes the session cart. Every operation is keyed by the
// browsing session cookie; items are always resolved against the active
// menu so a stale item ID cannot enter the cart.
type CartHandler struct {
	carts  *cart.Store
	config *siteconfig.Store
	logger zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts *cart.Store, config *siteconfig.Store, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		carts:  carts,
		config: config,
		logger: logger.With().Str("handler", "cart").Logger(),
	}
}

// cartResponse is the cart as the storefront renders it. Quantities
// aggregates units per item across note variants, for the per-item
// badge.
type cartResponse struct {
	Lines       []cart.Line    `json:"lines"`
	Quantities  map[string]int `json:"quantities"`
	TotalAmount float64        `json:"totalAmount"`
	TotalItems  int            `json:"totalItems"`
}

func (h *CartHandler) respond(w http.ResponseWriter, c *cart.Cart) {
	lines := c.Lines()
	if lines == nil {
		lines = []cart.Line{}
	}

	quantities := make(map[string]int)
	for _, line := range lines {
		quantities[line.Item.ID] += line.Quantity
	}

	writeJSON(w, http.StatusOK, cartResponse{
		Lines:       lines,
		Quantities:  quantities,
		TotalAmount: c.TotalAmount(),
		TotalItems:  c.TotalItems(),
	})
}

func (h *CartHandler) sessionCart(w http.ResponseWriter, r *http.Request) (*cart.Cart, bool) {
	id, ok := middleware.SessionID(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "no browsing session", h.logger)
		return nil, false
	}
	return h.carts.Get(id), true
}

// Get handles GET /api/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := h.sessionCart(w, r)
	if !ok {
		return
	}
	h.respond(w, c)
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID string `json:"itemId"`
		Note   string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	item := h.config.Active().FindItem(req.ItemID)
	if item == nil {
		writeDomainError(w, model.ErrItemNotFound, h.logger)
		return
	}

	c, ok := h.sessionCart(w, r)
	if !ok {
		return
	}
	c.Add(*item, req.Note)
	h.respond(w, c)
}

// RemoveItem handles DELETE /api/cart/items/{id}. With ?all=true every
// line of the item goes at once instead of a single-unit decrement.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, ok := h.sessionCart(w, r)
	if !ok {
		return
	}

	itemID := r.PathValue("id")
	if r.URL.Query().Get("all") == "true" {
		c.RemoveAll(itemID)
	} else {
		c.Remove(itemID)
	}
	h.respond(w, c)
}

// UpdateNote handles PUT /api/cart/items/{id}/note
func (h *CartHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldNote string `json:"oldNote"`
		NewNote string `json:"newNote"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	c, ok := h.sessionCart(w, r)
	if !ok {
		return
	}
	c.UpdateNote(r.PathValue("id"), req.OldNote, req.NewNote)
	h.respond(w, c)
}

// Clear handles DELETE /api/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	c, ok := h.sessionCart(w, r)
	if !ok {
		return
	}
	c.Clear()
	h.respond(w, c)
}
