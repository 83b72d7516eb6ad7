package handler

import (
	"encoding/json"
	"net/http"

	"whatsfood/internal/cart"
	"whatsfood/internal/checkout"
	"whatsfood/internal/middleware"
	"whatsfood/internal/siteconfig"

	"github.com/rs/zerolog"
)

// CheckoutHandler turns the session cart plus the order form into a
// WhatsApp deep link. The order itself is never stored; the deep link
// is the hand-off to the restaurant.
type CheckoutHandler struct {
	carts  *cart.Store
	config *siteconfig.Store
	logger zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(carts *cart.Store, config *siteconfig.Store, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		carts:  carts,
		config: config,
		logger: logger.With().Str("handler", "checkout").Logger(),
	}
}

type checkoutResponse struct {
	Link    string  `json:"link"`
	Message string  `json:"message"`
	Total   float64 `json:"total"`
}

// Checkout handles POST /api/checkout. A successful checkout clears the
// session cart; a validation failure leaves it untouched.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var order checkout.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	sessionID, ok := middleware.SessionID(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "no browsing session", h.logger)
		return
	}

	c := h.carts.Get(sessionID)
	lines := c.Lines()
	cfg := h.config.Active()

	link, err := checkout.Link(cfg, lines, &order)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	total := c.TotalAmount()
	c.Clear()

	h.logger.Info().
		Str("session_id", sessionID.String()).
		Str("order_type", string(order.Type)).
		Float64("total", total).
		Msg("order checked out")

	writeJSON(w, http.StatusOK, checkoutResponse{
		Link:    link,
		Message: checkout.Message(cfg, lines, &order),
		Total:   total,
	})
}
