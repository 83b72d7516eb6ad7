package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"whatsfood/internal/cart"
	"whatsfood/internal/middleware"
	"whatsfood/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutTestServer(t *testing.T) (*cart.Store, http.Handler) {
	t.Helper()
	carts := cart.NewStore(zerolog.Nop())
	h := NewCheckoutHandler(carts, newConfigStore(t), zerolog.Nop())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/checkout", h.Checkout)
	return carts, middleware.Session(zerolog.Nop())(mux)
}

func TestCheckout(t *testing.T) {
	carts, srv := checkoutTestServer(t)
	session := uuid.New()

	item := model.DefaultSiteConfig().FindItem("cappuccino")
	require.NotNil(t, item)
	carts.Get(session).Add(*item, "")
	carts.Get(session).Add(*item, "")

	body := `{"customerName":"Ana","type":"pickup","payment":"cash","cashAmount":500}`
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, sessionRequest(http.MethodPost, "/api/checkout", body, session))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp checkoutResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, strings.HasPrefix(resp.Link, "https://wa.me/18092010357?text="), resp.Link)
	assert.Contains(t, resp.Message, "🧑 *Cliente:* Ana")
	assert.Contains(t, resp.Message, "• 2x Cappuccino")
	assert.InDelta(t, 240, resp.Total, 0.001)

	// A successful checkout empties the cart.
	assert.Equal(t, 0, carts.Get(session).TotalItems())
}

func TestCheckout_EmptyCart(t *testing.T) {
	_, srv := checkoutTestServer(t)

	body := `{"customerName":"Ana","type":"pickup","payment":"transfer"}`
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, sessionRequest(http.MethodPost, "/api/checkout", body, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMPTY_CART")
}

func TestCheckout_ValidationLeavesCartIntact(t *testing.T) {
	carts, srv := checkoutTestServer(t)
	session := uuid.New()

	item := model.DefaultSiteConfig().FindItem("cappuccino")
	require.NotNil(t, item)
	carts.Get(session).Add(*item, "")

	// Delivery without phone or address is rejected.
	body := `{"customerName":"Ana","type":"delivery","payment":"transfer"}`
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, sessionRequest(http.MethodPost, "/api/checkout", body, session))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_DELIVERY_DETAIL")
	assert.Equal(t, 1, carts.Get(session).TotalItems())
}
