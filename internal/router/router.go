package router

import (
	"net/http"

	"whatsfood/internal/handler"
	"whatsfood/internal/middleware"

	"github.com/rs/zerolog"
)

// New wires all routes with the middleware chain applied.
func New(
	menuHandler *handler.MenuHandler,
	cartHandler *handler.CartHandler,
	checkoutHandler *handler.CheckoutHandler,
	authHandler *handler.AuthHandler,
	adminHandler *handler.AdminHandler,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", menuHandler.Health)

	// Public storefront
	mux.HandleFunc("GET /api/menu", menuHandler.Menu)
	mux.HandleFunc("GET /api/config", menuHandler.Config)

	// Session cart
	mux.HandleFunc("GET /api/cart", cartHandler.Get)
	mux.HandleFunc("DELETE /api/cart", cartHandler.Clear)
	mux.HandleFunc("POST /api/cart/items", cartHandler.AddItem)
	mux.HandleFunc("DELETE /api/cart/items/{id}", cartHandler.RemoveItem)
	mux.HandleFunc("PUT /api/cart/items/{id}/note", cartHandler.UpdateNote)

	// Checkout
	mux.HandleFunc("POST /api/checkout", checkoutHandler.Checkout)

	// Authentication
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/me", authHandler.Me)
	mux.HandleFunc("POST /api/auth/reset", authHandler.ResetPassword)
	mux.HandleFunc("PUT /api/auth/password", authHandler.UpdatePassword)

	// Admin panel
	mux.HandleFunc("GET /api/admin/sections", adminHandler.Sections)
	mux.HandleFunc("PUT /api/admin/sections/active", adminHandler.ActivateSection)
	mux.HandleFunc("GET /api/admin/config", adminHandler.GetConfig)
	mux.HandleFunc("PUT /api/admin/config", adminHandler.PutConfig)
	mux.HandleFunc("POST /api/admin/categories", adminHandler.AddCategory)
	mux.HandleFunc("DELETE /api/admin/categories/{id}", adminHandler.RemoveCategory)
	mux.HandleFunc("POST /api/admin/categories/{id}/move", adminHandler.MoveCategory)
	mux.HandleFunc("PUT /api/admin/items", adminHandler.UpsertItem)
	mux.HandleFunc("DELETE /api/admin/items/{id}", adminHandler.RemoveItem)
	mux.HandleFunc("POST /api/admin/denominations", adminHandler.AddDenomination)
	mux.HandleFunc("DELETE /api/admin/denominations/{value}", adminHandler.RemoveDenomination)
	mux.HandleFunc("GET /api/admin/users", adminHandler.ListUsers)
	mux.HandleFunc("POST /api/admin/users", adminHandler.CreateUser)
	mux.HandleFunc("PUT /api/admin/users/{id}", adminHandler.UpdateUser)
	mux.HandleFunc("DELETE /api/admin/users/{id}", adminHandler.DeleteUser)

	// Middleware chain: recovery first so panics anywhere downstream
	// still produce a response.
	var h http.Handler = mux
	h = middleware.Session(logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
