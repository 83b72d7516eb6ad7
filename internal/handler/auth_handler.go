package handler

import (
	"encoding/json"
	"net/http"

	"whatsfood/internal/model"

	"github.com/rs/zerolog"
)

// AuthHandler exposes sign-in, sign-out and the session's own account
// operations. Credentials only pass through to the auth backend; no
// password ever touches local storage.
type AuthHandler struct {
	backend  AuthBackend
	resolver RoleResolver
	logger   zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(backend AuthBackend, resolver RoleResolver, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		backend:  backend,
		resolver: resolver,
		logger:   logger.With().Str("handler", "auth").Logger(),
	}
}

type sessionResponse struct {
	AccessToken string     `json:"accessToken"`
	ExpiresIn   int        `json:"expiresIn"`
	User        meResponse `json:"user"`
}

type meResponse struct {
	ID    string     `json:"id"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required", h.logger)
		return
	}

	session, err := h.backend.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	role := h.resolver.Resolve(r.Context(), &session.User)
	h.logger.Info().Str("user_id", session.User.ID).Str("role", string(role)).Msg("user signed in")

	writeJSON(w, http.StatusOK, sessionResponse{
		AccessToken: session.AccessToken,
		ExpiresIn:   session.ExpiresIn,
		User: meResponse{
			ID:    session.User.ID,
			Email: session.User.Email,
			Role:  role,
		},
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing bearer token", h.logger)
		return
	}

	if err := h.backend.SignOut(r.Context(), token); err != nil {
		h.logger.Warn().Err(err).Msg("sign-out failed")
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing bearer token", h.logger)
		return
	}

	identity, err := h.backend.GetUser(r.Context(), token)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, meResponse{
		ID:    identity.ID,
		Email: identity.Email,
		Role:  h.resolver.Resolve(r.Context(), identity),
	})
}

// ResetPassword handles POST /api/auth/reset. Always answers 204 so the
// endpoint does not reveal which emails have accounts.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email      string `json:"email"`
		RedirectTo string `json:"redirectTo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required", h.logger)
		return
	}

	if err := h.backend.RequestPasswordReset(r.Context(), req.Email, req.RedirectTo); err != nil {
		h.logger.Warn().Err(err).Msg("password reset request failed")
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdatePassword handles PUT /api/auth/password
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing bearer token", h.logger)
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "password is required", h.logger)
		return
	}

	if err := h.backend.UpdatePassword(r.Context(), token, req.Password); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
