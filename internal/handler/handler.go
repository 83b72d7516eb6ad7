package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"whatsfood/internal/auth"
	"whatsfood/internal/model"

	"github.com/rs/zerolog"
)

// AuthBackend is the slice of the hosted auth backend the HTTP surface
// needs. *auth.Client satisfies it.
type AuthBackend interface {
	SignIn(ctx context.Context, email, password string) (*auth.Session, error)
	SignOut(ctx context.Context, token string) error
	GetUser(ctx context.Context, token string) (*auth.Identity, error)
	RequestPasswordReset(ctx context.Context, email, redirectTo string) error
	UpdatePassword(ctx context.Context, token, newPassword string) error
}

// RoleResolver maps an identity to its application role.
// *role.Resolver satisfies it.
type RoleResolver interface {
	Resolve(ctx context.Context, identity *auth.Identity) model.Role
}

// UserManager is the account management surface. *user.Service
// satisfies it.
type UserManager interface {
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, email, password string, r model.Role) (*model.User, error)
	Update(ctx context.Context, id string, email, password *string, r *model.Role) error
	Delete(ctx context.Context, id string) error
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeDomainError maps a domain error to its HTTP status; anything
// else is reported as an internal error with a generic message.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		writeError(w, http.StatusInternalServerError, "internal error", logger)
		return
	}

	status := http.StatusBadRequest
	switch domainErr.Code {
	case model.ErrCodeItemNotFound, model.ErrCodeCategoryNotFound:
		status = http.StatusNotFound
	case model.ErrCodeUnauthorised, model.ErrCodeInvalidCredentials:
		status = http.StatusUnauthorized
	case model.ErrCodeForbidden, model.ErrCodeSectionForbidden:
		status = http.StatusForbidden
	}

	logger.Warn().Str("code", domainErr.Code).Int("status", status).Msg(domainErr.Message)
	writeJSON(w, status, ErrorResponse{Error: domainErr.Message, Code: domainErr.Code})
}

// bearerToken extracts the token from an Authorization header.
func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
