package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"whatsfood/internal/auth"
	"whatsfood/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	backend := new(MockAuthBackend)
	resolver := new(MockRoleResolver)
	h := NewAuthHandler(backend, resolver, zerolog.Nop())

	identity := auth.Identity{ID: "user-1", Email: "ana@example.com"}
	backend.On("SignIn", mock.Anything, "ana@example.com", "secret").
		Return(&auth.Session{AccessToken: "tok", ExpiresIn: 3600, User: identity}, nil)
	resolver.On("Resolve", mock.Anything, &identity).Return(model.RoleAdmin)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"ana@example.com","password":"secret"}`))
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp sessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "tok", resp.AccessToken)
	assert.Equal(t, model.RoleAdmin, resp.User.Role)
	backend.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	backend := new(MockAuthBackend)
	h := NewAuthHandler(backend, new(MockRoleResolver), zerolog.Nop())

	backend.On("SignIn", mock.Anything, "ana@example.com", "wrong").
		Return(nil, model.ErrInvalidCredentials)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"ana@example.com","password":"wrong"}`))
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
}

func TestLogin_MissingFields(t *testing.T) {
	h := NewAuthHandler(new(MockAuthBackend), new(MockRoleResolver), zerolog.Nop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"ana@example.com"}`))
	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMe(t *testing.T) {
	backend := new(MockAuthBackend)
	resolver := new(MockRoleResolver)
	h := NewAuthHandler(backend, resolver, zerolog.Nop())

	identity := &auth.Identity{ID: "user-1", Email: "ana@example.com"}
	backend.On("GetUser", mock.Anything, "tok").Return(identity, nil)
	resolver.On("Resolve", mock.Anything, identity).Return(model.RoleStaff)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	h.Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp meResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "user-1", resp.ID)
	assert.Equal(t, model.RoleStaff, resp.Role)
}

func TestMe_MissingToken(t *testing.T) {
	h := NewAuthHandler(new(MockAuthBackend), new(MockRoleResolver), zerolog.Nop())

	rec := httptest.NewRecorder()
	h.Me(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout_IgnoresBackendFailure(t *testing.T) {
	backend := new(MockAuthBackend)
	h := NewAuthHandler(backend, new(MockRoleResolver), zerolog.Nop())

	backend.On("SignOut", mock.Anything, "tok").Return(errors.New("backend down"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer tok")
	h.Logout(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestResetPassword_AlwaysAccepted(t *testing.T) {
	backend := new(MockAuthBackend)
	h := NewAuthHandler(backend, new(MockRoleResolver), zerolog.Nop())

	backend.On("RequestPasswordReset", mock.Anything, "ana@example.com", "").Return(errors.New("backend down"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/reset",
		strings.NewReader(`{"email":"ana@example.com"}`))
	h.ResetPassword(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUpdatePassword(t *testing.T) {
	backend := new(MockAuthBackend)
	h := NewAuthHandler(backend, new(MockRoleResolver), zerolog.Nop())

	backend.On("UpdatePassword", mock.Anything, "tok", "new-secret").Return(nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/auth/password",
		strings.NewReader(`{"password":"new-secret"}`))
	req.Header.Set("Authorization", "Bearer tok")
	h.UpdatePassword(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	backend.AssertExpectations(t)
}
