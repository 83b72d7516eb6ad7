package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"whatsfood/internal/model"

	"github.com/rs/zerolog"
)

// Identity is a user record as the hosted auth backend reports it.
type Identity struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	CreatedAt    time.Time  `json:"created_at"`
	LastSignInAt *time.Time `json:"last_sign_in_at"`
}

// Session is the result of a successful password sign-in.
type Session struct {
	AccessToken  string   `json:"access_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	RefreshToken string   `json:"refresh_token"`
	User         Identity `json:"user"`
}

// Client talks to the hosted auth backend over its REST surface.
// Regular operations authenticate with the public (anon) key plus the
// caller's bearer token; admin operations use the service-role key.
// Every call is an independent, context-bound request with no retry
// policy; retries are the caller's decision.
type Client struct {
	httpClient *http.Client
	baseURL    string
	anonKey    string
	serviceKey string
	logger     zerolog.Logger
}

// NewClient creates an auth backend client.
func NewClient(baseURL, anonKey, serviceKey string, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		anonKey:    anonKey,
		serviceKey: serviceKey,
		logger:     logger.With().Str("component", "auth-client").Logger(),
	}
}

// SignIn exchanges email and password for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}

	var session Session
	status, err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", c.anonKey, c.anonKey, body, &session)
	if err != nil {
		return nil, err
	}
	if status == http.StatusBadRequest || status == http.StatusUnauthorized {
		c.logger.Warn().Str("email", email).Int("status", status).Msg("sign-in rejected")
		return nil, model.ErrInvalidCredentials
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("sign-in failed with status %d", status)
	}

	return &session, nil
}

// SignOut revokes the session behind the bearer token.
func (c *Client) SignOut(ctx context.Context, token string) error {
	status, err := c.do(ctx, http.MethodPost, "/auth/v1/logout", c.anonKey, token, nil, nil)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent && status != http.StatusOK {
		return fmt.Errorf("sign-out failed with status %d", status)
	}
	return nil
}

// GetUser resolves the identity behind a bearer token.
func (c *Client) GetUser(ctx context.Context, token string) (*Identity, error) {
	var identity Identity
	status, err := c.do(ctx, http.MethodGet, "/auth/v1/user", c.anonKey, token, nil, &identity)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return nil, model.NewDomainError(model.ErrCodeUnauthorised, "Session is not valid")
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("get user failed with status %d", status)
	}
	return &identity, nil
}

// ListUsers returns all identities. Requires the service-role key.
func (c *Client) ListUsers(ctx context.Context) ([]Identity, error) {
	var out struct {
		Users []Identity `json:"users"`
	}
	status, err := c.do(ctx, http.MethodGet, "/auth/v1/admin/users", c.serviceKey, c.serviceKey, nil, &out)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("list users failed with status %d", status)
	}
	return out.Users, nil
}

// CreateUser provisions a new identity with a confirmed email.
func (c *Client) CreateUser(ctx context.Context, email, password string) (*Identity, error) {
	body := map[string]any{
		"email":         email,
		"password":      password,
		"email_confirm": true,
	}

	var identity Identity
	status, err := c.do(ctx, http.MethodPost, "/auth/v1/admin/users", c.serviceKey, c.serviceKey, body, &identity)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, fmt.Errorf("create user failed with status %d", status)
	}
	return &identity, nil
}

// UpdateUser changes an identity's email and/or password. Nil fields
// are left untouched.
func (c *Client) UpdateUser(ctx context.Context, id string, email, password *string) error {
	body := map[string]any{}
	if email != nil {
		body["email"] = *email
	}
	if password != nil {
		body["password"] = *password
	}
	if len(body) == 0 {
		return nil
	}

	status, err := c.do(ctx, http.MethodPut, "/auth/v1/admin/users/"+id, c.serviceKey, c.serviceKey, body, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("update user failed with status %d", status)
	}
	return nil
}

// DeleteUser removes an identity.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	status, err := c.do(ctx, http.MethodDelete, "/auth/v1/admin/users/"+id, c.serviceKey, c.serviceKey, nil, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return fmt.Errorf("delete user failed with status %d", status)
	}
	return nil
}

// RequestPasswordReset asks the backend to email a reset link that
// redirects back to the given URL.
func (c *Client) RequestPasswordReset(ctx context.Context, email, redirectTo string) error {
	path := "/auth/v1/recover"
	if redirectTo != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}

	status, err := c.do(ctx, http.MethodPost, path, c.anonKey, c.anonKey, map[string]string{"email": email}, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return fmt.Errorf("password reset request failed with status %d", status)
	}
	return nil
}

// UpdatePassword sets a new password for the identity behind the
// bearer token, as issued by the reset-link flow.
func (c *Client) UpdatePassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"password": newPassword}

	status, err := c.do(ctx, http.MethodPut, "/auth/v1/user", c.anonKey, token, body, nil)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		return model.NewDomainError(model.ErrCodeUnauthorised, "Reset token is not valid")
	}
	if status != http.StatusOK {
		return fmt.Errorf("password update failed with status %d", status)
	}
	return nil
}

// do performs one JSON request and decodes the response into out when
// the status is a 2xx and out is non-nil. The status code is always
// returned so callers can map non-2xx responses to domain errors.
func (c *Client) do(ctx context.Context, method, path, apiKey, bearer string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", apiKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("auth backend request failed")
		return 0, fmt.Errorf("auth backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode auth backend response: %w", err)
		}
	}

	return resp.StatusCode, nil
}
