package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"whatsfood/internal/admin"
	"whatsfood/internal/auth"
	"whatsfood/internal/model"
	"whatsfood/internal/siteconfig"

	"github.com/rs/zerolog"
)

// AdminHandler is the admin panel surface: configuration and catalogue
// editing, user management and section navigation. Every request is
// authenticated against the auth backend and the role is re-resolved,
// so a role change takes effect on the next request without a new
// sign-in. Staff may edit the menu and its categories; everything else
// requires admin.
type AdminHandler struct {
	backend  AuthBackend
	resolver RoleResolver
	users    UserManager
	config   *siteconfig.Store
	logger   zerolog.Logger

	mu        sync.Mutex
	workflows map[string]*admin.Workflow
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(backend AuthBackend, resolver RoleResolver, users UserManager, config *siteconfig.Store, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		backend:   backend,
		resolver:  resolver,
		users:     users,
		config:    config,
		logger:    logger.With().Str("handler", "admin").Logger(),
		workflows: make(map[string]*admin.Workflow),
	}
}

// authenticate resolves the request's identity and role. The error has
// already been written to the response when ok is false.
func (h *AdminHandler) authenticate(w http.ResponseWriter, r *http.Request) (*auth.Identity, model.Role, bool) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing bearer token", h.logger)
		return nil, "", false
	}

	identity, err := h.backend.GetUser(r.Context(), token)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return nil, "", false
	}

	return identity, h.resolver.Resolve(r.Context(), identity), true
}

// requireAdmin is authenticate plus an admin-only gate.
func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) (*auth.Identity, bool) {
	identity, role, ok := h.authenticate(w, r)
	if !ok {
		return nil, false
	}
	if role != model.RoleAdmin {
		writeDomainError(w, model.NewDomainError(model.ErrCodeForbidden, "Admin role required"), h.logger)
		return nil, false
	}
	return identity, true
}

// workflowFor returns the user's section workflow, feeding it the role
// resolved for this request.
func (h *AdminHandler) workflowFor(userID string, role model.Role) *admin.Workflow {
	h.mu.Lock()
	wf, ok := h.workflows[userID]
	if !ok {
		wf = admin.NewWorkflow()
		h.workflows[userID] = wf
	}
	h.mu.Unlock()

	wf.SetRole(role)
	return wf
}

type sectionsResponse struct {
	Sections []admin.Section `json:"sections"`
	Active   admin.Section   `json:"active"`
	Ready    bool            `json:"ready"`
}

// Sections handles GET /api/admin/sections
func (h *AdminHandler) Sections(w http.ResponseWriter, r *http.Request) {
	identity, role, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	wf := h.workflowFor(identity.ID, role)
	active, _ := wf.Active()
	writeJSON(w, http.StatusOK, sectionsResponse{
		Sections: wf.Sections(),
		Active:   active,
		Ready:    wf.Ready(),
	})
}

// ActivateSection handles PUT /api/admin/sections/active
func (h *AdminHandler) ActivateSection(w http.ResponseWriter, r *http.Request) {
	identity, role, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	var req struct {
		Section admin.Section `json:"section"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	wf := h.workflowFor(identity.ID, role)
	if err := wf.Activate(req.Section); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	active, _ := wf.Active()
	writeJSON(w, http.StatusOK, sectionsResponse{
		Sections: wf.Sections(),
		Active:   active,
		Ready:    wf.Ready(),
	})
}

// GetConfig handles GET /api/admin/config
func (h *AdminHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := h.authenticate(w, r); !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.config.Active())
}

// PutConfig handles PUT /api/admin/config. Full replacement of the site
// configuration; admin only.
func (h *AdminHandler) PutConfig(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var cfg model.SiteConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if !h.config.Save(r.Context(), &cfg) {
		writeError(w, http.StatusInternalServerError, "failed to save configuration", h.logger)
		return
	}

	h.logger.Info().Str("user_id", identity.ID).Msg("site configuration replaced")
	writeJSON(w, http.StatusOK, h.config.Active())
}

// edit runs a catalogue mutation against a copy of the active config
// and persists the result.
func (h *AdminHandler) edit(w http.ResponseWriter, r *http.Request, fn func(*model.SiteConfig) error) {
	cfg := h.config.Active()
	if err := fn(cfg); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if !h.config.Save(r.Context(), cfg) {
		writeError(w, http.StatusInternalServerError, "failed to save configuration", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.config.Active())
}

// AddCategory handles POST /api/admin/categories. Open to staff.
func (h *AdminHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := h.authenticate(w, r); !ok {
		return
	}

	var cat model.Category
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if cat.ID == "" || cat.Name == "" {
		writeError(w, http.StatusBadRequest, "category id and name are required", h.logger)
		return
	}

	h.edit(w, r, func(cfg *model.SiteConfig) error {
		siteconfig.AddCategory(cfg, cat)
		return nil
	})
}

// RemoveCategory handles DELETE /api/admin/categories/{id}. Open to staff.
func (h *AdminHandler) RemoveCategory(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := h.authenticate(w, r); !ok {
		return
	}

	h.edit(w, r, func(cfg *model.SiteConfig) error {
		return siteconfig.RemoveCategory(cfg, r.PathValue("id"))
	})
}

// MoveCategory handles POST /api/admin/categories/{id}/move. Open to staff.
func (h *AdminHandler) MoveCategory(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := h.authenticate(w, r); !ok {
		return
	}

	var req struct {
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	h.edit(w, r, func(cfg *model.SiteConfig) error {
		switch req.Direction {
		case "up":
			return siteconfig.MoveCategoryUp(cfg, r.PathValue("id"))
		case "down":
			return siteconfig.MoveCategoryDown(cfg, r.PathValue("id"))
		default:
			return model.NewDomainError(model.ErrCodeMissingField, "Direction must be up or down")
		}
	})
}

// UpsertItem handles PUT /api/admin/items. Open to staff.
func (h *AdminHandler) UpsertItem(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := h.authenticate(w, r); !ok {
		return
	}

	var req struct {
		CategoryID string         `json:"categoryId"`
		Item       model.MenuItem `json:"item"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.Item.ID == "" || req.Item.Name == "" {
		writeError(w, http.StatusBadRequest, "item id and name are required", h.logger)
		return
	}

	h.edit(w, r, func(cfg *model.SiteConfig) error {
		return siteconfig.UpsertItem(cfg, req.CategoryID, req.Item)
	})
}

// RemoveItem handles DELETE /api/admin/items/{id}. Open to staff.
func (h *AdminHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := h.authenticate(w, r); !ok {
		return
	}

	h.edit(w, r, func(cfg *model.SiteConfig) error {
		return siteconfig.RemoveItem(cfg, r.PathValue("id"))
	})
}

// AddDenomination handles POST /api/admin/denominations. Admin only.
func (h *AdminHandler) AddDenomination(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	var d model.CashDenomination
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if d.Value <= 0 {
		writeError(w, http.StatusBadRequest, "denomination value must be positive", h.logger)
		return
	}

	h.edit(w, r, func(cfg *model.SiteConfig) error {
		return siteconfig.AddDenomination(cfg, d)
	})
}

// RemoveDenomination handles DELETE /api/admin/denominations/{value}. Admin only.
func (h *AdminHandler) RemoveDenomination(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	value, err := strconv.ParseFloat(r.PathValue("value"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid denomination value", h.logger)
		return
	}

	h.edit(w, r, func(cfg *model.SiteConfig) error {
		siteconfig.RemoveDenomination(cfg, value)
		return nil
	})
}

// ListUsers handles GET /api/admin/users. Admin only.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to list users", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// CreateUser handles POST /api/admin/users. Admin only.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	var req struct {
		Email    string     `json:"email"`
		Password string     `json:"password"`
		Role     model.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required", h.logger)
		return
	}

	created, err := h.users.Create(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateUser handles PUT /api/admin/users/{id}. Admin only. Absent
// fields are left untouched.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	var req struct {
		Email    *string     `json:"email"`
		Password *string     `json:"password"`
		Role     *model.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.users.Update(r.Context(), r.PathValue("id"), req.Email, req.Password, req.Role); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteUser handles DELETE /api/admin/users/{id}. Admin only.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	if err := h.users.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
