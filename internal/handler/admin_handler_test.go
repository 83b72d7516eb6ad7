package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"whatsfood/internal/admin"
	"whatsfood/internal/auth"
	"whatsfood/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	backend  *MockAuthBackend
	resolver *MockRoleResolver
	users    *MockUserManager
	handler  *AdminHandler
	srv      http.Handler
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()

	f := &adminFixture{
		backend:  new(MockAuthBackend),
		resolver: new(MockRoleResolver),
		users:    new(MockUserManager),
	}
	f.handler = NewAdminHandler(f.backend, f.resolver, f.users, newConfigStore(t), zerolog.Nop())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/admin/sections", f.handler.Sections)
	mux.HandleFunc("PUT /api/admin/sections/active", f.handler.ActivateSection)
	mux.HandleFunc("GET /api/admin/config", f.handler.GetConfig)
	mux.HandleFunc("PUT /api/admin/config", f.handler.PutConfig)
	mux.HandleFunc("POST /api/admin/categories", f.handler.AddCategory)
	mux.HandleFunc("DELETE /api/admin/categories/{id}", f.handler.RemoveCategory)
	mux.HandleFunc("POST /api/admin/categories/{id}/move", f.handler.MoveCategory)
	mux.HandleFunc("PUT /api/admin/items", f.handler.UpsertItem)
	mux.HandleFunc("DELETE /api/admin/items/{id}", f.handler.RemoveItem)
	mux.HandleFunc("POST /api/admin/denominations", f.handler.AddDenomination)
	mux.HandleFunc("DELETE /api/admin/denominations/{value}", f.handler.RemoveDenomination)
	mux.HandleFunc("GET /api/admin/users", f.handler.ListUsers)
	mux.HandleFunc("POST /api/admin/users", f.handler.CreateUser)
	mux.HandleFunc("PUT /api/admin/users/{id}", f.handler.UpdateUser)
	mux.HandleFunc("DELETE /api/admin/users/{id}", f.handler.DeleteUser)
	f.srv = mux

	return f
}

// signedIn arranges authentication as the given role for every request
// carrying the matching token.
func (f *adminFixture) signedIn(userID string, role model.Role) {
	identity := &auth.Identity{ID: userID, Email: userID + "@example.com"}
	f.backend.On("GetUser", mock.Anything, "tok-"+userID).Return(identity, nil)
	f.resolver.On("Resolve", mock.Anything, identity).Return(role)
}

func (f *adminFixture) do(method, target, body, userID string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer tok-"+userID)
	}
	rec := httptest.NewRecorder()
	f.srv.ServeHTTP(rec, req)
	return rec
}

func TestAdmin_RequiresToken(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.do(http.MethodGet, "/api/admin/config", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdmin_Sections(t *testing.T) {
	tests := []struct {
		name         string
		role         model.Role
		wantSections []admin.Section
		wantActive   admin.Section
	}{
		{
			name: "Admin sees all sections",
			role: model.RoleAdmin,
			wantSections: []admin.Section{
				admin.SectionGeneral, admin.SectionAppearance, admin.SectionUsers,
				admin.SectionSystem, admin.SectionMenu, admin.SectionCategories,
			},
			wantActive: admin.SectionGeneral,
		},
		{
			name:         "Staff sees menu and categories only",
			role:         model.RoleStaff,
			wantSections: []admin.Section{admin.SectionMenu, admin.SectionCategories},
			wantActive:   admin.SectionMenu,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAdminFixture(t)
			f.signedIn("u1", tt.role)

			rec := f.do(http.MethodGet, "/api/admin/sections", "", "u1")
			require.Equal(t, http.StatusOK, rec.Code)

			var resp sectionsResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.True(t, resp.Ready)
			assert.Equal(t, tt.wantSections, resp.Sections)
			assert.Equal(t, tt.wantActive, resp.Active)
		})
	}
}

func TestAdmin_StaffCannotActivateAdminSection(t *testing.T) {
	f := newAdminFixture(t)
	f.signedIn("u1", model.RoleStaff)

	rec := f.do(http.MethodPut, "/api/admin/sections/active", `{"section":"users"}`, "u1")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "SECTION_FORBIDDEN")
}

func TestAdmin_ActivateSection(t *testing.T) {
	f := newAdminFixture(t)
	f.signedIn("u1", model.RoleAdmin)

	rec := f.do(http.MethodPut, "/api/admin/sections/active", `{"section":"users"}`, "u1")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp sectionsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, admin.SectionUsers, resp.Active)
}

func TestAdmin_DemotionForcesStaffSection(t *testing.T) {
	f := newAdminFixture(t)

	identity := &auth.Identity{ID: "u1", Email: "u1@example.com"}
	f.backend.On("GetUser", mock.Anything, "tok-u1").Return(identity, nil)
	f.resolver.On("Resolve", mock.Anything, identity).Return(model.RoleAdmin).Once()
	f.resolver.On("Resolve", mock.Anything, identity).Return(model.RoleStaff)

	rec := f.do(http.MethodPut, "/api/admin/sections/active", `{"section":"users"}`, "u1")
	require.Equal(t, http.StatusOK, rec.Code)

	// The next request re-resolves the role as staff; the active
	// section snaps back to menu.
	rec = f.do(http.MethodGet, "/api/admin/sections", "", "u1")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp sectionsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, admin.SectionMenu, resp.Active)
}

func TestAdmin_StaffCannotReplaceConfig(t *testing.T) {
	f := newAdminFixture(t)
	f.signedIn("u1", model.RoleStaff)

	rec := f.do(http.MethodPut, "/api/admin/config", `{"restaurantName":"X"}`, "u1")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "FORBIDDEN")
}

func TestAdmin_ReplaceConfig(t *testing.T) {
	f := newAdminFixture(t)
	f.signedIn("u1", model.RoleAdmin)

	cfg := model.DefaultSiteConfig()
	cfg.RestaurantName = "LA ESQUINA"
	body, err := json.Marshal(cfg)
	require.NoError(t, err)

	rec := f.do(http.MethodPut, "/api/admin/config", string(body), "u1")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "LA ESQUINA", f.handler.config.Active().RestaurantName)
}

func TestAdmin_StaffCanEditMenu(t *testing.T) {
	f := newAdminFixture(t)
	f.signedIn("u1", model.RoleStaff)

	body := `{"categoryId":"bebidas","item":{"id":"limonada","name":"Limonada","price":60}}`
	rec := f.do(http.MethodPut, "/api/admin/items", body, "u1")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.NotNil(t, f.handler.config.Active().FindItem("limonada"))
}

func TestAdmin_UpsertItem_UnknownCategory(t *testing.T) {
	f := newAdminFixture(t)
	f.signedIn("u1", model.RoleStaff)

	body := `{"categoryId":"nope","item":{"id":"x","name":"X"}}`
	rec := f.do(http.MethodPut, "/api/admin/items", body, "u1")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "CATEGORY_NOT_FOUND")
}

func TestAdmin_CategoryLifecycle(t *testing.T) {
	f := newAdminFixture(t)
	f.signedIn("u1", model.RoleStaff)

	rec := f.do(http.MethodPost, "/api/admin/categories", `{"id":"postres-2","name":"Más Postres","icon":"🍮"}`, "u1")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodPost, "/api/admin/categories/postres-2/move", `{"direction":"up"}`, "u1")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodDelete, "/api/admin/categories/postres-2", "", "u1")
	require.Equal(t, http.StatusOK, rec.Code)

	var cfg model.SiteConfig
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cfg))
	for _, cat := range cfg.Categories {
		assert.NotEqual(t, "postres-2", cat.ID)
	}
}

func TestAdmin_DenominationsAdminOnly(t *testing.T) {
	f := newAdminFixture(t)
	f.signedIn("u1", model.RoleStaff)

	rec := f.do(http.MethodPost, "/api/admin/denominations", `{"value":100,"label":"RD$100"}`, "u1")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdmin_AddDuplicateDenomination(t *testing.T) {
	f := newAdminFixture(t)
	f.signedIn("u1", model.RoleAdmin)

	rec := f.do(http.MethodPost, "/api/admin/denominations", `{"value":500,"label":"RD$500"}`, "u1")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "DUPLICATE_DENOMINATION")
}

func TestAdmin_RemoveDenomination(t *testing.T) {
	f := newAdminFixture(t)
	f.signedIn("u1", model.RoleAdmin)

	rec := f.do(http.MethodDelete, "/api/admin/denominations/500", "", "u1")
	require.Equal(t, http.StatusOK, rec.Code)

	for _, d := range f.handler.config.Active().CashDenominations {
		assert.NotEqual(t, 500.0, d.Value)
	}
}

func TestAdmin_UsersAdminOnly(t *testing.T) {
	f := newAdminFixture(t)
	f.signedIn("u1", model.RoleStaff)

	rec := f.do(http.MethodGet, "/api/admin/users", "", "u1")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	f.users.AssertNotCalled(t, "List", mock.Anything)
}

func TestAdmin_CreateUser(t *testing.T) {
	f := newAdminFixture(t)
	f.signedIn("u1", model.RoleAdmin)

	created := &model.User{ID: "u2", Email: "beto@example.com", Role: model.RoleStaff}
	f.users.On("Create", mock.Anything, "beto@example.com", "secret", model.RoleStaff).Return(created, nil)

	body := `{"email":"beto@example.com","password":"secret","role":"staff"}`
	rec := f.do(http.MethodPost, "/api/admin/users", body, "u1")

	require.Equal(t, http.StatusCreated, rec.Code)
	f.users.AssertExpectations(t)
}

func TestAdmin_CreateUser_InvalidRole(t *testing.T) {
	f := newAdminFixture(t)
	f.signedIn("u1", model.RoleAdmin)

	f.users.On("Create", mock.Anything, "beto@example.com", "secret", model.Role("owner")).
		Return(nil, model.ErrInvalidRole)

	body := `{"email":"beto@example.com","password":"secret","role":"owner"}`
	rec := f.do(http.MethodPost, "/api/admin/users", body, "u1")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_ROLE")
}

func TestAdmin_UpdateUserRoleOnly(t *testing.T) {
	f := newAdminFixture(t)
	f.signedIn("u1", model.RoleAdmin)

	f.users.On("Update", mock.Anything, "u2", (*string)(nil), (*string)(nil), mock.MatchedBy(func(r *model.Role) bool {
		return r != nil && *r == model.RoleAdmin
	})).Return(nil)

	rec := f.do(http.MethodPut, "/api/admin/users/u2", `{"role":"admin"}`, "u1")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	f.users.AssertExpectations(t)
}

func TestAdmin_DeleteUser(t *testing.T) {
	f := newAdminFixture(t)
	f.signedIn("u1", model.RoleAdmin)

	f.users.On("Delete", mock.Anything, "u2").Return(nil)

	rec := f.do(http.MethodDelete, "/api/admin/users/u2", "", "u1")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	f.users.AssertExpectations(t)
}
