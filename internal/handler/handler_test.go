package handler

import (
	"context"

	"whatsfood/internal/auth"
	"whatsfood/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockAuthBackend is a mock implementation of AuthBackend.
type MockAuthBackend struct {
	mock.Mock
}

func (m *MockAuthBackend) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockAuthBackend) SignOut(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthBackend) GetUser(ctx context.Context, token string) (*auth.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Identity), args.Error(1)
}

func (m *MockAuthBackend) RequestPasswordReset(ctx context.Context, email, redirectTo string) error {
	return m.Called(ctx, email, redirectTo).Error(0)
}

func (m *MockAuthBackend) UpdatePassword(ctx context.Context, token, newPassword string) error {
	return m.Called(ctx, token, newPassword).Error(0)
}

// MockRoleResolver is a mock implementation of RoleResolver.
type MockRoleResolver struct {
	mock.Mock
}

func (m *MockRoleResolver) Resolve(ctx context.Context, identity *auth.Identity) model.Role {
	return m.Called(ctx, identity).Get(0).(model.Role)
}

// MockUserManager is a mock implementation of UserManager.
type MockUserManager struct {
	mock.Mock
}

func (m *MockUserManager) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserManager) Create(ctx context.Context, email, password string, r model.Role) (*model.User, error) {
	args := m.Called(ctx, email, password, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserManager) Update(ctx context.Context, id string, email, password *string, r *model.Role) error {
	return m.Called(ctx, id, email, password, r).Error(0)
}

func (m *MockUserManager) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
