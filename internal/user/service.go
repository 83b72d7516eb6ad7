package user

import (
	"context"
	"fmt"

	"whatsfood/internal/auth"
	"whatsfood/internal/model"
	"whatsfood/internal/role"

	"github.com/rs/zerolog"
)

// AuthAdmin is the administrative surface of the auth backend the
// service needs. *auth.Client satisfies it.
type AuthAdmin interface {
	ListUsers(ctx context.Context) ([]auth.Identity, error)
	CreateUser(ctx context.Context, email, password string) (*auth.Identity, error)
	UpdateUser(ctx context.Context, id string, email, password *string) error
	DeleteUser(ctx context.Context, id string) error
}

// Service manages user accounts: identities live in the hosted auth
// backend, roles in the local side table. Role writes are best-effort
// around identity writes; a failed role write never blocks the account
// operation, it is logged and the identity keeps the staff default.
type Service struct {
	authAdmin AuthAdmin
	roles     role.Repository
	logger    zerolog.Logger
}

// NewService creates a new user management service.
func NewService(authAdmin AuthAdmin, roles role.Repository, logger zerolog.Logger) *Service {
	return &Service{
		authAdmin: authAdmin,
		roles:     roles,
		logger:    logger.With().Str("service", "user").Logger(),
	}
}

// List returns all accounts with their roles. Identities without a
// role record appear as staff. A role table failure degrades the
// listing to all-staff rather than failing it.
func (s *Service) List(ctx context.Context) ([]model.User, error) {
	identities, err := s.authAdmin.ListUsers(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list identities")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	roles, err := s.roles.GetAll(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load roles, listing users as staff")
		roles = nil
	}

	users := make([]model.User, len(identities))
	for i, identity := range identities {
		r := roles[identity.ID]
		if !r.Valid() {
			r = model.RoleStaff
		}
		users[i] = model.User{
			ID:           identity.ID,
			Email:        identity.Email,
			Role:         r,
			CreatedAt:    identity.CreatedAt,
			LastSignInAt: identity.LastSignInAt,
		}
	}

	return users, nil
}

// Create provisions a new account with the given role.
func (s *Service) Create(ctx context.Context, email, password string, r model.Role) (*model.User, error) {
	if !r.Valid() {
		return nil, model.ErrInvalidRole
	}

	identity, err := s.authAdmin.CreateUser(ctx, email, password)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to create identity")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.roles.Upsert(ctx, identity.ID, r); err != nil {
		// The account exists; the role record can be repaired later.
		s.logger.Error().Err(err).Str("user_id", identity.ID).Msg("failed to store role for new user")
	}

	s.logger.Info().Str("user_id", identity.ID).Str("role", string(r)).Msg("user created")

	return &model.User{
		ID:        identity.ID,
		Email:     identity.Email,
		Role:      r,
		CreatedAt: identity.CreatedAt,
	}, nil
}

// Update changes an account's email, password and/or role. Nil fields
// are left untouched.
func (s *Service) Update(ctx context.Context, id string, email, password *string, r *model.Role) error {
	if r != nil && !r.Valid() {
		return model.ErrInvalidRole
	}

	if email != nil || password != nil {
		if err := s.authAdmin.UpdateUser(ctx, id, email, password); err != nil {
			s.logger.Error().Err(err).Str("user_id", id).Msg("failed to update identity")
			return fmt.Errorf("failed to update user: %w", err)
		}
	}

	if r != nil {
		if err := s.roles.Upsert(ctx, id, *r); err != nil {
			s.logger.Error().Err(err).Str("user_id", id).Msg("failed to update role")
			return fmt.Errorf("failed to update role: %w", err)
		}
	}

	s.logger.Info().Str("user_id", id).Msg("user updated")
	return nil
}

// Delete removes an account and its role record. A failed role delete
// is logged but does not fail the operation; the identity is already
// gone.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.authAdmin.DeleteUser(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to delete identity")
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if err := s.roles.Delete(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("user_id", id).Msg("failed to delete role record")
	}

	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
