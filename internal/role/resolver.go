package role

import (
	"context"

	"whatsfood/internal/auth"
	"whatsfood/internal/model"

	"github.com/rs/zerolog"
)

// Resolver maps an authenticated identity to an application role.
//
// The read path degrades rather than blocks: a missing role record or
// a failed lookup both resolve to staff. A backend outage therefore
// under-privileges users instead of locking them out entirely; that
// trade-off is accepted.
type Resolver struct {
	repo       Repository
	breakGlass map[string]struct{}
	logger     zerolog.Logger
}

// NewResolver creates a resolver. breakGlassEmails is the list of
// owner identities that always resolve to admin, bypassing the role
// table; it exists so a broken or empty role table can never lock the
// owner out.
func NewResolver(repo Repository, breakGlassEmails []string, logger zerolog.Logger) *Resolver {
	bg := make(map[string]struct{}, len(breakGlassEmails))
	for _, email := range breakGlassEmails {
		bg[email] = struct{}{}
	}
	return &Resolver{
		repo:       repo,
		breakGlass: bg,
		logger:     logger.With().Str("component", "role-resolver").Logger(),
	}
}

// Resolve returns the role for an identity. Never returns an error:
// the break-glass policy wins first, then the role table, then the
// staff default.
func (r *Resolver) Resolve(ctx context.Context, identity *auth.Identity) model.Role {
	if _, ok := r.breakGlass[identity.Email]; ok {
		r.logger.Info().Str("email", identity.Email).Msg("break-glass identity resolved as admin")
		return model.RoleAdmin
	}

	role, err := r.repo.Get(ctx, identity.ID)
	if err != nil {
		r.logger.Warn().Err(err).Str("user_id", identity.ID).Msg("role lookup failed, defaulting to staff")
		return model.RoleStaff
	}
	if role == "" || !role.Valid() {
		return model.RoleStaff
	}

	return role
}
