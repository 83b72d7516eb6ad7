package role

import (
	"context"
	"fmt"

	"whatsfood/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Repository defines data access for the user role side table.
type Repository interface {
	// Get retrieves the role for a user ID. Returns empty role and nil
	// error when no record exists; absence is not a failure.
	Get(ctx context.Context, userID string) (model.Role, error)

	// GetAll retrieves every role record keyed by user ID.
	GetAll(ctx context.Context) (map[string]model.Role, error)

	// Upsert inserts or updates the role record for a user ID.
	Upsert(ctx context.Context, userID string, role model.Role) error

	// Delete removes the role record for a user ID, if any.
	Delete(ctx context.Context, userID string) error
}

// pgRepository implements Repository using PostgreSQL.
type pgRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewRepository creates a new PostgreSQL-backed role repository.
func NewRepository(pool *pgxpool.Pool, logger zerolog.Logger) Repository {
	return &pgRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "role").Logger(),
	}
}

// Get retrieves the role for a user ID.
func (r *pgRepository) Get(ctx context.Context, userID string) (model.Role, error) {
	query := `
		SELECT role
		FROM user_roles
		WHERE user_id = $1
	`

	var role model.Role
	err := r.pool.QueryRow(ctx, query, userID).Scan(&role)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("user_id", userID).Msg("no role record")
			return "", nil
		}
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query role")
		return "", fmt.Errorf("failed to query role: %w", err)
	}

	return role, nil
}

// GetAll retrieves every role record keyed by user ID.
func (r *pgRepository) GetAll(ctx context.Context) (map[string]model.Role, error) {
	query := `
		SELECT user_id, role
		FROM user_roles
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query roles")
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	roles := make(map[string]model.Role)
	for rows.Next() {
		var userID string
		var role model.Role
		if err := rows.Scan(&userID, &role); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan role row")
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles[userID] = role
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating role rows")
		return nil, fmt.Errorf("error iterating roles: %w", err)
	}

	return roles, nil
}

// Upsert inserts or updates the role record for a user ID.
func (r *pgRepository) Upsert(ctx context.Context, userID string, role model.Role) error {
	if !role.Valid() {
		return model.ErrInvalidRole
	}

	query := `
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role
	`

	if _, err := r.pool.Exec(ctx, query, userID, role); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to upsert role")
		return fmt.Errorf("failed to upsert role: %w", err)
	}

	return nil
}

// Delete removes the role record for a user ID.
func (r *pgRepository) Delete(ctx context.Context, userID string) error {
	query := `
		DELETE FROM user_roles
		WHERE user_id = $1
	`

	if _, err := r.pool.Exec(ctx, query, userID); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to delete role")
		return fmt.Errorf("failed to delete role: %w", err)
	}

	return nil
}
