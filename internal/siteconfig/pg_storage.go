package siteconfig

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const (
	// configKey is the single logical key the config blob lives under.
	configKey = "siteConfig"

	// NotifyChannel is the Postgres channel other instances listen on to
	// learn about config writes.
	NotifyChannel = "site_config_changed"
)

// pgStorage keeps the config blob as a single JSONB row in Postgres and
// notifies other instances on every write.
type pgStorage struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPGStorage creates a Postgres-backed storage.
func NewPGStorage(pool *pgxpool.Pool, logger zerolog.Logger) Storage {
	return &pgStorage{
		pool:   pool,
		logger: logger.With().Str("component", "pg-storage").Logger(),
	}
}

// Get reads the persisted config blob.
func (s *pgStorage) Get(ctx context.Context) ([]byte, error) {
	query := `
		SELECT value
		FROM site_config
		WHERE key = $1
	`

	var value []byte
	err := s.pool.QueryRow(ctx, query, configKey).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		s.logger.Error().Err(err).Msg("failed to query site config")
		return nil, fmt.Errorf("failed to query site config: %w", err)
	}

	return value, nil
}

// Set overwrites the config row and notifies listeners on other
// instances. The notification carries no payload; listeners re-read the
// row, which keeps both channels idempotent.
func (s *pgStorage) Set(ctx context.Context, value []byte) error {
	query := `
		INSERT INTO site_config (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`

	if _, err := s.pool.Exec(ctx, query, configKey, value); err != nil {
		s.logger.Error().Err(err).Msg("failed to upsert site config")
		return fmt.Errorf("failed to upsert site config: %w", err)
	}

	if _, err := s.pool.Exec(ctx, "SELECT pg_notify($1, '')", NotifyChannel); err != nil {
		// The write itself succeeded; other instances will still converge
		// on their next read.
		s.logger.Warn().Err(err).Msg("failed to notify config change")
	}

	return nil
}
