package siteconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Listener feeds config changes made by other instances into a Store.
// It holds one dedicated connection on LISTEN and re-reads the config
// row whenever a notification arrives.
type Listener struct {
	pool    *pgxpool.Pool
	storage Storage
	store   *Store
	logger  zerolog.Logger
}

// NewListener creates a listener for the Postgres notify channel.
func NewListener(pool *pgxpool.Pool, storage Storage, store *Store, logger zerolog.Logger) *Listener {
	return &Listener{
		pool:    pool,
		storage: storage,
		store:   store,
		logger:  logger.With().Str("component", "config-listener").Logger(),
	}
}

// Run blocks listening for config change notifications until the
// context is cancelled. Returns nil on cancellation.
func (l *Listener) Run(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire listener connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+NotifyChannel); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", NotifyChannel, err)
	}

	l.logger.Info().Str("channel", NotifyChannel).Msg("listening for config changes")

	for {
		if _, err := conn.Conn().WaitForNotification(ctx); err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed waiting for notification: %w", err)
		}

		raw, err := l.storage.Get(ctx)
		if err != nil {
			l.logger.Error().Err(err).Msg("failed to re-read config after notification")
			continue
		}

		// Apply is idempotent; our own writes arrive here too and are
		// dropped as duplicates.
		if err := l.store.Apply(raw); err != nil {
			l.logger.Error().Err(err).Msg("failed to apply external config change")
		}
	}
}
