package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"whatsfood/internal/auth"
	"whatsfood/internal/cart"
	"whatsfood/internal/config"
	"whatsfood/internal/database"
	"whatsfood/internal/handler"
	"whatsfood/internal/model"
	"whatsfood/internal/role"
	"whatsfood/internal/router"
	"whatsfood/internal/siteconfig"
	"whatsfood/internal/user"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A local .env is optional; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting whatsfood API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Site config storage and the role table share the Postgres pool;
	// file storage mode runs without a database entirely, with roles
	// held in memory and the break-glass list as the durable way in.
	var storage siteconfig.Storage
	var roleRepo role.Repository
	var pool *pgxpool.Pool

	if cfg.Storage.Mode == config.StoragePostgres {
		pool, err = database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		storage = siteconfig.NewPGStorage(pool, logger)
		roleRepo = role.NewRepository(pool, logger)
	} else {
		storage = siteconfig.NewFileStorage(cfg.Storage.FilePath, logger)
		roleRepo = role.NewMemoryRepository()
		logger.Info().Str("path", cfg.Storage.FilePath).Msg("using file storage for site config")
	}

	// Load the seed config: S3 first when enabled, then the local file,
	// then the compiled-in default.
	seed := loadSeedConfig(ctx, cfg, logger)

	// Config store: persisted config overrides the seed.
	configStore := siteconfig.NewStore(storage, seed, logger)
	configStore.Load(ctx)

	// In Postgres mode, follow config writes made by other instances.
	if pool != nil {
		listener := siteconfig.NewListener(pool, storage, configStore, logger)
		go func() {
			if err := listener.Run(ctx); err != nil {
				logger.Error().Err(err).Msg("config listener stopped")
			}
		}()
	}

	// Session carts
	carts := cart.NewStore(logger)

	// Auth backend client and role resolution
	authClient := auth.NewClient(cfg.Auth.URL, cfg.Auth.AnonKey, cfg.Auth.ServiceKey, logger)
	resolver := role.NewResolver(roleRepo, cfg.Auth.BreakGlassEmails, logger)
	userService := user.NewService(authClient, roleRepo, logger)

	// Initialize HTTP handlers
	menuHandler := handler.NewMenuHandler(configStore, logger)
	cartHandler := handler.NewCartHandler(carts, configStore, logger)
	checkoutHandler := handler.NewCheckoutHandler(carts, configStore, logger)
	authHandler := handler.NewAuthHandler(authClient, resolver, logger)
	adminHandler := handler.NewAdminHandler(authClient, resolver, userService, configStore, logger)

	// Initialize router
	mux := router.New(menuHandler, cartHandler, checkoutHandler, authHandler, adminHandler, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// loadSeedConfig resolves the seed site configuration. Returns nil when
// no external seed is configured or loadable, which makes the store use
// the compiled-in default.
func loadSeedConfig(ctx context.Context, cfg *config.Config, logger zerolog.Logger) *model.SiteConfig {
	if cfg.Seed.FilePath == "" && !cfg.Seed.S3Enabled {
		return nil
	}

	fileLoader := siteconfig.NewFileLoader(logger)

	var s3Loader siteconfig.Loader
	if cfg.Seed.S3Enabled {
		loader, err := siteconfig.NewS3Loader(ctx, cfg.Seed.S3Bucket, cfg.Seed.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 seed loader, falling back to local file system only")
		} else {
			s3Loader = loader
		}
	}

	loader := siteconfig.NewFallbackLoader(s3Loader, fileLoader, "", cfg.Seed.S3Enabled && s3Loader != nil, logger)

	path := cfg.Seed.FilePath
	if path == "" {
		path = cfg.Seed.S3Key
	}

	seed, err := loader.Load(ctx, path)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load seed config, using compiled-in default")
		return nil
	}
	return seed
}
