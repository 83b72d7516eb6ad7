package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"whatsfood/internal/config"
	"whatsfood/internal/model"
	"whatsfood/internal/siteconfig"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Writes a site configuration into the configured storage. With a file
// argument that file becomes the config; without one the compiled-in
// default is written. Overwrites whatever is persisted.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := context.Background()

	site := model.DefaultSiteConfig()
	if len(os.Args) > 1 {
		loader := siteconfig.NewFileLoader(logger)
		site, err = loader.Load(ctx, os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load seed file: %v\n", err)
			os.Exit(1)
		}
	}

	var storage siteconfig.Storage
	if cfg.Storage.Mode == config.StoragePostgres {
		pool, err := pgxpool.New(ctx, cfg.Database.ConnectionString())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
			os.Exit(1)
		}
		defer pool.Close()
		storage = siteconfig.NewPGStorage(pool, logger)
	} else {
		storage = siteconfig.NewFileStorage(cfg.Storage.FilePath, logger)
	}

	raw, err := json.Marshal(site)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to serialise config: %v\n", err)
		os.Exit(1)
	}

	if err := storage.Set(ctx, raw); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Site config written (%d categories)\n", len(site.Categories))
}
