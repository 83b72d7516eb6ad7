package siteconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"whatsfood/internal/model"

	"github.com/rs/zerolog"
)

// Loader reads a seed site configuration from an external location.
// The seed supersedes the compiled-in default when present; the
// persisted config still overrides both.
type Loader interface {
	// Load reads and decodes a seed config.
	Load(ctx context.Context, path string) (*model.SiteConfig, error)
}

// fileLoader implements Loader for JSON seed files on disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a file-based seed config loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-loader").Logger(),
	}
}

// Load reads a JSON seed config file.
func (l *fileLoader) Load(ctx context.Context, path string) (*model.SiteConfig, error) {
	l.logger.Info().Str("file", path).Msg("loading seed config")

	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read seed config file")
		return nil, fmt.Errorf("failed to read seed config file %s: %w", path, err)
	}

	cfg := model.DefaultSiteConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to decode seed config file")
		return nil, fmt.Errorf("failed to decode seed config file %s: %w", path, err)
	}
	normalize(cfg)

	l.logger.Info().
		Str("file", path).
		Int("categories", len(cfg.Categories)).
		Msg("seed config loaded")

	return cfg, nil
}
