package siteconfig

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// ErrNotFound is returned by a Storage when no config blob has been
// persisted yet. It is a distinguished, non-fatal outcome; callers fall
// back to the seed config.
var ErrNotFound = errors.New("site config not found")

// Storage persists the serialised site configuration under one logical
// key. Set overwrites the whole blob atomically.
type Storage interface {
	// Get reads the persisted config blob. Returns ErrNotFound when
	// nothing has been saved yet.
	Get(ctx context.Context) ([]byte, error)

	// Set overwrites the persisted config blob.
	Set(ctx context.Context, value []byte) error
}

// fileStorage keeps the config blob in a single JSON file on disk.
type fileStorage struct {
	path   string
	logger zerolog.Logger
}

// NewFileStorage creates a file-backed storage at the given path.
func NewFileStorage(path string, logger zerolog.Logger) Storage {
	return &fileStorage{
		path:   path,
		logger: logger.With().Str("component", "file-storage").Logger(),
	}
}

// Get reads the config file.
func (s *fileStorage) Get(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		s.logger.Error().Err(err).Str("path", s.path).Msg("failed to read config file")
		return nil, fmt.Errorf("failed to read config file %s: %w", s.path, err)
	}
	return data, nil
}

// Set writes the blob to a temp file in the same directory and renames
// it over the target, so readers never observe a partial write.
func (s *fileStorage) Set(ctx context.Context, value []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".siteconfig-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp config file: %w", err)
	}

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp config file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace config file %s: %w", s.path, err)
	}

	s.logger.Debug().Str("path", s.path).Int("bytes", len(value)).Msg("config file written")
	return nil
}
