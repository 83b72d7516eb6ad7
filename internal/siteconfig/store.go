package siteconfig

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"whatsfood/internal/model"

	"github.com/rs/zerolog"
)

// Store holds the active site configuration with load, save and
// subscribe semantics. Saving persists the blob under one key, swaps
// the in-memory config and broadcasts the change; external writers
// (other instances) reach the store through Apply, fed by a Listener.
type Store struct {
	mu      sync.RWMutex
	active  *model.SiteConfig
	raw     []byte
	storage Storage
	seed    *model.SiteConfig
	subs    []func(*model.SiteConfig)
	logger  zerolog.Logger
}

// NewStore creates a config store backed by the given storage. The seed
// config is used whenever no valid persisted config exists; pass nil to
// use the compiled-in default.
func NewStore(storage Storage, seed *model.SiteConfig, logger zerolog.Logger) *Store {
	if seed == nil {
		seed = model.DefaultSiteConfig()
	}
	return &Store{
		storage: storage,
		seed:    seed,
		active:  seed.Clone(),
		logger:  logger.With().Str("component", "config-store").Logger(),
	}
}

// Load reads the persisted config. Absent or malformed blobs never fail
// the application; they are logged and the seed config stays active.
func (s *Store) Load(ctx context.Context) {
	raw, err := s.storage.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Info().Msg("no persisted config, using seed config")
		} else {
			s.logger.Error().Err(err).Msg("failed to read persisted config, using seed config")
		}
		return
	}

	cfg, err := s.decode(raw)
	if err != nil {
		s.logger.Error().Err(err).Msg("persisted config is malformed, using seed config")
		return
	}

	s.mu.Lock()
	s.active = cfg
	s.raw = raw
	s.mu.Unlock()

	s.logger.Info().Msg("persisted config loaded")
}

// Save persists the config, swaps the active one and broadcasts the
// change to subscribers. Returns false when the write fails; the active
// config is left untouched in that case.
func (s *Store) Save(ctx context.Context, cfg *model.SiteConfig) bool {
	clean := cfg.Clone()
	normalize(clean)

	raw, err := json.Marshal(clean)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to serialise config")
		return false
	}

	if err := s.storage.Set(ctx, raw); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist config")
		return false
	}

	s.swap(clean, raw)
	return true
}

// Active returns a deep copy of the current configuration.
func (s *Store) Active() *model.SiteConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active.Clone()
}

// Subscribe registers a callback invoked with the new config after
// every change, whether it came from a local Save or an external Apply.
func (s *Store) Subscribe(fn func(*model.SiteConfig)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Apply replaces the active config with an externally produced blob.
// Applying a payload identical to the current one is a no-op, so the
// storage-level and in-process channels stay idempotent with respect to
// each other.
func (s *Store) Apply(raw []byte) error {
	s.mu.RLock()
	same := bytes.Equal(raw, s.raw)
	s.mu.RUnlock()
	if same {
		return nil
	}

	cfg, err := s.decode(raw)
	if err != nil {
		s.logger.Error().Err(err).Msg("ignoring malformed external config")
		return err
	}

	s.swap(cfg, raw)
	s.logger.Info().Msg("config updated from external change")
	return nil
}

// swap installs the new config and notifies subscribers.
func (s *Store) swap(cfg *model.SiteConfig, raw []byte) {
	s.mu.Lock()
	s.active = cfg
	s.raw = raw
	subs := make([]func(*model.SiteConfig), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(cfg.Clone())
	}
}

// decode unmarshals a blob over a copy of the seed config, so missing
// fields keep their defaults and unknown fields are ignored.
func (s *Store) decode(raw []byte) (*model.SiteConfig, error) {
	cfg := s.seed.Clone()
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, err
	}
	normalize(cfg)
	return cfg, nil
}

// normalize enforces structural invariants the rest of the application
// relies on: denominations sorted ascending with unique values.
func normalize(cfg *model.SiteConfig) {
	sort.SliceStable(cfg.CashDenominations, func(i, j int) bool {
		return cfg.CashDenominations[i].Value < cfg.CashDenominations[j].Value
	})

	seen := make(map[float64]struct{}, len(cfg.CashDenominations))
	kept := cfg.CashDenominations[:0]
	for _, d := range cfg.CashDenominations {
		if _, dup := seen[d.Value]; dup {
			continue
		}
		seen[d.Value] = struct{}{}
		kept = append(kept, d)
	}
	cfg.CashDenominations = kept
}
