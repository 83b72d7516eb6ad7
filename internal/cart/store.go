package cart

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store keeps one cart per browsing session. Carts live in memory only
// and are discarded when the process exits; the storefront does not
// persist carts across reloads.
type Store struct {
	mu     sync.RWMutex
	carts  map[uuid.UUID]*Cart
	logger zerolog.Logger
}

// NewStore creates an empty session cart store.
func NewStore(logger zerolog.Logger) *Store {
	return &Store{
		carts:  make(map[uuid.UUID]*Cart),
		logger: logger.With().Str("component", "cart-store").Logger(),
	}
}

// Get returns the cart for the session, creating an empty one on first
// use.
func (s *Store) Get(sessionID uuid.UUID) *Cart {
	s.mu.RLock()
	c, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have created it between the locks.
	if c, ok := s.carts[sessionID]; ok {
		return c
	}

	c = New()
	s.carts[sessionID] = c
	s.logger.Debug().Str("session_id", sessionID.String()).Msg("cart created")
	return c
}

// Drop removes a session's cart, if any.
func (s *Store) Drop(sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// Len returns the number of active carts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}
