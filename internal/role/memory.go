package role

import (
	"context"
	"sync"

	"whatsfood/internal/model"
)

// memoryRepository keeps role records in process memory. Used when the
// application runs without Postgres (file config storage); roles then
// last only as long as the process, and the break-glass list is the
// durable way in.
type memoryRepository struct {
	mu    sync.RWMutex
	roles map[string]model.Role
}

// NewMemoryRepository creates an in-memory role repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{roles: make(map[string]model.Role)}
}

func (r *memoryRepository) Get(ctx context.Context, userID string) (model.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.roles[userID], nil
}

func (r *memoryRepository) GetAll(ctx context.Context) (map[string]model.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]model.Role, len(r.roles))
	for id, role := range r.roles {
		out[id] = role
	}
	return out, nil
}

func (r *memoryRepository) Upsert(ctx context.Context, userID string, role model.Role) error {
	if !role.Valid() {
		return model.ErrInvalidRole
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles[userID] = role
	return nil
}

func (r *memoryRepository) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.roles, userID)
	return nil
}
