package roles

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docuvault/docuvault/internal/models"
)

// MemoryRepository is the in-memory role store used for tests and
// Mongo-less runs.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*models.Role
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*models.Role)}
}

func (r *MemoryRepository) Create(ctx context.Context, role *models.Role) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if role.ID == "" {
		role.ID = uuid.NewString()
	}
	role.CreatedAt = time.Now().UTC()
	cp := *role
	r.store[role.ID] = &cp
	return role.ID, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if role, ok := r.store[id]; ok {
		cp := *role
		return &cp, nil
	}
	return nil, nil
}

func (r *MemoryRepository) GetByTitle(ctx context.Context, title string) (*models.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, role := range r.store {
		if role.Title == title {
			cp := *role
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Role, 0, len(r.store))
	for _, role := range r.store {
		cp := *role
		out = append(out, &cp)
	}
	return out, nil
}
