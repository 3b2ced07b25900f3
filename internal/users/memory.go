package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docuvault/docuvault/internal/models"
)

// MemoryRepository is the in-memory user store used for tests and
// Mongo-less runs.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*models.User)}
}

func (r *MemoryRepository) Create(ctx context.Context, u *models.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	r.store[u.ID] = &cp
	return u.ID, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.store[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *MemoryRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.store {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
