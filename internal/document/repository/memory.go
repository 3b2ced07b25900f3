package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docuvault/docuvault/internal/document"
)

// MemoryRepo is an in-memory document store used for unit tests and for
// running the service without a MongoDB instance.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*document.Document
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*document.Document)}
}

func (m *MemoryRepo) Create(ctx context.Context, doc *document.Document) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	cp := *doc
	m.store[doc.ID] = &cp
	return doc.ID, nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.store[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, document.ErrNotFound
}

// GetByTitle returns (nil, nil) when no document carries the title, so the
// service can use it as a pure existence probe.
func (m *MemoryRepo) GetByTitle(ctx context.Context, title string) (*document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.store {
		if d.Title == title {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

// Search applies the filter, sorts reverse-chronologically by createdAt and
// windows the result with offset/limit. Limit 0 means unlimited.
func (m *MemoryRepo) Search(ctx context.Context, params document.SearchParams, page document.Pagination) ([]*document.Document, error) {
	m.mu.RLock()
	out := make([]*document.Document, 0, len(m.store))
	for _, d := range m.store {
		if params.Matches(d) {
			cp := *d
			out = append(out, &cp)
		}
	}
	m.mu.RUnlock()

	sortNewestFirst(out)
	return window(out, page.Offset, page.Limit), nil
}

func (m *MemoryRepo) ListByRole(ctx context.Context, roleID string, limit int64) ([]*document.Document, error) {
	return m.listBy(func(d *document.Document) bool { return d.Role == roleID }, limit)
}

func (m *MemoryRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]*document.Document, error) {
	return m.listBy(func(d *document.Document) bool { return d.UserID == userID }, limit)
}

func (m *MemoryRepo) listBy(match func(*document.Document) bool, limit int64) ([]*document.Document, error) {
	m.mu.RLock()
	out := []*document.Document{}
	for _, d := range m.store {
		if match(d) {
			cp := *d
			out = append(out, &cp)
		}
	}
	m.mu.RUnlock()

	sortNewestFirst(out)
	return window(out, 0, limit), nil
}

func (m *MemoryRepo) Update(ctx context.Context, id string, patch document.Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[id]
	if !ok {
		return document.ErrNotFound
	}
	for k, v := range patch {
		s, ok := v.(string)
		if !ok {
			continue
		}
		switch k {
		case "title":
			d.Title = s
		case "content":
			d.Content = s
		case "role":
			d.Role = s
		}
	}
	d.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return document.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func sortNewestFirst(docs []*document.Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
}

func window(docs []*document.Document, offset, limit int64) []*document.Document {
	if offset >= int64(len(docs)) {
		return []*document.Document{}
	}
	docs = docs[offset:]
	if limit > 0 && limit < int64(len(docs)) {
		docs = docs[:limit]
	}
	return docs
}
