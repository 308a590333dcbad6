package repository

import (
	"context"
	"sync"

	"github.com/firetemplate/items-api/internal/items"
	"github.com/google/uuid"
)

// MemoryRepo is an in-memory repository for local development and tests.
// Listing follows insertion order.
type MemoryRepo struct {
	mu    sync.RWMutex
	order []string
	store map[string]items.Item
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]items.Item)}
}

func (m *MemoryRepo) ListByOwner(_ context.Context, owner string, limit int) ([]*items.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*items.Item{}
	for _, id := range m.order {
		if limit > 0 && len(out) >= limit {
			break
		}
		if it := m.store[id]; it.Owner == owner {
			cp := it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MemoryRepo) Create(_ context.Context, it *items.Item) (*items.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *it
	stored.ID = uuid.NewString()
	m.store[stored.ID] = stored
	m.order = append(m.order, stored.ID)
	out := stored
	return &out, nil
}

func (m *MemoryRepo) Get(_ context.Context, id string) (*items.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &it, nil
}

func (m *MemoryRepo) Update(_ context.Context, id string, p items.Patch) (*items.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	it.Name = p.Name
	it.Description = p.Description
	m.store[id] = it
	return &it, nil
}

func (m *MemoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
