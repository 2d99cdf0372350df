package scenario

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store implementation.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]Scenario
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]Scenario),
	}
}

func (m *MemoryStore) Save(ctx context.Context, s Scenario) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[s.ID] = s
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (Scenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.data[id]
	if !ok {
		return Scenario{}, ErrNotFound
	}
	return s, nil
}

func (m *MemoryStore) List(ctx context.Context) ([]Scenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Scenario, 0, len(m.data))
	for _, s := range m.data {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[id]; !ok {
		return ErrNotFound
	}
	delete(m.data, id)
	return nil
}
