package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and local tooling.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string][]byte),
	}
}

func (m *MemoryStore) Get(ctx context.Context, collection, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	records, ok := m.collections[collection]
	if !ok {
		return nil, nil
	}
	body, ok := records[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(body))
	copy(out, body)
	return out, nil
}

func (m *MemoryStore) Set(ctx context.Context, collection, key string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	records, ok := m.collections[collection]
	if !ok {
		records = make(map[string][]byte)
		m.collections[collection] = records
	}
	stored := make([]byte, len(body))
	copy(stored, body)
	records[key] = stored
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, collection, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if records, ok := m.collections[collection]; ok {
		delete(records, key)
	}
	return nil
}

func (m *MemoryStore) ListKeys(ctx context.Context, collection string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	records, ok := m.collections[collection]
	if !ok {
		return []string{}, nil
	}
	keys := make([]string, 0, len(records))
	for key := range records {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
