package storage

import (
	"sort"
	"sync"
)

// MemoryStore is a Provider that lives only as long as the process. FailWrites
// makes every SetItem and RemoveItem fail, for exercising save errors.
type MemoryStore struct {
	mu         sync.Mutex
	slots      map[string]string
	FailWrites error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]string)}
}

func (m *MemoryStore) Init() error  { return nil }
func (m *MemoryStore) Load() error  { return nil }
func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) GetItem(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.slots[key]
	return value, ok, nil
}

func (m *MemoryStore) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.slots[key] = value
	return nil
}

func (m *MemoryStore) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	delete(m.slots, key)
	return nil
}

func (m *MemoryStore) Keys() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.slots))
	for k := range m.slots {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryStore) GetConfigPath() string {
	return ":memory:"
}
