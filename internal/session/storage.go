package session

import (
	"context"
	"sync"
)

// Storage keys, shared with the browser UI's localStorage layout.
const (
	TokenKey = "authToken"
	UserKey  = "authUser"
)

// Storage is a synchronous string key/value store. Get reports whether the
// key was present.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Pinger is implemented by storages backed by a connection worth checking.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MemoryStorage keeps entries in process memory. Its contents survive a
// Store being reopened over the same value, which is enough to model a
// restart in tests.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: map[string]string{}}
}

func (m *MemoryStorage) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MemoryStorage) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// Len is the number of stored entries.
func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
