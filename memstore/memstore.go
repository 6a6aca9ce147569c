// Package memstore provides an in-memory CollectionStore, used in tests and
// for ephemeral runs where nothing should survive the process.
package memstore

import (
	"sync"

	"github.com/aura-hub/aurahub/domain"
)

var _ domain.CollectionStore = (*Store)(nil)

// Store holds collections in a map guarded by a mutex.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]byte
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{collections: make(map[string][]byte)}
}

// Load implements domain.CollectionStore. A missing key yields (nil, nil).
func (store *Store) Load(key string) ([]byte, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	data, ok := store.collections[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Save implements domain.CollectionStore.
func (store *Store) Save(key string, data []byte) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	store.collections[key] = stored
	return nil
}
