// Package memory provides a thread-safe in-memory implementation of
// storage.Backend. Values do not survive process restarts.
package memory

import (
	"sync"

	"github.com/MrEthical07/goGuard/storage"
)

// Backend is a thread-safe in-memory implementation of storage.Backend.
// Suitable for testing, demos, and single-process use cases.
type Backend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ storage.Backend = (*Backend)(nil)

// New creates a new empty in-memory Backend.
func New() *Backend {
	return &Backend{data: make(map[string][]byte)}
}

// Load implements storage.Backend.
func (b *Backend) Load(key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	value, ok := b.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

// Store implements storage.Backend.
func (b *Backend) Store(key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data[key] = append([]byte(nil), value...)
	return nil
}

// Delete implements storage.Backend.
func (b *Backend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.data, key)
	return nil
}
