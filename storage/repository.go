// Package storage provides the scoped key-value persistence boundary used to
// keep the authenticated session alive across process restarts.
package storage

import "errors"

// ErrNotFound is returned when the requested key has no stored value.
var ErrNotFound = errors.New("storage key not found")

// ErrUnavailable is returned when the storage boundary cannot be reached.
// Callers are expected to degrade to memory-only operation rather than fail.
var ErrUnavailable = errors.New("storage unavailable")

// Backend defines the interface for the session persistence boundary.
//
// Implementations hold a small number of string-keyed records scoped to one
// execution environment (one console instance). All methods must be safe for
// concurrent use.
type Backend interface {
	Load(key string) ([]byte, error)
	Store(key string, value []byte) error
	Delete(key string) error
}

// Discard is a Backend for non-interactive execution contexts with no
// persistence substrate. Load always reports ErrNotFound; writes succeed
// and are dropped.
type Discard struct{}

var _ Backend = Discard{}

// Load implements Backend.
func (Discard) Load(string) ([]byte, error) { return nil, ErrNotFound }

// Store implements Backend.
func (Discard) Store(string, []byte) error { return nil }

// Delete implements Backend.
func (Discard) Delete(string) error { return nil }
