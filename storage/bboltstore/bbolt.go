// Package bboltstore provides a BBolt-backed storage.Backend for durable
// single-node session persistence.
package bboltstore

import (
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/MrEthical07/goGuard/storage"
)

var bucketName = []byte("goguard")

// Backend implements storage.Backend backed by a BBolt database.
type Backend struct {
	db *bbolt.DB
}

var _ storage.Backend = (*Backend)(nil)

// New returns a Backend backed by the given BBolt database.
func New(db *bbolt.DB) *Backend {
	return &Backend{db: db}
}

// NewFromFile opens a BBolt database at the given path and returns a new Backend.
func NewFromFile(path string, options *bbolt.Options) (*Backend, error) {
	db, err := bbolt.Open(path, 0600, options)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return New(db), nil
}

// Close closes the underlying BBolt database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// Load implements storage.Backend.
func (b *Backend) Load(key string) ([]byte, error) {
	var value []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return storage.ErrNotFound
		}
		data := bucket.Get([]byte(key))
		if data == nil {
			return storage.ErrNotFound
		}
		value = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return value, nil
}

// Store implements storage.Backend.
func (b *Backend) Store(key string, value []byte) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return nil
}

// Delete implements storage.Backend.
func (b *Backend) Delete(key string) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return nil
}
