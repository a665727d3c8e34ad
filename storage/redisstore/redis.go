// Package redisstore provides a Redis-backed storage.Backend for consoles
// that share their session boundary across restarts of a managed host.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/goGuard/storage"
)

// Backend implements storage.Backend on top of a Redis client. Keys are
// namespaced with the configured prefix so several consoles can share one
// Redis deployment.
type Backend struct {
	redis  redis.UniversalClient
	prefix string
}

var _ storage.Backend = (*Backend)(nil)

// New creates a Backend backed by the given Redis client. prefix sets the
// Redis key namespace; when empty, "gg" is used.
func New(client redis.UniversalClient, prefix string) *Backend {
	if prefix == "" {
		prefix = "gg"
	}
	return &Backend{redis: client, prefix: prefix}
}

func (b *Backend) key(key string) string {
	return b.prefix + ":" + key
}

// Load implements storage.Backend.
func (b *Backend) Load(key string) ([]byte, error) {
	data, err := b.redis.Get(context.Background(), b.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return data, nil
}

// Store implements storage.Backend.
func (b *Backend) Store(key string, value []byte) error {
	if err := b.redis.Set(context.Background(), b.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return nil
}

// Delete implements storage.Backend.
func (b *Backend) Delete(key string) error {
	if err := b.redis.Del(context.Background(), b.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return nil
}
