package cachekit

import (
	"context"
	"time"
)

// NewNoOpCache returns a cache that never holds a value.
func NewNoOpCache() *Cache {
	return &Cache{store: noopStore{}}
}

type noopStore struct{}

func (noopStore) get(ctx context.Context, key string) []byte                        { return nil }
func (noopStore) set(ctx context.Context, key string, value []byte, ttl time.Duration) {}
func (noopStore) remove(ctx context.Context, key string)                             {}
