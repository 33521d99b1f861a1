// Package cachekit caches byte values under string keys, with a time to live per value.
package cachekit

import (
	"bytes"
	"context"
	"encoding/gob"
	"time"
)

// missing is stored in place of a nil value, so misses are cached too.
var missing = []byte{0, 255, 1, 5, 29, 4}

// Cache is a namespace in a store.
type Cache struct {
	store
}

type store interface {
	get(ctx context.Context, key string) []byte
	set(ctx context.Context, key string, value []byte, ttl time.Duration)
	remove(ctx context.Context, key string)
}

// Get returns the value of key, or nil.
func (c *Cache) Get(ctx context.Context, key string) []byte {
	v := c.get(ctx, key)
	if isMissing(v) {
		return nil
	}
	return v
}

// Set stores value under key. A ttl of 0 never expires and a negative ttl removes the key.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if value == nil {
		value = missing
	}
	c.set(ctx, key, value, ttl)
}

func (c *Cache) Remove(ctx context.Context, key string) {
	c.remove(ctx, key)
}

// GetFunc returns the value of key, calling f to produce it when it isn't cached.
// Errors from f are not cached.
func (c *Cache) GetFunc(ctx context.Context, key string, ttl time.Duration, f func() ([]byte, error)) ([]byte, error) {
	v := c.get(ctx, key)
	if v == nil {
		var err error
		if v, err = f(); err != nil {
			return nil, err
		}
		c.Set(ctx, key, v, ttl)
	}
	if isMissing(v) {
		return nil, nil
	}
	return v, nil
}

// GetGob is GetFunc for gob encoded values. The value is decoded into output, which is left
// untouched when f returned nil.
func (c *Cache) GetGob(ctx context.Context, key string, ttl time.Duration, output interface{}, f func() (interface{}, error)) error {
	b, err := c.GetFunc(ctx, key, ttl, func() ([]byte, error) {
		v, err := f()
		if err != nil || v == nil {
			return nil, err
		}

		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	if err != nil || b == nil {
		return err
	}

	return gob.NewDecoder(bytes.NewReader(b)).Decode(output)
}

func isMissing(v []byte) bool {
	return v != nil && bytes.Equal(v, missing)
}
