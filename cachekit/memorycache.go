package cachekit

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"sync"
	"time"

	"github.com/coocood/freecache"
	"github.com/orderkit/orderkit/logkit"
)

// keys longer than this are hashed
const maxKeyLength = 1024

// MemoryCache is an in-process store of a fixed size. Old values are evicted when it is full.
type MemoryCache struct {
	sync.Mutex
	cache    *freecache.Cache
	prefixes map[string][]byte
}

// NewMemoryCache makes a store of byteSize bytes. freecache allocates at least 512kb.
func NewMemoryCache(byteSize int) *MemoryCache {
	return &MemoryCache{
		cache:    freecache.NewCache(byteSize),
		prefixes: make(map[string][]byte),
	}
}

// GetCache returns the namespace called name. Namespaces don't share keys.
func (m *MemoryCache) GetCache(name string) *Cache {
	m.Lock()
	defer m.Unlock()

	prefix, found := m.prefixes[name]
	if !found {
		prefix = make([]byte, 4)
		binary.LittleEndian.PutUint32(prefix, uint32(len(m.prefixes)+1))
		m.prefixes[name] = prefix
	}
	return &Cache{store: memoryStore{prefix: prefix, cache: m.cache}}
}

func (m *MemoryCache) EntryCount() int64 {
	return m.cache.EntryCount()
}

type memoryStore struct {
	prefix []byte
	cache  *freecache.Cache
}

func (m memoryStore) key(key string) []byte {
	if len(key) > maxKeyLength {
		sum := sha256.Sum256([]byte(key))
		return append(append([]byte{}, m.prefix...), sum[:]...)
	}
	return append(append(make([]byte, 0, len(m.prefix)+len(key)), m.prefix...), key...)
}

func (m memoryStore) get(ctx context.Context, key string) []byte {
	ctx, done := logkit.Operation(ctx, "cache.get", logkit.String("key", key))
	defer done()

	v, err := m.cache.Get(m.key(key))
	if err != nil {
		return nil
	}
	return v
}

func (m memoryStore) set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	ctx, done := logkit.Operation(ctx, "cache.set", logkit.String("key", key), logkit.Duration("ttl", ttl))
	defer done()

	if ttl < 0 {
		m.cache.Del(m.key(key))
		return
	}

	seconds := int(ttl / time.Second)
	if ttl > 0 && seconds == 0 {
		seconds = 1
	}
	if err := m.cache.Set(m.key(key), value, seconds); err != nil {
		logkit.Warn(ctx, "value not cached", logkit.Int("size", len(value)), logkit.Err(err))
	}
}

func (m memoryStore) remove(ctx context.Context, key string) {
	ctx, done := logkit.Operation(ctx, "cache.remove", logkit.String("key", key))
	defer done()

	m.cache.Del(m.key(key))
}
