// Package cache holds complete HTTP response bodies for the cached check route.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"

	"github.com/okian/primecheck/pkg/metrics"
)

// Cache stores response bodies by request key.
type Cache interface {
	// Get returns a copy of the body stored under key if it is still fresh.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores body under key, evicting the least recently used entry when full.
	Set(ctx context.Context, key string, body []byte)

	Len() int
}

type entry struct {
	body      []byte
	expiresAt time.Time
}

// lruCache is a TTL cache over groupcache's LRU list. groupcache/lru is not
// safe for concurrent use, so every access holds mu.
type lruCache struct {
	mu         sync.Mutex
	items      *lru.Cache
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// New creates a response cache. Defaults are a 15 minute TTL and 10000 entries.
func New(opts ...Option) (Cache, error) {
	c := &lruCache{
		ttl:        15 * time.Minute,
		maxEntries: 10000,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	if c.maxEntries <= 0 {
		return nil, ErrInvalidMaxEntries
	}

	c.items = lru.New(c.maxEntries)
	c.items.OnEvicted = func(lru.Key, interface{}) {
		metrics.RecordCacheEviction()
	}
	return c, nil
}

func (c *lruCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.items.Get(key)
	if !ok {
		metrics.RecordCacheMiss()
		return nil, false
	}

	e := v.(entry)
	if !c.now().Before(e.expiresAt) {
		c.items.Remove(key)
		metrics.UpdateCacheEntries(c.items.Len())
		metrics.RecordCacheMiss()
		return nil, false
	}

	metrics.RecordCacheHit()
	return append([]byte(nil), e.body...), true
}

func (c *lruCache) Set(_ context.Context, key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items.Add(key, entry{
		body:      append([]byte(nil), body...),
		expiresAt: c.now().Add(c.ttl),
	})
	metrics.UpdateCacheEntries(c.items.Len())
}

func (c *lruCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items.Len()
}
