package cache

import "time"

// Option applies a configuration option to the response cache.
type Option func(*lruCache)

// WithTTL sets how long an entry stays fresh.
func WithTTL(ttl time.Duration) Option {
	return func(c *lruCache) {
		c.ttl = ttl
	}
}

// WithMaxEntries bounds the number of cached responses. The least recently
// used entry is evicted first.
func WithMaxEntries(n int) Option {
	return func(c *lruCache) {
		c.maxEntries = n
	}
}

// WithClock replaces the time source. Used by tests to expire entries.
func WithClock(now func() time.Time) Option {
	return func(c *lruCache) {
		if now != nil {
			c.now = now
		}
	}
}
