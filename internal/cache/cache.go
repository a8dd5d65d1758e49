// Package cache is the process-local read cache in front of the
// repository layer, plus the invalidator that keeps it coherent with
// committed writes. Entries carry an absolute deadline fixed at
// insertion and an optional sliding (idle) deadline; whichever trips
// first evicts the entry.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache wraps go-cache with the dual-deadline residency policy. A Cache
// is safe for concurrent use. There is no per-key locking across misses:
// concurrent readers of an absent key may both compute and both Set, and
// the last write wins.
type Cache struct {
	c *gocache.Cache
}

type entry struct {
	value     any
	expiresAt time.Time     // absolute deadline, never extended
	sliding   time.Duration // 0 disables the idle deadline
}

// New returns an empty cache. Expired entries are purged in the
// background every five minutes; reads never observe them regardless.
func New() *Cache {
	return &Cache{c: gocache.New(gocache.NoExpiration, 5*time.Minute)}
}

// Get returns the live value stored under key. Reading an entry with a
// sliding deadline restarts its idle window, capped by the remaining
// absolute lifetime.
func (c *Cache) Get(key string) (any, bool) {
	v, found := c.c.Get(key)
	if !found {
		return nil, false
	}

	e := v.(entry)
	remaining := time.Until(e.expiresAt)
	if remaining <= 0 {
		c.c.Delete(key)
		return nil, false
	}

	if e.sliding > 0 {
		ttl := e.sliding
		if remaining < ttl {
			ttl = remaining
		}
		// Replace re-checks existence under the store lock: a key the
		// invalidator removed between our read and this refresh stays
		// removed instead of being re-inserted with stale data.
		_ = c.c.Replace(key, e, ttl)
	}

	return e.value, true
}

// Set stores value under key for at most absolute, evicting earlier if
// the entry sits unread for sliding. Pass sliding 0 for entries that
// should only honor the absolute deadline.
func (c *Cache) Set(key string, value any, absolute, sliding time.Duration) {
	e := entry{value: value, expiresAt: time.Now().Add(absolute), sliding: sliding}

	ttl := absolute
	if sliding > 0 && sliding < ttl {
		ttl = sliding
	}
	c.c.Set(key, e, ttl)
}

// Remove explicitly evicts keys. Missing keys are ignored.
func (c *Cache) Remove(keys ...string) {
	for _, k := range keys {
		c.c.Delete(k)
	}
}

// Flush drops every entry.
func (c *Cache) Flush() {
	c.c.Flush()
}

// Fetch is the read-through helper: it returns the cached value under
// key, or computes one with fn and stores it. Errors from fn are never
// cached, so "not found" outcomes must be resolved by the caller before
// the fetch reaches the cache.
func Fetch[T any](c *Cache, key string, absolute, sliding time.Duration, fn func() (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}

	t, err := fn()
	if err != nil {
		var zero T
		return zero, err
	}

	c.Set(key, t, absolute, sliding)
	return t, nil
}
