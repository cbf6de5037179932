package cache

import (
	"sync"
	"time"
)

// Cache is the read-through cache contract used on catalog hot paths.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Delete(key K)
}

type entry[V any] struct {
	value    V
	deadline time.Time
}

// TTLCache is an in-memory cache with per-entry expiry. Expired entries are
// dropped lazily on read and in bulk via Purge.
type TTLCache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]entry[V]
}

// NewTTLCache constructs an empty TTLCache.
func NewTTLCache[K comparable, V any]() *TTLCache[K, V] {
	return &TTLCache[K, V]{entries: make(map[K]entry[V])}
}

// Get returns the cached value for key when present and not expired.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if !e.deadline.IsZero() && !time.Now().Before(e.deadline) {
		delete(c.entries, key)
		return zero, false
	}
	return e.value, true
}

// Set stores value under key. A non-positive ttl keeps the entry until it is
// deleted or purged explicitly.
func (c *TTLCache[K, V]) Set(key K, value V, ttl time.Duration) {
	if c == nil {
		return
	}
	e := entry[V]{value: value}
	if ttl > 0 {
		e.deadline = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
}

// Delete removes key from the cache.
func (c *TTLCache[K, V]) Delete(key K) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Purge drops every expired entry and reports how many were removed.
func (c *TTLCache[K, V]) Purge() int {
	if c == nil {
		return 0
	}
	now := time.Now()
	removed := 0
	c.mu.Lock()
	for key, e := range c.entries {
		if !e.deadline.IsZero() && !now.Before(e.deadline) {
			delete(c.entries, key)
			removed++
		}
	}
	c.mu.Unlock()
	return removed
}

// NoopCache never stores anything. It backs deployments that disable caching.
type NoopCache[K comparable, V any] struct{}

func (NoopCache[K, V]) Get(key K) (V, bool)                   { var zero V; return zero, false }
func (NoopCache[K, V]) Set(key K, value V, ttl time.Duration) {}
func (NoopCache[K, V]) Delete(key K)                          {}
