package primitives

import (
	"sync"
	"time"
)

// Clock supplies the current time. Injected so cache expiry is
// deterministic under test.
type Clock func() time.Time

type ttlEntry[V any] struct {
	value   V
	expires time.Time
}

// TTLCache is a small concurrency-safe cache whose entries expire after
// a fixed duration. It is owned by its caller; there is no package-level
// instance.
type TTLCache[K comparable, V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     Clock
	entries map[K]ttlEntry[V]
}

// NewTTLCache creates a cache with the given entry lifetime. A nil clock
// defaults to time.Now.
func NewTTLCache[K comparable, V any](ttl time.Duration, now Clock) *TTLCache[K, V] {
	if now == nil {
		now = time.Now
	}
	return &TTLCache[K, V]{
		ttl:     ttl,
		now:     now,
		entries: make(map[K]ttlEntry[V]),
	}
}

// Get returns the cached value for key, or ok=false if absent or expired.
// Expired entries are removed on access.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Put stores value under key, resetting its lifetime.
func (c *TTLCache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = ttlEntry[V]{value: value, expires: c.now().Add(c.ttl)}
}

// Len reports the number of unexpired entries, pruning expired ones.
func (c *TTLCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
		}
	}
	return len(c.entries)
}
