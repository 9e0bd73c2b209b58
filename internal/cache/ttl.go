// Package cache provides an in-process TTL cache with an injectable clock.
package cache

import (
	"sync"
	"time"
)

// Expired reports whether an entry stored at storedAt is stale at now.
// Entries are valid while now - storedAt < ttl. A non-positive ttl never
// expires anything.
func Expired(storedAt, now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(storedAt) >= ttl
}

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// TTLCache is a thread-safe key/value cache whose entries age out after ttl.
// Stale entries are never deleted, only overwritten by the next Set.
type TTLCache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
	ttl     time.Duration
	now     func() time.Time
}

// New constructs a TTLCache. A nil now uses time.Now.
func New[K comparable, V any](ttl time.Duration, now func() time.Time) *TTLCache[K, V] {
	if now == nil {
		now = time.Now
	}
	return &TTLCache[K, V]{
		entries: make(map[K]entry[V]),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the cached value when present and fresh.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || Expired(e.storedAt, c.now(), c.ttl) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key stamped with the current time.
func (c *TTLCache[K, V]) Set(key K, value V) {
	stamped := entry[V]{value: value, storedAt: c.now()}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = stamped
}

// Len counts stored entries, fresh or stale.
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// TTL returns the configured time-to-live.
func (c *TTLCache[K, V]) TTL() time.Duration {
	return c.ttl
}
