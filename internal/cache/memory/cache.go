// Package memory provides a process-wide generic TTL cache. Values are
// idempotent recomputations of upstream truth, so the cache favors a single
// lock and compute-once semantics over fine-grained concurrency.
package memory

import (
	"sync"
	"time"

	"github.com/quantpulse/marketsignal/internal/domain"
)

// DefaultTTL balances freshness against upstream API quota.
const DefaultTTL = 5 * time.Minute

type entry[V any] struct {
	value    V
	storedAt time.Time
	ttl      time.Duration
}

// Cache is a TTL map safe for concurrent use. Expired entries are lazily
// evicted on lookup and can also be pruned proactively.
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	ttl     time.Duration
	clock   domain.Clock
}

// New returns a Cache with the given default TTL. A zero ttl means
// DefaultTTL; a nil clock means wall time.
func New[V any](ttl time.Duration, clock domain.Clock) *Cache[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &Cache[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		clock:   clock,
	}
}

// Get returns the cached value for key if it has not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.clock.Now().Sub(e.storedAt) > e.ttl {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key with the cache's default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key with an explicit TTL.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, storedAt: c.clock.Now(), ttl: ttl}
}

// GetOrCompute returns the cached value for key, computing and storing it if
// absent or expired. The lock is held across compute so concurrent callers
// do not race to recompute the same key.
func (c *Cache[V]) GetOrCompute(key string, compute func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok && c.clock.Now().Sub(e.storedAt) <= e.ttl {
		return e.value, nil
	}

	value, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}
	c.entries[key] = entry[V]{value: value, storedAt: c.clock.Now(), ttl: c.ttl}
	return value, nil
}

// Invalidate removes key from the cache.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Prune removes every expired entry and reports how many were dropped.
func (c *Cache[V]) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	pruned := 0
	for key, e := range c.entries {
		if now.Sub(e.storedAt) > e.ttl {
			delete(c.entries, key)
			pruned++
		}
	}
	return pruned
}

// Clear empties the cache.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
}

// Len reports the number of entries, expired ones included.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
