// Package cache is a bounded in-process TTL store for normalized provider
// results, keyed by provider plus query parameters. Eviction at capacity is
// insertion-order-first, not LRU: the earliest-inserted key goes regardless
// of how recently it was read.
package cache

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/joblens/aggregator/internal/domain"
)

const (
	// DefaultTTL matches the provider-result freshness of the service.
	DefaultTTL = 30 * time.Minute
	// DefaultMaxEntries bounds memory for the shared process-wide cache.
	DefaultMaxEntries = 100
)

type entry struct {
	jobs      []domain.Job
	cachedAt  time.Time
	expiresAt time.Time
}

// Cache stores provider search results with per-entry TTLs. Safe for use
// by concurrent searches.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	order      []string // insertion order, oldest first
	maxEntries int
	defaultTTL time.Duration
	hits       uint64
	misses     uint64

	// now is swappable for tests.
	now func() time.Time
}

// New creates a cache. Non-positive arguments fall back to the defaults.
func New(maxEntries int, defaultTTL time.Duration) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Cache{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Key builds a deterministic cache key from the provider name and query
// parameters. Parameter maps with identical pairs produce identical keys
// regardless of insertion order.
func Key(provider string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(provider)
	for _, k := range keys {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(params[k])
	}
	return b.String()
}

// Get returns the stored jobs for key, or nil/false on a miss. Expired
// entries are evicted on read.
func (c *Cache) Get(key string) ([]domain.Job, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.remove(key)
		c.misses++
		return nil, false
	}
	c.hits++
	return e.jobs, true
}

// Set stores jobs under key with the default TTL.
func (c *Cache) Set(key string, jobs []domain.Job) {
	c.SetTTL(key, jobs, c.defaultTTL)
}

// SetTTL stores jobs under key with an explicit TTL. If the cache is at
// capacity the earliest-inserted entry is evicted first.
func (c *Cache) SetTTL(key string, jobs []domain.Job, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.entries[key]; !exists {
		if len(c.entries) >= c.maxEntries && len(c.order) > 0 {
			c.remove(c.order[0])
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = entry{
		jobs:      jobs,
		cachedAt:  now,
		expiresAt: now.Add(ttl),
	}
}

// Sweep removes every expired entry and returns how many were dropped.
// Intended to run on a fixed interval independent of read/write traffic.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var expired []string
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			expired = append(expired, k)
		}
	}
	for _, k := range expired {
		c.remove(k)
	}
	return len(expired)
}

// Stats returns a point-in-time snapshot.
func (c *Cache) Stats() domain.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return domain.CacheStats{
		Entries:    len(c.entries),
		MaxEntries: c.maxEntries,
		Hits:       c.hits,
		Misses:     c.misses,
	}
}

// Keys returns the retained keys in insertion order. Diagnostic only.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.order...)
}

// remove must be called with the mutex held.
func (c *Cache) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
