// Package softovault provides caching functionality for SoftoVault reads.
package softovault

import (
	"sort"
	"sync"
	"time"
)

// cacheEntry represents a single cached item and the time it was stored.
// Entries are replaced wholesale, never mutated.
type cacheEntry struct {
	value    any
	storedAt time.Time
}

// TTLCache is a thread-safe in-memory cache with a single time-to-live.
// Expired entries read as absent but stay in the map until overwritten or
// cleared.
type TTLCache struct {
	// entries holds the cached values with their storage times
	entries map[string]cacheEntry

	// ttl is how long an entry stays valid after being stored
	ttl time.Duration

	// enabled turns the cache into a no-op when false
	enabled bool

	// now is the clock, replaceable in tests
	now func() time.Time

	// mu protects concurrent access to the entries map
	mu sync.RWMutex
}

// NewTTLCache creates a cache whose entries stay valid for ttl.
// A disabled cache never stores anything.
func NewTTLCache(ttl time.Duration, enabled bool) *TTLCache {
	return &TTLCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		enabled: enabled,
		now:     time.Now,
	}
}

// Get returns the value stored under key if it is younger than the TTL.
func (c *TTLCache) Get(key string) (any, bool) {
	if !c.enabled {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists {
		return nil, false
	}

	if c.now().Sub(entry.storedAt) >= c.ttl {
		return nil, false
	}

	return entry.value, true
}

// Put stores value under key, replacing any previous entry.
func (c *TTLCache) Put(key string, value any) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		value:    value,
		storedAt: c.now(),
	}
}

// Delete removes a specific key from the cache.
func (c *TTLCache) Delete(key string) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateAll removes all entries from the cache.
func (c *TTLCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Len returns the number of stored entries, expired ones included.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// CacheInventory lists what a cache currently holds.
type CacheInventory struct {
	Size int           `json:"size"`
	TTL  time.Duration `json:"ttl"`
	Keys []string      `json:"keys"`
}

// CacheStats describes the cache. For a disabled cache the inventory is nil
// and the JSON form is just {"enabled":false}.
type CacheStats struct {
	Enabled bool `json:"enabled"`
	*CacheInventory
}

// Stats reports the cache state. Keys are sorted and include expired entries.
func (c *TTLCache) Stats() CacheStats {
	if !c.enabled {
		return CacheStats{Enabled: false}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return CacheStats{
		Enabled: true,
		CacheInventory: &CacheInventory{
			Size: len(c.entries),
			TTL:  c.ttl,
			Keys: keys,
		},
	}
}
