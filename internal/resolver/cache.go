// Package resolver orchestrates the tiered price lookup cascade and owns
// the per-run price cache.
package resolver

import (
	"context"
	"sync"

	"github.com/rishabhm/dealscope/internal/model"
)

// Entry is one memoized resolution: either a resolved price or an explicit
// miss marker, so failing lookups are not repeated within a run.
type Entry struct {
	Price model.ResolvedPrice
	Miss  bool
}

// Store persists cache entries between runs. Implementations must tolerate
// being handed keys they have never seen.
type Store interface {
	LoadEntries(ctx context.Context) (map[string]Entry, error)
	SaveEntry(ctx context.Context, key string, e Entry) error
	Close() error
}

// CacheStats summarizes cache activity for reporting.
type CacheStats struct {
	Entries  int
	Hits     int
	Misses   int
	Negative int
}

// Cache memoizes resolutions by lookup identity. Safe for concurrent use,
// though the reference pipeline is sequential.
type Cache struct {
	entries map[string]Entry
	hits    int
	misses  int
	mu      sync.RWMutex
}

// NewCache creates an empty cache, optionally seeded with persisted entries.
func NewCache(seed map[string]Entry) *Cache {
	entries := make(map[string]Entry, len(seed))
	for k, v := range seed {
		entries[k] = v
	}
	return &Cache{entries: entries}
}

// Get returns the memoized entry for a key, recording hit/miss counts.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return e, ok
}

// Set stores an entry for a key.
func (c *Cache) Set(key string, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = e
}

// Stats returns a snapshot of cache activity.
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	negative := 0
	for _, e := range c.entries {
		if e.Miss {
			negative++
		}
	}
	return CacheStats{
		Entries:  len(c.entries),
		Hits:     c.hits,
		Misses:   c.misses,
		Negative: negative,
	}
}
