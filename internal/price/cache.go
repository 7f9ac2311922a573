package price

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Entry is a cached price for one identifier.
type Entry struct {
	ID        string
	Price     float64
	FetchedAt time.Time
}

// Cache provides thread-safe price caching with an explicit retention.
// A zero retention keeps entries for the lifetime of the process.
type Cache struct {
	entries   map[string]Entry
	mu        sync.RWMutex
	retention time.Duration
	logger    *zap.Logger
	now       func() time.Time

	// Statistics (accessed atomically)
	hits   uint64
	misses uint64
}

// NewCache creates a new price cache
func NewCache(retention time.Duration, logger *zap.Logger) *Cache {
	if retention < 0 {
		retention = 0
	}
	return &Cache{
		entries:   make(map[string]Entry),
		retention: retention,
		logger:    logger,
		now:       time.Now,
	}
}

// Get returns a fresh entry for id.
func (c *Cache) Get(id string) (Entry, bool) {
	c.mu.RLock()
	entry, exists := c.entries[id]
	c.mu.RUnlock()

	if !exists || c.expired(entry) {
		atomic.AddUint64(&c.misses, 1)
		return Entry{}, false
	}

	atomic.AddUint64(&c.hits, 1)
	return entry, true
}

// peek is Get without touching the hit and miss counters.
func (c *Cache) peek(id string) (Entry, bool) {
	c.mu.RLock()
	entry, exists := c.entries[id]
	c.mu.RUnlock()

	if !exists || c.expired(entry) {
		return Entry{}, false
	}
	return entry, true
}

// Set stores a price for id.
func (c *Cache) Set(id string, price float64) Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := Entry{ID: id, Price: price, FetchedAt: c.now()}
	c.entries[id] = entry
	return entry
}

// Snapshot returns a copy of all entries
func (c *Cache) Snapshot() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		snapshot = append(snapshot, entry)
	}
	return snapshot
}

// Stats returns cache statistics
func (c *Cache) Stats() (entries, hits, misses uint64) {
	c.mu.RLock()
	entries = uint64(len(c.entries))
	c.mu.RUnlock()

	hits = atomic.LoadUint64(&c.hits)
	misses = atomic.LoadUint64(&c.misses)
	return entries, hits, misses
}

// Retention returns the configured retention; zero means unbounded.
func (c *Cache) Retention() time.Duration {
	return c.retention
}

// CleanupStale removes entries older than the retention. With unbounded
// retention it is a no-op.
func (c *Cache) CleanupStale() int {
	if c.retention == 0 {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for id, entry := range c.entries {
		if c.expired(entry) {
			delete(c.entries, id)
			removed++
		}
	}

	if removed > 0 {
		c.logger.Debug("Cleaned up stale prices",
			zap.Int("removed", removed),
			zap.Int("remaining", len(c.entries)))
	}

	return removed
}

func (c *Cache) expired(entry Entry) bool {
	return c.retention > 0 && c.now().Sub(entry.FetchedAt) > c.retention
}
