package price

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestCacheConcurrentAccess(t *testing.T) {
	cache := NewCache(0, zap.NewNop())

	var wg sync.WaitGroup
	numGoroutines := 10
	idsPerGoroutine := 50

	wg.Add(numGoroutines * 2)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < idsPerGoroutine; j++ {
				cache.Set(fmt.Sprintf("token_%d_%d", id, j), float64(j))
			}
		}(i)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < idsPerGoroutine; j++ {
				_, _ = cache.Get(fmt.Sprintf("token_%d_%d", id, j))
				_ = cache.Snapshot()
			}
		}(i)
	}
	wg.Wait()

	entries, hits, misses := cache.Stats()
	assert.Equal(t, uint64(numGoroutines*idsPerGoroutine), entries)
	assert.Equal(t, uint64(numGoroutines*idsPerGoroutine), hits+misses)
}

func TestCacheUnboundedRetention(t *testing.T) {
	cache := NewCache(0, zap.NewNop())
	now := time.Now()
	cache.now = func() time.Time { return now }

	cache.Set("ethereum", 2000)
	now = now.Add(24 * 365 * time.Hour)

	entry, ok := cache.Get("ethereum")
	assert.True(t, ok)
	assert.Equal(t, 2000.0, entry.Price)
	assert.Equal(t, 0, cache.CleanupStale())
}

func TestCacheCleanupStale(t *testing.T) {
	cache := NewCache(30*time.Minute, zap.NewNop())
	now := time.Now()
	cache.now = func() time.Time { return now }

	cache.Set("old", 1)
	now = now.Add(time.Hour)
	cache.Set("new", 2)

	_, ok := cache.Get("old")
	assert.False(t, ok, "expired entry must not be served")

	removed := cache.CleanupStale()
	assert.Equal(t, 1, removed)

	_, ok = cache.Get("new")
	assert.True(t, ok)
	assert.Len(t, cache.Snapshot(), 1)
	assert.Equal(t, 30*time.Minute, cache.Retention())
}
