package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachePutGet(t *testing.T) {
	c := New[string](time.Hour)

	_, ok := c.Get("k")
	assert.False(t, ok)

	c.Put("k", "v")
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestCacheTTLBoundary(t *testing.T) {
	c := New[string](time.Hour)
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	c.Put("k", "v")

	// Exactly at the TTL the entry is still valid; eviction is strict-after.
	clock = clock.Add(time.Hour)
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)

	clock = clock.Add(time.Nanosecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "stale entry must be evicted on lookup")
}

func TestCacheLastWriterWins(t *testing.T) {
	c := New[int](time.Hour)
	c.Put("k", 1)
	c.Put("k", 2)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, got)
	assert.Equal(t, 1, c.Len())
}

func TestCacheStats(t *testing.T) {
	c := New[int](time.Hour)

	c.Get("missing")
	c.Put("k", 1)
	c.Get("k")
	c.Get("k")

	stats := c.Stats()
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 2.0/3.0, stats.HitRate, 1e-9)
}

func TestCacheZeroTTLUsesDefault(t *testing.T) {
	c := New[int](0)
	assert.Equal(t, DefaultTTL, c.ttl)
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New[int](time.Hour)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := range 100 {
				key := fmt.Sprintf("k%d", j%8)
				c.Put(key, n)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 8, c.Len())
}
