package common

import (
	"fmt"

	"golang.org/x/sync/singleflight"
	"k8s.io/utils/lru"

	"github.com/llm-d/llm-d-graha-engine/internal/metrics"
)

// Cache is a concurrency-safe bounded LRU memo. Concurrent misses on the same key
// are collapsed into a single computation.
// A Cache with size zero is disabled: every lookup computes.
type Cache[K comparable, V any] struct {
	items *lru.Cache
	group singleflight.Group
}

// NewCache creates a cache holding at most size entries.
func NewCache[K comparable, V any](size int) *Cache[K, V] {
	c := &Cache[K, V]{}
	if size > 0 {
		c.items = lru.New(size)
	}
	return c
}

// Enabled reports whether the cache stores anything.
func (c *Cache[K, V]) Enabled() bool {
	return c != nil && c.items != nil
}

// Get returns a cached value.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	var zero V
	if !c.Enabled() {
		return zero, false
	}
	v, ok := c.items.Get(key)
	if !ok {
		return zero, false
	}
	return v.(V), true
}

// Set stores a value.
func (c *Cache[K, V]) Set(key K, value V) {
	if !c.Enabled() {
		return
	}
	c.items.Add(key, value)
}

// GetOrCompute returns the cached value for key, computing and storing it on a miss.
// The boolean reports whether the value came from the cache.
func (c *Cache[K, V]) GetOrCompute(key K, compute func() V) (V, bool) {
	if !c.Enabled() {
		return compute(), false
	}
	if v, ok := c.Get(key); ok {
		metrics.ObserveCacheLookup(metrics.CacheHit)
		return v, true
	}
	metrics.ObserveCacheLookup(metrics.CacheMiss)

	v, _, _ := c.group.Do(fmt.Sprint(key), func() (any, error) {
		value := compute()
		c.Set(key, value)
		return value, nil
	})
	return v.(V), false
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	if !c.Enabled() {
		return 0
	}
	return c.items.Len()
}

// Clear drops every entry.
func (c *Cache[K, V]) Clear() {
	if c.Enabled() {
		c.items.Clear()
	}
}
