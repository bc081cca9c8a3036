package api

import (
	"os"
	"strconv"
	"sync"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
)

// DatasetCache is a thread-safe LRU cache for loaded chamber datasets,
// keyed by dataset ID. Dataset blobs are immutable, so entries never go
// stale; a new intake gets a new ID.
type DatasetCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*cacheEntry
	order   []string // oldest first
}

type cacheEntry struct {
	ds *chamber.Dataset
}

// NewDatasetCache creates a cache with the given maximum number of entries.
// If maxSize <= 0, it defaults to 8.
func NewDatasetCache(maxSize int) *DatasetCache {
	if maxSize <= 0 {
		maxSize = 8
	}
	return &DatasetCache{
		maxSize: maxSize,
		entries: make(map[string]*cacheEntry),
	}
}

// NewDatasetCacheFromEnv creates a cache with size from the
// DATASET_CACHE_SIZE env var.
func NewDatasetCacheFromEnv() *DatasetCache {
	size := 8
	if v := os.Getenv("DATASET_CACHE_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			size = parsed
		}
	}
	return NewDatasetCache(size)
}

// Get retrieves a dataset from the cache, or nil if not found.
func (c *DatasetCache) Get(id string) *chamber.Dataset {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[id]
	if !ok {
		return nil
	}

	// Move to end (most recently used)
	c.moveToEnd(id)
	return entry.ds
}

// Put adds a dataset to the cache, evicting the oldest if full.
func (c *DatasetCache) Put(id string, ds *chamber.Dataset) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[id]; ok {
		c.entries[id] = &cacheEntry{ds: ds}
		c.moveToEnd(id)
		return
	}

	// Evict oldest if at capacity
	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[id] = &cacheEntry{ds: ds}
	c.order = append(c.order, id)
}

func (c *DatasetCache) moveToEnd(id string) {
	for i, k := range c.order {
		if k == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, id)
			return
		}
	}
}
