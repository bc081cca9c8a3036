package api

import (
	"testing"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
)

func TestDatasetCacheEvictsOldest(t *testing.T) {
	c := NewDatasetCache(2)
	c.Put("a", &chamber.Dataset{ID: "a"})
	c.Put("b", &chamber.Dataset{ID: "b"})
	c.Put("c", &chamber.Dataset{ID: "c"})

	if c.Get("a") != nil {
		t.Error("oldest entry should have been evicted")
	}
	if c.Get("b") == nil || c.Get("c") == nil {
		t.Error("recent entries should survive eviction")
	}
}

func TestDatasetCacheGetRefreshesRecency(t *testing.T) {
	c := NewDatasetCache(2)
	c.Put("a", &chamber.Dataset{ID: "a"})
	c.Put("b", &chamber.Dataset{ID: "b"})

	// Touch a, making b the eviction candidate.
	if c.Get("a") == nil {
		t.Fatal("expected a to be cached")
	}
	c.Put("c", &chamber.Dataset{ID: "c"})

	if c.Get("b") != nil {
		t.Error("b should have been evicted after a was touched")
	}
	if c.Get("a") == nil {
		t.Error("a should survive after being touched")
	}
}

func TestDatasetCacheMiss(t *testing.T) {
	c := NewDatasetCache(2)
	if c.Get("missing") != nil {
		t.Error("expected nil for uncached id")
	}
}

func TestNewDatasetCacheFromEnv(t *testing.T) {
	t.Setenv("DATASET_CACHE_SIZE", "3")
	c := NewDatasetCacheFromEnv()
	if c.maxSize != 3 {
		t.Errorf("maxSize = %d, want 3", c.maxSize)
	}

	t.Setenv("DATASET_CACHE_SIZE", "not-a-number")
	c = NewDatasetCacheFromEnv()
	if c.maxSize != 8 {
		t.Errorf("maxSize = %d, want default 8", c.maxSize)
	}
}
