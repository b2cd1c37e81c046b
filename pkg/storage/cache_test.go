package storage

import (
	"testing"
)

func TestPageCacheReadsThroughAndCaches(t *testing.T) {
	store := NewPageStore(NewMemory())
	data := ZeroPage()
	data[0] = 7
	store.WritePage(1, data)

	cache := NewPageCache(store, 4)

	got, err := cache.ReadPage(1)
	if err != nil {
		t.Fatalf("Failed to read through cache: %v", err)
	}
	if got[0] != 7 {
		t.Fatalf("Expected byte 7, got %d", got[0])
	}

	// Mutate the store directly; a cached read must keep returning the
	// stale value until the cache is told the page changed.
	stale := ZeroPage()
	stale[0] = 9
	store.WritePage(1, stale)

	got, err = cache.ReadPage(1)
	if err != nil {
		t.Fatalf("Failed to read cached page: %v", err)
	}
	if got[0] != 7 {
		t.Fatalf("Expected cached stale value 7, got %d", got[0])
	}
}

func TestPageCacheInvalidateForcesReload(t *testing.T) {
	store := NewPageStore(NewMemory())
	data := ZeroPage()
	data[0] = 1
	store.WritePage(1, data)

	cache := NewPageCache(store, 4)
	cache.ReadPage(1)

	fresh := ZeroPage()
	fresh[0] = 2
	store.WritePage(1, fresh)
	cache.Invalidate(1)

	got, err := cache.ReadPage(1)
	if err != nil {
		t.Fatalf("Failed to read after invalidate: %v", err)
	}
	if got[0] != 2 {
		t.Fatalf("Expected 2 after invalidate, got %d", got[0])
	}
}

func TestPageCacheEvictsLeastRecentlyUsed(t *testing.T) {
	store := NewPageStore(NewMemory())
	for i := uint32(0); i < 3; i++ {
		page := ZeroPage()
		page[0] = byte(i)
		store.WritePage(i, page)
	}

	cache := NewPageCache(store, 2)
	cache.ReadPage(0)
	cache.ReadPage(1)
	cache.ReadPage(0) // touch 0 again so 1 becomes the LRU entry
	cache.ReadPage(2) // evicts page 1, not page 0

	updated := ZeroPage()
	updated[0] = 99
	store.WritePage(1, updated)

	got, err := cache.ReadPage(1)
	if err != nil {
		t.Fatalf("Failed to read page 1: %v", err)
	}
	if got[0] != 99 {
		t.Fatalf("Expected page 1 to have been evicted and re-fetched as 99, got %d", got[0])
	}
}

func TestPageCacheZeroCapacityBypassesCaching(t *testing.T) {
	store := NewPageStore(NewMemory())
	data := ZeroPage()
	data[0] = 5
	store.WritePage(0, data)

	cache := NewPageCache(store, 0)
	got, err := cache.ReadPage(0)
	if err != nil {
		t.Fatalf("Failed to read with zero-capacity cache: %v", err)
	}
	if got[0] != 5 {
		t.Fatalf("Expected 5, got %d", got[0])
	}

	updated := ZeroPage()
	updated[0] = 6
	store.WritePage(0, updated)

	got, err = cache.ReadPage(0)
	if err != nil {
		t.Fatalf("Failed to read again: %v", err)
	}
	if got[0] != 6 {
		t.Fatalf("Expected a zero-capacity cache to always read through, got %d", got[0])
	}
}
