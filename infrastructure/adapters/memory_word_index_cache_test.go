package adapters

import (
	"faceless-timeline/domain"
	"fmt"
	"sync"
	"testing"
)

func TestMemoryWordIndexCache_GetPut(t *testing.T) {
	cache := NewMemoryWordIndexCache(2)

	if _, ok := cache.Get("s1@1"); ok {
		t.Fatal("empty cache reported a hit")
	}

	words := []domain.FlatWord{{Text: "hi", Start: 0, End: 0.4, Valid: true}}
	cache.Put("s1@1", words)

	got, ok := cache.Get("s1@1")
	if !ok || len(got) != 1 || got[0].Text != "hi" {
		t.Fatalf("Get = %v, %v", got, ok)
	}
	if _, ok := cache.Get("s1@2"); ok {
		t.Fatal("a new version must miss")
	}
}

func TestMemoryWordIndexCache_EvictsOldest(t *testing.T) {
	cache := NewMemoryWordIndexCache(2)

	cache.Put("a", nil)
	cache.Put("b", nil)
	cache.Put("a", []domain.FlatWord{{Text: "x"}})
	cache.Put("c", nil)

	if _, ok := cache.Get("a"); ok {
		t.Error("oldest insertion should be evicted even after an overwrite")
	}
	for _, key := range []string{"b", "c"} {
		if _, ok := cache.Get(key); !ok {
			t.Errorf("%s should still be cached", key)
		}
	}
}

func TestMemoryWordIndexCache_Concurrent(t *testing.T) {
	cache := NewMemoryWordIndexCache(8)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("s%d@1", i%4)
			cache.Put(key, []domain.FlatWord{{Text: key}})
			cache.Get(key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 4; i++ {
		if _, ok := cache.Get(fmt.Sprintf("s%d@1", i)); !ok {
			t.Errorf("s%d@1 missing", i)
		}
	}
}
