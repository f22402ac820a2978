package adapters

import (
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/domain"
	"sync"
)

const DefaultWordIndexCacheSize = 512

// memoryWordIndexCache is a bounded in-process map. When full, it evicts the
// oldest insertion; stale versions of an edited segment age out the same way.
type memoryWordIndexCache struct {
	mu       sync.RWMutex
	capacity int
	entries  map[string][]domain.FlatWord
	order    []string
}

func NewMemoryWordIndexCache(capacity int) outbound.WordIndexCachePort {
	if capacity <= 0 {
		capacity = DefaultWordIndexCacheSize
	}
	return &memoryWordIndexCache{
		capacity: capacity,
		entries:  make(map[string][]domain.FlatWord, capacity),
		order:    make([]string, 0, capacity),
	}
}

func (c *memoryWordIndexCache) Get(key string) ([]domain.FlatWord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	words, ok := c.entries[key]
	return words, ok
}

func (c *memoryWordIndexCache) Put(key string, words []domain.FlatWord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.entries[key] = words
		return
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = words
	c.order = append(c.order, key)
}
