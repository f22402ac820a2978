package outbound

import "faceless-timeline/domain"

// WordIndexCachePort memoizes flattened word lists. Keys carry segment identity
// and version, never the segment's position in the timeline.
type WordIndexCachePort interface {
	Get(key string) ([]domain.FlatWord, bool)
	Put(key string, words []domain.FlatWord)
}
