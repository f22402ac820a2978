package services

import (
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/domain"
	"faceless-timeline/infrastructure/adapters"
	"github.com/panjf2000/ants/v2"
	"io"
	"testing"
)

func newTestLogger() outbound.LoggerPort {
	return adapters.NewZerologWrapperTo(io.Discard, "error")
}

func newTestPool(t *testing.T) *ants.Pool {
	t.Helper()
	workerPool, err := ants.NewPool(20)
	if err != nil {
		t.Fatal("Failed to create worker pool:", err)
	}
	t.Cleanup(workerPool.Release)
	return workerPool
}

func words(spans ...[2]float64) []domain.Word {
	out := make([]domain.Word, len(spans))
	for i, s := range spans {
		out[i] = domain.Word{Text: string(rune('a' + i)), Start: s[0], End: s[1]}
	}
	return out
}

// storyboardProject is a 5 s, two-segment project: five 0.4 s words then a
// silent tail in the first segment, no captions in the second.
func storyboardProject() *domain.Project {
	return &domain.Project{
		ID:      "p1",
		UserID:  "user-1",
		Caption: domain.CaptionConfig{WordsPerBatch: 2},
		Segments: []domain.Segment{
			{
				ID:       "s1",
				Version:  1,
				Duration: 3,
				Order:    0,
				Effect:   domain.EffectPanZoom,
				WordTimingGroups: []domain.TimingGroup{
					{Text: "a b c d e", Start: 0, End: 2, Words: words(
						[2]float64{0, 0.4}, [2]float64{0.4, 0.8}, [2]float64{0.8, 1.2},
						[2]float64{1.2, 1.6}, [2]float64{1.6, 2.0},
					)},
				},
			},
			{ID: "s2", Version: 1, Duration: 2, Order: 1, Effect: domain.EffectSlideRight},
		},
	}
}
