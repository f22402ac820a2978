package services

import (
	"context"
	"faceless-timeline/application/ports/inbound"
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/domain"
	"math"
	"sync"
)

type segmentDurationResolver struct {
	logger     outbound.LoggerPort
	probe      outbound.AudioDurationProbePort
	workerPool outbound.TaskDispatcher
}

func NewSegmentDurationResolver(logger outbound.LoggerPort, probe outbound.AudioDurationProbePort,
	workerPool outbound.TaskDispatcher) inbound.SegmentDurationResolverPort {
	return &segmentDurationResolver{
		logger:     logger,
		probe:      probe,
		workerPool: workerPool,
	}
}

type probedDuration struct {
	index    int
	duration float64
}

// Resolve returns a copy of segments where every duration is positive. Missing
// durations are probed from the segment audio, falling back to
// domain.DefaultSegmentDuration.
func (r *segmentDurationResolver) Resolve(ctx context.Context, segments []domain.Segment) ([]domain.Segment, error) {
	out := make([]domain.Segment, len(segments))
	copy(out, segments)

	pending := make([]int, 0)
	for i, s := range out {
		if !hasResolvedDuration(s.Duration) {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		return out, nil
	}

	results := make(chan probedDuration, len(pending))
	var wg sync.WaitGroup

	for _, idx := range pending {
		i := idx
		wg.Add(1)
		err := r.workerPool.Submit(func() {
			defer wg.Done()
			results <- probedDuration{index: i, duration: r.durationFor(ctx, out[i])}
		})
		if err != nil {
			wg.Done()
			r.logger.Error(err, "failed to submit duration probe")
			wg.Wait()
			return nil, err
		}
	}

	wg.Wait()
	close(results)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for res := range results {
		out[res.index].Duration = res.duration
	}

	return out, nil
}

func (r *segmentDurationResolver) durationFor(ctx context.Context, segment domain.Segment) float64 {
	fields := map[string]interface{}{
		"segment_id": segment.ID,
		"order":      segment.Order,
	}

	if segment.AudioURL == "" || r.probe == nil {
		r.logger.DebugWithFields("segment has no audio, using default duration", fields)
		return domain.DefaultSegmentDuration
	}

	duration, err := r.probe.Probe(ctx, segment.AudioURL)
	if err != nil || !hasResolvedDuration(duration) {
		fields["audio_url"] = segment.AudioURL
		fields["probed"] = duration
		r.logger.ErrorWithFields(err, "audio probe gave no usable duration, using default", fields)
		return domain.DefaultSegmentDuration
	}

	return duration
}

func hasResolvedDuration(d float64) bool {
	return !math.IsNaN(d) && !math.IsInf(d, 0) && d > 0
}
