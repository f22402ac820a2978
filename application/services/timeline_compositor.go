package services

import (
	"faceless-timeline/application/ports/inbound"
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/domain"
	"fmt"
	"hash/fnv"
	"math"
)

type timelineCompositor struct {
	logger         outbound.LoggerPort
	wordIndexCache outbound.WordIndexCachePort
}

// NewTimelineCompositor builds the compositor shared by preview and export.
// wordIndexCache may be nil, in which case word lists are rebuilt per call.
func NewTimelineCompositor(logger outbound.LoggerPort, wordIndexCache outbound.WordIndexCachePort) inbound.TimelineCompositorPort {
	return &timelineCompositor{
		logger:         logger,
		wordIndexCache: wordIndexCache,
	}
}

func (c *timelineCompositor) BuildTimeline(project *domain.Project, fps float64) (*domain.Timeline, error) {
	if project == nil {
		return nil, &domain.ConfigurationError{Field: "project", Index: -1, Reason: "is required"}
	}
	tl, err := domain.BuildTimeline(project.Segments, fps)
	if err != nil {
		c.logger.ErrorWithFields(err, "cannot build timeline", map[string]interface{}{
			"project_id": project.ID,
			"fps":        fps,
		})
		return nil, err
	}
	return tl, nil
}

func (c *timelineCompositor) RenderAtTime(project *domain.Project, t float64, fps float64) (domain.RenderDescriptor, error) {
	tl, err := c.BuildTimeline(project, fps)
	if err != nil {
		return domain.RenderDescriptor{}, err
	}

	loc, ok := tl.Locate(t)
	if !ok {
		return domain.OutOfRangeDescriptor(tl, t, domain.TimeToFrame(t, fps)), nil
	}

	return c.describe(project, tl, loc, t), nil
}

func (c *timelineCompositor) RenderAtFrame(project *domain.Project, frame int, fps float64) (domain.RenderDescriptor, error) {
	tl, err := c.BuildTimeline(project, fps)
	if err != nil {
		return domain.RenderDescriptor{}, err
	}

	t := domain.FrameToTime(frame, fps)
	loc, ok := tl.LocateByFrame(frame)
	if !ok {
		return domain.OutOfRangeDescriptor(tl, t, frame), nil
	}

	return c.describe(project, tl, loc, t), nil
}

func (c *timelineCompositor) describe(project *domain.Project, tl *domain.Timeline, loc domain.Location, t float64) domain.RenderDescriptor {
	segment := loc.Entry.Segment
	words := c.wordIndex(project.ID, segment)

	statuses := domain.AppendActiveWords(make([]domain.WordStatus, 0, len(words)), words, loc.SegmentLocalTime)

	progress := loc.SegmentLocalTime / loc.Entry.Duration
	effect := domain.ParseEffect(string(segment.Effect))
	transform := domain.EffectTransformAt(effect, domain.EffectClock{
		Progress:  progress,
		LocalTime: loc.SegmentLocalTime,
		Frame:     loc.Frame,
	})

	batches := domain.BatchCaptions(statuses, project.Caption.WordsPerBatch)
	batchIndex := domain.CurrentBatchIndex(batches)
	var current *domain.CaptionBatch
	if batchIndex >= 0 {
		b := batches[batchIndex]
		current = &b
	}

	return domain.RenderDescriptor{
		InRange:            true,
		ActiveSegmentIndex: loc.Index,
		SegmentID:          segment.ID,
		QueryTime:          t,
		Frame:              loc.Frame,
		SegmentLocalTime:   loc.SegmentLocalTime,
		Progress:           progress,
		Effect:             effect,
		EffectTransform:    transform,
		ActiveWords:        statuses,
		CaptionBatch:       current,
		CaptionBatchIndex:  batchIndex,
		CaptionBatchCount:  len(batches),
		TotalDuration:      tl.TotalDuration,
		TotalFrames:        tl.TotalFrames,
	}
}

// wordIndex is a read-through cache over BuildWordIndex. Segments without an
// ID cannot be told apart across edits and always bypass the cache.
func (c *timelineCompositor) wordIndex(projectID string, segment domain.Segment) []domain.FlatWord {
	if c.wordIndexCache == nil || segment.ID == "" {
		return domain.BuildWordIndex(segment.WordTimingGroups)
	}

	key := wordIndexKey(projectID, segment)
	if words, ok := c.wordIndexCache.Get(key); ok {
		return words
	}

	words := domain.BuildWordIndex(segment.WordTimingGroups)
	c.wordIndexCache.Put(key, words)
	return words
}

// wordIndexKey scopes entries to the project and pins them to the timing
// content, so two projects reusing a segment ID and version never share words.
func wordIndexKey(projectID string, segment domain.Segment) string {
	return fmt.Sprintf("%s/%s@%d#%016x", projectID, segment.ID, segment.Version, timingFingerprint(segment.WordTimingGroups))
}

func timingFingerprint(groups []domain.TimingGroup) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	writeFloat := func(f float64) {
		bits := math.Float64bits(f)
		for i := range buf {
			buf[i] = byte(bits >> (8 * i))
		}
		h.Write(buf[:])
	}
	writeText := func(s string) {
		writeFloat(float64(len(s)))
		h.Write([]byte(s))
	}

	for _, g := range groups {
		writeText(g.Text)
		writeFloat(g.Start)
		writeFloat(g.End)
		writeFloat(float64(len(g.Words)))
		for _, w := range g.Words {
			writeText(w.Text)
			writeFloat(w.Start)
			writeFloat(w.End)
		}
	}
	return h.Sum64()
}
