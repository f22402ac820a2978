package domain

import (
	"math"
	"sort"
)

type TimelineEntry struct {
	Segment          Segment `json:"segment"`
	SourceIndex      int     `json:"sourceIndex"`
	StartTime        float64 `json:"startTime"`
	Duration         float64 `json:"duration"`
	StartFrame       int     `json:"startFrame"`
	DurationInFrames int     `json:"durationInFrames"`
}

func (e TimelineEntry) EndTime() float64 {
	return e.StartTime + e.Duration
}

// Timeline is derived from a segment list and never mutated; any edit to the
// segments requires a rebuild.
type Timeline struct {
	Entries       []TimelineEntry `json:"entries"`
	TotalDuration float64         `json:"totalDuration"`
	TotalFrames   int             `json:"totalFrames"`
	FPS           float64         `json:"fps"`
}

type Location struct {
	Entry            TimelineEntry
	Index            int
	SegmentLocalTime float64
	Frame            int
}

// TimeToFrame rounds half away from zero.
func TimeToFrame(t float64, fps float64) int {
	return int(math.Round(t * fps))
}

func FrameToTime(frame int, fps float64) float64 {
	return float64(frame) / fps
}

// BuildTimeline orders segments by Order (stable, ties keep array position)
// and accumulates start times and frame ranges.
func BuildTimeline(segments []Segment, fps float64) (*Timeline, error) {
	if !finite(fps) || fps <= 0 {
		return nil, &ConfigurationError{Field: "fps", Index: -1, Reason: "must be a positive number"}
	}
	for i, s := range segments {
		if !finite(s.Duration) || s.Duration <= 0 {
			return nil, &ConfigurationError{Field: "segments.duration", Index: i, Reason: "must be resolved to a positive number of seconds"}
		}
	}

	entries := make([]TimelineEntry, len(segments))
	for i, s := range segments {
		entries[i] = TimelineEntry{Segment: s, SourceIndex: i, Duration: s.Duration}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Segment.Order < entries[j].Segment.Order
	})

	var cursor float64
	for i := range entries {
		entries[i].StartTime = cursor
		entries[i].StartFrame = TimeToFrame(cursor, fps)
		cursor += entries[i].Duration
		entries[i].DurationInFrames = TimeToFrame(cursor, fps) - entries[i].StartFrame
	}

	return &Timeline{
		Entries:       entries,
		TotalDuration: cursor,
		TotalFrames:   TimeToFrame(cursor, fps),
		FPS:           fps,
	}, nil
}

// Locate finds the segment whose [start, start+duration) holds t. Queries
// outside [0, TotalDuration) report false; clamping or looping is the caller's call.
func (tl *Timeline) Locate(t float64) (Location, bool) {
	if tl == nil || len(tl.Entries) == 0 || !finite(t) || t < 0 || t >= tl.TotalDuration {
		return Location{}, false
	}

	idx := sort.Search(len(tl.Entries), func(i int) bool {
		return tl.Entries[i].StartTime > t
	}) - 1
	if idx < 0 {
		return Location{}, false
	}

	entry := tl.Entries[idx]
	frame := TimeToFrame(t, tl.FPS)
	if frame >= tl.TotalFrames {
		frame = tl.TotalFrames - 1
	}

	return Location{
		Entry:            entry,
		Index:            idx,
		SegmentLocalTime: clampLocalTime(t-entry.StartTime, entry.Duration),
		Frame:            frame,
	}, true
}

// LocateByFrame resolves a frame through the frame ranges, so every frame in
// [0, TotalFrames) lands in exactly one segment.
func (tl *Timeline) LocateByFrame(frame int) (Location, bool) {
	if tl == nil || len(tl.Entries) == 0 || frame < 0 || frame >= tl.TotalFrames {
		return Location{}, false
	}

	idx := sort.Search(len(tl.Entries), func(i int) bool {
		return tl.Entries[i].StartFrame > frame
	}) - 1
	if idx < 0 {
		return Location{}, false
	}

	entry := tl.Entries[idx]
	local := FrameToTime(frame, tl.FPS) - entry.StartTime

	return Location{
		Entry:            entry,
		Index:            idx,
		SegmentLocalTime: clampLocalTime(local, entry.Duration),
		Frame:            frame,
	}, true
}

// clampLocalTime keeps local time inside [0, duration).
func clampLocalTime(local, duration float64) float64 {
	if local < 0 {
		return 0
	}
	if local >= duration {
		return math.Nextafter(duration, 0)
	}
	return local
}
