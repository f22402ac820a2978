package dto

import "faceless-timeline/domain"

type TimelineEntryResponse struct {
	SegmentID        string        `json:"segmentId"`
	Order            int           `json:"order"`
	SourceIndex      int           `json:"sourceIndex"`
	Effect           domain.Effect `json:"effect"`
	StartTime        float64       `json:"startTime"`
	EndTime          float64       `json:"endTime"`
	Duration         float64       `json:"duration"`
	StartFrame       int           `json:"startFrame"`
	DurationInFrames int           `json:"durationInFrames"`
}

type TimelineResponse struct {
	ProjectID     string                  `json:"projectId,omitempty"`
	FPS           float64                 `json:"fps"`
	TotalDuration float64                 `json:"totalDuration"`
	TotalFrames   int                     `json:"totalFrames"`
	Entries       []TimelineEntryResponse `json:"entries"`
}

func NewTimelineResponse(projectID string, tl *domain.Timeline) TimelineResponse {
	entries := make([]TimelineEntryResponse, len(tl.Entries))
	for i, e := range tl.Entries {
		entries[i] = TimelineEntryResponse{
			SegmentID:        e.Segment.ID,
			Order:            e.Segment.Order,
			SourceIndex:      e.SourceIndex,
			Effect:           domain.ParseEffect(string(e.Segment.Effect)),
			StartTime:        e.StartTime,
			EndTime:          e.EndTime(),
			Duration:         e.Duration,
			StartFrame:       e.StartFrame,
			DurationInFrames: e.DurationInFrames,
		}
	}
	return TimelineResponse{
		ProjectID:     projectID,
		FPS:           tl.FPS,
		TotalDuration: tl.TotalDuration,
		TotalFrames:   tl.TotalFrames,
		Entries:       entries,
	}
}
