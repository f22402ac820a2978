package domain

// RenderDescriptor describes what to paint or encode for one instant. It is
// consumed the same way by the preview player and the frame exporter.
type RenderDescriptor struct {
	InRange            bool            `json:"inRange"`
	ActiveSegmentIndex int             `json:"activeSegmentIndex"`
	SegmentID          string          `json:"segmentId,omitempty"`
	QueryTime          float64         `json:"queryTime"`
	Frame              int             `json:"frame"`
	SegmentLocalTime   float64         `json:"segmentLocalTime"`
	Progress           float64         `json:"progress"`
	Effect             Effect          `json:"effect,omitempty"`
	EffectTransform    EffectTransform `json:"effectTransform"`
	ActiveWords        []WordStatus    `json:"activeWords"`
	CaptionBatch       *CaptionBatch   `json:"captionBatch,omitempty"`
	CaptionBatchIndex  int             `json:"captionBatchIndex"`
	CaptionBatchCount  int             `json:"captionBatchCount"`
	TotalDuration      float64         `json:"totalDuration"`
	TotalFrames        int             `json:"totalFrames"`
}

// OutOfRangeDescriptor is returned for queries before the start or past the
// end of the timeline.
func OutOfRangeDescriptor(tl *Timeline, t float64, frame int) RenderDescriptor {
	d := RenderDescriptor{
		ActiveSegmentIndex: -1,
		QueryTime:          t,
		Frame:              frame,
		EffectTransform:    IdentityTransform(),
		ActiveWords:        []WordStatus{},
		CaptionBatchIndex:  -1,
	}
	if tl != nil {
		d.TotalDuration = tl.TotalDuration
		d.TotalFrames = tl.TotalFrames
	}
	return d
}
