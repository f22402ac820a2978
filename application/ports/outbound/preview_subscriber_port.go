package outbound

import (
	"context"
	"faceless-timeline/domain"
)

type SubscribePreviewRequest struct {
	BaseURL   string
	ProjectID string
	Token     string
	From      float64
	FPS       float64
	Loop      bool
}

// PreviewSubscriberPort consumes a remote preview stream.
type PreviewSubscriberPort interface {
	Subscribe(ctx context.Context, req SubscribePreviewRequest) (<-chan domain.RenderDescriptor, <-chan error)
}
