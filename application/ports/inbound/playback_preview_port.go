package inbound

import (
	"context"
	"faceless-timeline/domain"
)

type PreviewParams struct {
	Project *domain.Project
	From    float64
	FPS     float64
	// Loop restarts from 0 past the end; otherwise the stream closes there.
	Loop bool
}

// PlaybackPreviewPort streams descriptors in real time. The error channel is
// buffered, carries at most one error and is closed together with the
// descriptor channel.
type PlaybackPreviewPort interface {
	Stream(ctx context.Context, params PreviewParams) (<-chan domain.RenderDescriptor, <-chan error)
}
