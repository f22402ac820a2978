package services

import (
	"context"
	"faceless-timeline/application/ports/inbound"
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/domain"
	"time"
)

type playbackPreview struct {
	logger     outbound.LoggerPort
	compositor inbound.TimelineCompositorPort
	workerPool outbound.TaskDispatcher
}

func NewPlaybackPreview(logger outbound.LoggerPort, compositor inbound.TimelineCompositorPort,
	workerPool outbound.TaskDispatcher) inbound.PlaybackPreviewPort {
	return &playbackPreview{
		logger:     logger,
		compositor: compositor,
		workerPool: workerPool,
	}
}

// Stream plays the project back at params.FPS, one descriptor per tick,
// starting at params.From. A seek is just a new stream with another From.
func (p *playbackPreview) Stream(ctx context.Context, params inbound.PreviewParams) (<-chan domain.RenderDescriptor, <-chan error) {
	out := make(chan domain.RenderDescriptor)
	errCh := make(chan error, 1)

	tl, err := p.compositor.BuildTimeline(params.Project, params.FPS)
	if err != nil {
		errCh <- err
		close(out)
		close(errCh)
		return out, errCh
	}

	err = p.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)

		frame := 0
		if params.From > 0 {
			frame = domain.TimeToFrame(params.From, params.FPS)
		}
		if frame >= tl.TotalFrames {
			frame = 0
		}

		ticker := time.NewTicker(time.Duration(float64(time.Second) / params.FPS))
		defer ticker.Stop()

		for {
			descriptor, err := p.compositor.RenderAtFrame(params.Project, frame, params.FPS)
			if err != nil {
				errCh <- err
				return
			}

			if !descriptor.InRange {
				if !params.Loop || tl.TotalFrames == 0 {
					p.logger.DebugWithFields("preview reached end of timeline", map[string]interface{}{
						"project_id": params.Project.ID,
						"frames":     tl.TotalFrames,
					})
					return
				}
				frame = 0
				continue
			}

			select {
			case <-ctx.Done():
				return
			case out <- descriptor:
			}
			frame++

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	})
	if err != nil {
		errCh <- err
		close(out)
		close(errCh)
	}

	return out, errCh
}
