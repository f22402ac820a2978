package services

import (
	"context"
	"faceless-timeline/application/ports/inbound"
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/channel_utils"
	"faceless-timeline/domain"
	"fmt"
)

const descriptorBufferSize = 64

type frameExportPipeline struct {
	logger            outbound.LoggerPort
	projectLoader     inbound.ProjectTimelineLoaderPort
	compositor        inbound.TimelineCompositorPort
	manifestPublisher outbound.RenderManifestPublisherPort
	workerPool        outbound.TaskDispatcher
}

func NewFrameExportPipeline(
	logger outbound.LoggerPort,
	projectLoader inbound.ProjectTimelineLoaderPort,
	compositor inbound.TimelineCompositorPort,
	manifestPublisher outbound.RenderManifestPublisherPort,
	workerPool outbound.TaskDispatcher) inbound.FrameExportPipelinePort {
	return &frameExportPipeline{
		logger:            logger,
		projectLoader:     projectLoader,
		compositor:        compositor,
		manifestPublisher: manifestPublisher,
		workerPool:        workerPool,
	}
}

// StartExport renders every frame of the project in order and publishes the
// resulting descriptor manifest.
func (s *frameExportPipeline) StartExport(ctx context.Context, params inbound.StartExportParams) (*inbound.ExportResponse, error) {
	newCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := s.logger.With(map[string]interface{}{
		"export_id":  params.ExportID,
		"project_id": params.ProjectID,
	})

	project, err := s.projectLoader.Load(newCtx, params.ProjectID)
	if err != nil {
		return nil, err
	}
	if len(project.Segments) == 0 {
		logger.Warn("refusing to export a project without segments")
		return nil, domain.ErrNoSegments
	}

	tl, err := s.compositor.BuildTimeline(project, params.FPS)
	if err != nil {
		return nil, err
	}

	descriptorCh, renderErrCh := s.renderFrames(newCtx, project, params.FPS, tl.TotalFrames)
	resultCh, publishErrCh := s.publish(newCtx, params, project, descriptorCh)

	mergedErrCh, err := channel_utils.MergeChannels(s.workerPool, renderErrCh, publishErrCh)
	if err != nil {
		logger.Error(err, "error merging error channels")
		return nil, err
	}

	var firstErr error
	for err := range mergedErrCh {
		if firstErr == nil {
			firstErr = err
			logger.Error(err, "error in export pipeline")
			cancel()
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	res, ok := <-resultCh
	if !ok {
		// both stages exited without an error, so the context ended first
		return nil, ctx.Err()
	}
	if res.Frames != tl.TotalFrames {
		err := fmt.Errorf("manifest %s holds %d of %d frames", res.ManifestKey, res.Frames, tl.TotalFrames)
		logger.Error(err, "incomplete export manifest")
		return nil, err
	}

	logger.InfoWithFields("export published", map[string]interface{}{
		"manifest_key": res.ManifestKey,
		"frames":       res.Frames,
	})

	return &inbound.ExportResponse{
		ManifestKey: res.ManifestKey,
		Region:      res.StoreRegion,
		TotalFrames: res.Frames,
	}, nil
}

// renderFrames produces descriptors for frames [0, totalFrames) strictly in
// order from a single task. Stopping early always reports an error.
func (s *frameExportPipeline) renderFrames(ctx context.Context, project *domain.Project, fps float64,
	totalFrames int) (<-chan domain.RenderDescriptor, <-chan error) {
	out := make(chan domain.RenderDescriptor, descriptorBufferSize)
	errCh := make(chan error, 1)

	err := s.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)

		for frame := 0; frame < totalFrames; frame++ {
			if err := ctx.Err(); err != nil {
				errCh <- err
				return
			}
			descriptor, err := s.compositor.RenderAtFrame(project, frame, fps)
			if err != nil {
				errCh <- err
				return
			}
			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			case out <- descriptor:
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

func (s *frameExportPipeline) publish(ctx context.Context, params inbound.StartExportParams, project *domain.Project,
	descriptors <-chan domain.RenderDescriptor) (<-chan *outbound.PublishManifestResponse, <-chan error) {
	resultCh := make(chan *outbound.PublishManifestResponse, 1)
	errCh := make(chan error, 1)

	userID := params.UserID
	if userID == "" {
		userID = project.UserID
	}

	err := s.workerPool.Submit(func() {
		defer close(resultCh)
		defer close(errCh)

		res, err := s.manifestPublisher.Publish(ctx, outbound.PublishManifestRequest{
			ExportID:    params.ExportID,
			ProjectID:   params.ProjectID,
			UserID:      userID,
			Descriptors: descriptors,
		})
		if err != nil {
			errCh <- err
			return
		}
		resultCh <- res
	})
	if err != nil {
		errCh <- err
		close(resultCh)
		close(errCh)
	}

	return resultCh, errCh
}
