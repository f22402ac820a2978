package services

import (
	"context"
	"errors"
	"faceless-timeline/application/ports/inbound"
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/domain"
	"time"
)

const DefaultDequeueRetryDelay = time.Second

type exportWorker struct {
	logger     outbound.LoggerPort
	queue      outbound.ExportQueuePort
	pipeline   inbound.FrameExportPipelinePort
	retryDelay time.Duration
}

func NewExportWorker(logger outbound.LoggerPort, queue outbound.ExportQueuePort,
	pipeline inbound.FrameExportPipelinePort, retryDelay time.Duration) inbound.ExportWorkerPort {
	if retryDelay <= 0 {
		retryDelay = DefaultDequeueRetryDelay
	}
	return &exportWorker{
		logger:     logger,
		queue:      queue,
		pipeline:   pipeline,
		retryDelay: retryDelay,
	}
}

// Run processes export jobs one at a time until ctx is cancelled. Frames of a
// single export are rendered sequentially, so there is no reason to run two
// exports on one worker.
func (w *exportWorker) Run(ctx context.Context) error {
	w.logger.Info("export worker listening")

	for {
		job, err := w.queue.Dequeue(ctx)
		if ctx.Err() != nil {
			w.logger.Info("export worker stopping")
			return nil
		}
		if err != nil {
			w.logger.Error(err, "error dequeuing export job")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(w.retryDelay):
			}
			continue
		}
		if job == nil {
			continue
		}

		w.process(ctx, *job)
	}
}

func (w *exportWorker) process(ctx context.Context, job domain.ExportJob) {
	logger := w.logger.With(map[string]interface{}{
		"export_id":  job.ExportID,
		"project_id": job.ProjectID,
	})

	state := domain.ExportState{
		ExportID:  job.ExportID,
		ProjectID: job.ProjectID,
		Status:    domain.ExportRunning,
	}
	w.saveState(ctx, logger, state)

	res, err := w.pipeline.StartExport(ctx, inbound.StartExportParams{
		ExportID:  job.ExportID,
		ProjectID: job.ProjectID,
		UserID:    job.UserID,
		FPS:       job.FPS,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("export interrupted by shutdown")
		} else {
			logger.Error(err, "export failed")
		}
		state.Status = domain.ExportFailed
		state.Error = err.Error()
		w.saveState(context.WithoutCancel(ctx), logger, state)
		return
	}

	state.Status = domain.ExportDone
	state.ManifestKey = res.ManifestKey
	state.Region = res.Region
	state.TotalFrames = res.TotalFrames
	w.saveState(ctx, logger, state)
}

func (w *exportWorker) saveState(ctx context.Context, logger outbound.LoggerPort, state domain.ExportState) {
	if err := w.queue.SaveState(ctx, state); err != nil {
		logger.ErrorWithFields(err, "failed to save export state", map[string]interface{}{
			"status": state.Status,
		})
	}
}
