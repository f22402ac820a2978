package services

import (
	"context"
	"faceless-timeline/application/ports/inbound"
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/domain"
	"github.com/google/uuid"
)

type exportScheduler struct {
	logger outbound.LoggerPort
	queue  outbound.ExportQueuePort
}

func NewExportScheduler(logger outbound.LoggerPort, queue outbound.ExportQueuePort) inbound.ExportSchedulerPort {
	return &exportScheduler{
		logger: logger,
		queue:  queue,
	}
}

func (s *exportScheduler) Schedule(ctx context.Context, params inbound.ScheduleExportParams) (*domain.ExportState, error) {
	if params.FPS <= 0 {
		return nil, &domain.ConfigurationError{Field: "fps", Index: -1, Reason: "must be a positive number"}
	}

	job := domain.ExportJob{
		ExportID:  uuid.NewString(),
		ProjectID: params.ProjectID,
		UserID:    params.UserID,
		FPS:       params.FPS,
	}
	state := domain.ExportState{
		ExportID:  job.ExportID,
		ProjectID: job.ProjectID,
		Status:    domain.ExportQueued,
	}

	// state first, so a fast worker never overwrites "running" with "queued"
	if err := s.queue.SaveState(ctx, state); err != nil {
		s.logger.Error(err, "failed to save export state")
		return nil, err
	}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		s.logger.ErrorWithFields(err, "failed to enqueue export", map[string]interface{}{
			"export_id": job.ExportID,
		})
		return nil, err
	}

	s.logger.InfoWithFields("export queued", map[string]interface{}{
		"export_id":  job.ExportID,
		"project_id": job.ProjectID,
		"fps":        job.FPS,
	})

	return &state, nil
}

func (s *exportScheduler) Status(ctx context.Context, exportID string) (*domain.ExportState, error) {
	return s.queue.GetState(ctx, exportID)
}
