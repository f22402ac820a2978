package inbound

import (
	"context"
	"faceless-timeline/domain"
)

type ScheduleExportParams struct {
	ProjectID string
	UserID    string
	FPS       float64
}

type ExportSchedulerPort interface {
	Schedule(ctx context.Context, params ScheduleExportParams) (*domain.ExportState, error)
	Status(ctx context.Context, exportID string) (*domain.ExportState, error)
}

type ExportWorkerPort interface {
	Run(ctx context.Context) error
}
