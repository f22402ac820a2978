package outbound

import (
	"context"
	"faceless-timeline/domain"
)

type ExportQueuePort interface {
	Enqueue(ctx context.Context, job domain.ExportJob) error
	// Dequeue blocks until a job is available or ctx is done. A nil job with a
	// nil error means the wait timed out and the caller should poll again.
	Dequeue(ctx context.Context) (*domain.ExportJob, error)
	SaveState(ctx context.Context, state domain.ExportState) error
	GetState(ctx context.Context, exportID string) (*domain.ExportState, error)
}
