package outbound

import (
	"context"
	"faceless-timeline/domain"
)

// ProjectReaderPort loads projects from the project store. Implementations
// return domain.ErrProjectNotFound for unknown IDs.
type ProjectReaderPort interface {
	Read(ctx context.Context, projectID string) (*domain.Project, error)
}
