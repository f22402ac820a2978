package inbound

import (
	"context"
	"faceless-timeline/domain"
)

// ProjectTimelineLoaderPort produces render-ready projects: every segment has
// a positive duration and the caption config carries a batch size. Load may
// probe stored audio for missing durations; Prepare handles caller-supplied
// projects and never touches their media URLs.
type ProjectTimelineLoaderPort interface {
	Load(ctx context.Context, projectID string) (*domain.Project, error)
	Prepare(ctx context.Context, project domain.Project) (*domain.Project, error)
}
