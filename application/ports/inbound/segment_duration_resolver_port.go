package inbound

import (
	"context"
	"faceless-timeline/domain"
)

type SegmentDurationResolverPort interface {
	Resolve(ctx context.Context, segments []domain.Segment) ([]domain.Segment, error)
}
