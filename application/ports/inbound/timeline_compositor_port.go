package inbound

import "faceless-timeline/domain"

// TimelineCompositorPort turns a project and a query instant into a render
// descriptor. Calls are independent: no state carries over between them.
type TimelineCompositorPort interface {
	BuildTimeline(project *domain.Project, fps float64) (*domain.Timeline, error)
	RenderAtTime(project *domain.Project, t float64, fps float64) (domain.RenderDescriptor, error)
	RenderAtFrame(project *domain.Project, frame int, fps float64) (domain.RenderDescriptor, error)
}
