package outbound

import (
	"context"
	"faceless-timeline/domain"
)

type PublishManifestRequest struct {
	ExportID    string
	ProjectID   string
	UserID      string
	Descriptors <-chan domain.RenderDescriptor
}

type PublishManifestResponse struct {
	ManifestKey string
	StoreRegion string
	Frames      int
}

// RenderManifestPublisherPort drains the descriptor stream into a stored
// manifest. It must consume the channel until it is closed or ctx is done.
type RenderManifestPublisherPort interface {
	Publish(ctx context.Context, req PublishManifestRequest) (*PublishManifestResponse, error)
}
