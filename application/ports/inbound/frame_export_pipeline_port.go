package inbound

import "context"

type StartExportParams struct {
	ExportID  string
	ProjectID string
	UserID    string
	FPS       float64
}

type ExportResponse struct {
	ManifestKey string
	Region      string
	TotalFrames int
}

type FrameExportPipelinePort interface {
	StartExport(ctx context.Context, params StartExportParams) (*ExportResponse, error)
}
