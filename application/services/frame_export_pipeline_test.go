package services

import (
	"context"
	"errors"
	"faceless-timeline/application/ports/inbound"
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/domain"
	"testing"
)

func newExportPipeline(t *testing.T, publisher *fakePublisher, projects map[string]domain.Project) inbound.FrameExportPipelinePort {
	t.Helper()
	logger := newTestLogger()
	workerPool := newTestPool(t)
	loader := NewProjectTimelineLoader(logger, &fakeReader{projects: projects},
		NewSegmentDurationResolver(logger, nil, workerPool), domain.CaptionConfig{})
	return NewFrameExportPipeline(logger, loader, NewTimelineCompositor(logger, nil), publisher, workerPool)
}

func TestFrameExportPipeline_StartExport(t *testing.T) {
	publisher := &fakePublisher{}
	pipeline := newExportPipeline(t, publisher, map[string]domain.Project{"p1": *storyboardProject()})

	res, err := pipeline.StartExport(context.Background(), inbound.StartExportParams{
		ExportID:  "e1",
		ProjectID: "p1",
		FPS:       30,
	})
	if err != nil {
		t.Fatal(err)
	}

	if res.TotalFrames != 150 || len(publisher.descriptors) != 150 {
		t.Fatalf("exported %d frames (%d published), want 150", res.TotalFrames, len(publisher.descriptors))
	}
	for i, d := range publisher.descriptors {
		if d.Frame != i || !d.InRange {
			t.Fatalf("descriptor %d out of order or range: frame %d inRange %v", i, d.Frame, d.InRange)
		}
	}
	if publisher.descriptors[89].ActiveSegmentIndex != 0 || publisher.descriptors[90].ActiveSegmentIndex != 1 {
		t.Fatal("segment boundary is not at frame 90")
	}
	if publisher.req.UserID != "user-1" {
		t.Errorf("UserID = %q, want the project owner", publisher.req.UserID)
	}
	if res.ManifestKey != "user/user-1/project/p1/exports/e1/manifest.jsonl" || res.Region != "eu-west-1" {
		t.Errorf("unexpected response %+v", res)
	}
}

func TestFrameExportPipeline_PublishFailure(t *testing.T) {
	boom := errors.New("upload failed")
	publisher := &fakePublisher{err: boom, stopAfter: 10}
	pipeline := newExportPipeline(t, publisher, map[string]domain.Project{"p1": *storyboardProject()})

	_, err := pipeline.StartExport(context.Background(), inbound.StartExportParams{ExportID: "e1", ProjectID: "p1", FPS: 30})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestFrameExportPipeline_Preconditions(t *testing.T) {
	pipeline := newExportPipeline(t, &fakePublisher{}, map[string]domain.Project{
		"empty": {ID: "empty"},
		"p1":    *storyboardProject(),
	})

	tests := []struct {
		name    string
		params  inbound.StartExportParams
		wantErr func(error) bool
	}{
		{name: "unknown project", params: inbound.StartExportParams{ProjectID: "nope", FPS: 30},
			wantErr: func(err error) bool { return errors.Is(err, domain.ErrProjectNotFound) }},
		{name: "no segments", params: inbound.StartExportParams{ProjectID: "empty", FPS: 30},
			wantErr: func(err error) bool { return errors.Is(err, domain.ErrNoSegments) }},
		{name: "zero fps", params: inbound.StartExportParams{ProjectID: "p1", FPS: 0},
			wantErr: domain.IsConfigurationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pipeline.StartExport(context.Background(), tt.params)
			if !tt.wantErr(err) {
				t.Fatalf("unexpected error %v", err)
			}
		})
	}
}

// drainingPublisher consumes the whole stream and reports what it received,
// calling onFrame after every descriptor.
type drainingPublisher struct {
	onFrame func(n int)
	drop    int
}

func (p *drainingPublisher) Publish(_ context.Context, req outbound.PublishManifestRequest) (*outbound.PublishManifestResponse, error) {
	n := 0
	for range req.Descriptors {
		n++
		if p.onFrame != nil {
			p.onFrame(n)
		}
	}
	return &outbound.PublishManifestResponse{ManifestKey: "k", Frames: n - p.drop}, nil
}

func TestFrameExportPipeline_IncompleteManifest(t *testing.T) {
	tests := []struct {
		name      string
		publisher func(cancel context.CancelFunc) *drainingPublisher
		wantErr   func(error) bool
	}{
		{
			name: "cancelled mid export",
			publisher: func(cancel context.CancelFunc) *drainingPublisher {
				return &drainingPublisher{onFrame: func(n int) {
					if n == 10 {
						cancel()
					}
				}}
			},
			wantErr: func(err error) bool { return errors.Is(err, context.Canceled) },
		},
		{
			name: "publisher lost frames",
			publisher: func(context.CancelFunc) *drainingPublisher {
				return &drainingPublisher{drop: 1}
			},
			wantErr: func(err error) bool { return err != nil && !errors.Is(err, context.Canceled) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			logger := newTestLogger()
			workerPool := newTestPool(t)
			loader := NewProjectTimelineLoader(logger, &fakeReader{projects: map[string]domain.Project{"p1": *storyboardProject()}},
				NewSegmentDurationResolver(logger, nil, workerPool), domain.CaptionConfig{})
			pipeline := NewFrameExportPipeline(logger, loader, NewTimelineCompositor(logger, nil), tt.publisher(cancel), workerPool)

			res, err := pipeline.StartExport(ctx, inbound.StartExportParams{ExportID: "e1", ProjectID: "p1", FPS: 30})
			if !tt.wantErr(err) {
				t.Fatalf("res = %+v, err = %v", res, err)
			}
			if res != nil {
				t.Fatalf("truncated export reported as published: %+v", res)
			}
		})
	}
}
