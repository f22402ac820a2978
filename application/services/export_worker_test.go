package services

import (
	"context"
	"faceless-timeline/domain"
	"testing"
	"time"
)

func TestExportWorker_Run(t *testing.T) {
	queue := newFakeQueue()
	queue.jobs = []domain.ExportJob{
		{ExportID: "good", ProjectID: "p1", FPS: 30},
		{ExportID: "missing", ProjectID: "nope", FPS: 30},
	}

	pipeline := newExportPipeline(t, &fakePublisher{}, map[string]domain.Project{"p1": *storyboardProject()})
	worker := NewExportWorker(newTestLogger(), queue, pipeline, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	queue.onEmpty = cancel

	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}

	good := queue.states["good"]
	if good.Status != domain.ExportDone || good.TotalFrames != 150 || good.ManifestKey == "" {
		t.Fatalf("unexpected state %+v", good)
	}
	if h := queue.history["good"]; len(h) != 2 || h[0] != domain.ExportRunning || h[1] != domain.ExportDone {
		t.Fatalf("status history = %v", h)
	}

	missing := queue.states["missing"]
	if missing.Status != domain.ExportFailed || missing.Error == "" {
		t.Fatalf("unexpected state %+v", missing)
	}
}
