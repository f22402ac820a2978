package services

import (
	"context"
	"errors"
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/domain"
	"sync"
)

type fakeProbe struct {
	mu        sync.Mutex
	durations map[string]float64
	calls     []string
}

func (f *fakeProbe) Probe(_ context.Context, audioURL string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, audioURL)
	d, ok := f.durations[audioURL]
	if !ok {
		return 0, errors.New("probe failed")
	}
	return d, nil
}

type fakeReader struct {
	projects map[string]domain.Project
}

func (f *fakeReader) Read(_ context.Context, projectID string) (*domain.Project, error) {
	p, ok := f.projects[projectID]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return &p, nil
}

type fakePublisher struct {
	err         error
	stopAfter   int
	descriptors []domain.RenderDescriptor
	req         outbound.PublishManifestRequest
}

func (f *fakePublisher) Publish(ctx context.Context, req outbound.PublishManifestRequest) (*outbound.PublishManifestResponse, error) {
	f.req = req
	for d := range req.Descriptors {
		f.descriptors = append(f.descriptors, d)
		if f.err != nil && len(f.descriptors) >= f.stopAfter {
			return nil, f.err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &outbound.PublishManifestResponse{
		ManifestKey: "user/" + req.UserID + "/project/" + req.ProjectID + "/exports/" + req.ExportID + "/manifest.jsonl",
		StoreRegion: "eu-west-1",
		Frames:      len(f.descriptors),
	}, nil
}

// fakeQueue serves queued jobs, then cancels the worker once it runs dry.
type fakeQueue struct {
	mu         sync.Mutex
	jobs       []domain.ExportJob
	states     map[string]domain.ExportState
	history    map[string][]domain.ExportStatus
	enqueueErr error
	onEmpty    func()
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{
		states:  make(map[string]domain.ExportState),
		history: make(map[string][]domain.ExportStatus),
	}
}

func (f *fakeQueue) Enqueue(_ context.Context, job domain.ExportJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enqueueErr != nil {
		return f.enqueueErr
	}
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeQueue) Dequeue(ctx context.Context) (*domain.ExportJob, error) {
	f.mu.Lock()
	if len(f.jobs) == 0 {
		onEmpty := f.onEmpty
		f.mu.Unlock()
		if onEmpty != nil {
			onEmpty()
		}
		<-ctx.Done()
		return nil, ctx.Err()
	}
	job := f.jobs[0]
	f.jobs = f.jobs[1:]
	f.mu.Unlock()
	return &job, nil
}

func (f *fakeQueue) SaveState(_ context.Context, state domain.ExportState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states[state.ExportID] = state
	f.history[state.ExportID] = append(f.history[state.ExportID], state.Status)
	return nil
}

func (f *fakeQueue) GetState(_ context.Context, exportID string) (*domain.ExportState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.states[exportID]
	if !ok {
		return nil, domain.ErrExportNotFound
	}
	return &s, nil
}
