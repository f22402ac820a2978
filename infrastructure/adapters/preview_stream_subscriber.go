package adapters

import (
	"context"
	"encoding/json"
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/domain"
	"fmt"
	"github.com/donovanhide/eventsource"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const MaxPreviewRetries = 3

const (
	previewEventDescriptor = "descriptor"
	previewEventEnd        = "end"
	previewEventError      = "error"
)

type previewStreamSubscriber struct {
	logger     outbound.LoggerPort
	workerPool outbound.TaskDispatcher
}

func NewPreviewStreamSubscriber(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher) outbound.PreviewSubscriberPort {
	return &previewStreamSubscriber{
		logger:     logger,
		workerPool: workerPool,
	}
}

func (s *previewStreamSubscriber) Subscribe(ctx context.Context, req outbound.SubscribePreviewRequest) (<-chan domain.RenderDescriptor, <-chan error) {
	out := make(chan domain.RenderDescriptor)
	errCh := make(chan error, 1)

	retryCount := 0

	newCtx, cancel := context.WithCancel(ctx)

	err := s.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer cancel()
		httpReq, err := s.createRequest(newCtx, req)
		if err != nil {
			s.logger.Error(err, "Failed to create HTTP request for preview stream")
			errCh <- err
			return
		}

		stream, err := eventsource.SubscribeWithRequest("", httpReq)
		if err != nil {
			s.logger.Error(err, "Failed to subscribe to preview stream")
			errCh <- err
			return
		}
		defer stream.Close()

		for {
			select {
			case <-newCtx.Done():
				return
			case ev, ok := <-stream.Events:
				if !ok {
					return
				}
				switch ev.Event() {
				case previewEventEnd:
					s.logger.Info("Preview stream ended")
					return
				case previewEventError:
					errCh <- fmt.Errorf("preview stream error: %s", ev.Data())
					return
				case previewEventDescriptor:
					descriptor, err := s.extractPayload(ev)
					if err != nil {
						errCh <- err
						return
					}
					select {
					case <-newCtx.Done():
						return
					case out <- descriptor:
					}
				}
				retryCount = 0
			case err, ok := <-stream.Errors:
				if !ok || err == io.EOF {
					s.logger.Info("Preview stream closed")
					return
				} else if retryCount < MaxPreviewRetries {
					s.logger.ErrorWithFields(err, "Error occurred during preview streaming, retrying", map[string]interface{}{
						"retry_count": retryCount})
					retryCount++
					continue
				}
				s.logger.Error(err, "Error occurred during preview streaming, max retries reached")
				errCh <- err
				return
			}
		}
	})
	if err != nil {
		s.logger.Error(err, "Failed to submit task to worker pool")
		cancel()
		errCh <- err
		close(out)
		close(errCh)
	}

	return out, errCh
}

func (s *previewStreamSubscriber) extractPayload(event eventsource.Event) (domain.RenderDescriptor, error) {
	var descriptor domain.RenderDescriptor
	if err := json.Unmarshal([]byte(event.Data()), &descriptor); err != nil {
		s.logger.Error(err, "Failed to unmarshal preview descriptor")
		return domain.RenderDescriptor{}, err
	}
	return descriptor, nil
}

func (s *previewStreamSubscriber) createRequest(ctx context.Context, req outbound.SubscribePreviewRequest) (*http.Request, error) {
	query := url.Values{}
	query.Set("from", strconv.FormatFloat(req.From, 'f', -1, 64))
	if req.FPS > 0 {
		query.Set("fps", strconv.FormatFloat(req.FPS, 'f', -1, 64))
	}
	query.Set("loop", strconv.FormatBool(req.Loop))

	endpoint := fmt.Sprintf("%s/projects/%s/preview?%s",
		strings.TrimRight(req.BaseURL, "/"), url.PathEscape(req.ProjectID), query.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	return httpReq, nil
}
