package controllers

import (
	"context"
	"faceless-timeline/application/ports/inbound"
	"faceless-timeline/domain"
	"faceless-timeline/middleware"
	"fmt"
	"github.com/gin-gonic/gin"
	"math"
	"strconv"
)

// renderInstant is a render query resolved from either a time or a frame.
type renderInstant struct {
	time  *float64
	frame *int
}

func newRenderInstant(t *float64, frame *int) (renderInstant, error) {
	if (t == nil) == (frame == nil) {
		return renderInstant{}, fmt.Errorf("exactly one of time and frame must be given")
	}
	if t != nil && !isFinite(*t) {
		return renderInstant{}, fmt.Errorf("time must be a finite number")
	}
	return renderInstant{time: t, frame: frame}, nil
}

func (r renderInstant) render(compositor inbound.TimelineCompositorPort, project *domain.Project, fps float64) (domain.RenderDescriptor, error) {
	if r.frame != nil {
		return compositor.RenderAtFrame(project, *r.frame, fps)
	}
	return compositor.RenderAtTime(project, *r.time, fps)
}

func parseRenderQuery(c *gin.Context) (renderInstant, error) {
	var t *float64
	var frame *int

	if raw, ok := c.GetQuery("t"); ok {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return renderInstant{}, fmt.Errorf("invalid t: %w", err)
		}
		t = &v
	}
	if raw, ok := c.GetQuery("frame"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return renderInstant{}, fmt.Errorf("invalid frame: %w", err)
		}
		frame = &v
	}

	return newRenderInstant(t, frame)
}

// queryFloat returns fallback when the parameter is absent.
func queryFloat(c *gin.Context, key string, fallback float64) (float64, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if !isFinite(v) {
		return 0, fmt.Errorf("%s must be a finite number", key)
	}
	return v, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func queryBool(c *gin.Context, key string, fallback bool) (bool, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func fpsOrDefault(fps, fallback float64) float64 {
	if fps == 0 {
		return fallback
	}
	return fps
}

// loadOwnedProject hides projects owned by someone else behind a not-found.
func loadOwnedProject(ctx context.Context, c *gin.Context, loader inbound.ProjectTimelineLoaderPort) (*domain.Project, error) {
	project, err := loader.Load(ctx, c.Param("id"))
	if err != nil {
		return nil, err
	}

	// an ownerless project is visible to no authenticated user
	userID := c.GetString(middleware.ContextUserIDKey)
	if userID != "" && project.UserID != userID {
		return nil, domain.ErrProjectNotFound
	}

	return project, nil
}
