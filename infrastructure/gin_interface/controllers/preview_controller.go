package controllers

import (
	"context"
	"faceless-timeline/application/ports/inbound"
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/domain"
	"faceless-timeline/middleware"
	"github.com/gin-gonic/gin"
	"net/http"
)

const (
	previewEventDescriptor = "descriptor"
	previewEventError      = "error"
	previewEventEnd        = "end"
)

type PreviewController interface {
	Preview(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type previewController struct {
	logger        outbound.LoggerPort
	preview       inbound.PlaybackPreviewPort
	projectLoader inbound.ProjectTimelineLoaderPort
	defaultFPS    float64
	loop          bool
	// slots caps open streams; a looping preview never ends on its own
	slots chan struct{}
}

// NewPreviewController serves at most maxStreams previews at once and answers
// 503 beyond that.
func NewPreviewController(
	logger outbound.LoggerPort,
	preview inbound.PlaybackPreviewPort,
	projectLoader inbound.ProjectTimelineLoaderPort,
	defaultFPS float64,
	loop bool,
	maxStreams int,
) PreviewController {
	if maxStreams <= 0 {
		maxStreams = 1
	}
	return &previewController{
		logger:        logger,
		preview:       preview,
		projectLoader: projectLoader,
		defaultFPS:    defaultFPS,
		loop:          loop,
		slots:         make(chan struct{}, maxStreams),
	}
}

// Preview streams one descriptor per frame as server-sent events until the
// client disconnects or, without looping, the timeline ends.
func (p *previewController) Preview(c *gin.Context) {
	from, err := queryFloat(c, "from", 0)
	if err != nil {
		abortBadRequest(c, err)
		return
	}
	fps, err := queryFloat(c, "fps", p.defaultFPS)
	if err != nil {
		abortBadRequest(c, err)
		return
	}
	loop, err := queryBool(c, "loop", p.loop)
	if err != nil {
		abortBadRequest(c, err)
		return
	}

	select {
	case p.slots <- struct{}{}:
		defer func() { <-p.slots }()
	default:
		p.logger.WarnWithFields("preview limit reached", map[string]interface{}{
			"project_id": c.Param("id"),
			"limit":      cap(p.slots),
		})
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "too many open previews, retry later"})
		return
	}

	newCtx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	project, err := loadOwnedProject(newCtx, c, p.projectLoader)
	if err != nil {
		abortWithError(c, p.logger, err)
		return
	}

	descriptors, errCh := p.preview.Stream(newCtx, inbound.PreviewParams{
		Project: project,
		From:    from,
		FPS:     fps,
		Loop:    loop,
	})

	for descriptor := range descriptors {
		c.SSEvent(previewEventDescriptor, descriptor)
		c.Writer.Flush()
	}

	// the stream reports at most one error and closes errCh right after out
	var streamErr error
	for err := range errCh {
		if streamErr == nil {
			streamErr = err
		}
	}

	if streamErr != nil {
		if domain.IsConfigurationError(streamErr) {
			c.SSEvent(previewEventError, streamErr.Error())
		} else {
			p.logger.ErrorWithFields(streamErr, "error in preview stream", map[string]interface{}{
				"project_id": project.ID,
			})
			c.SSEvent(previewEventError, "internal server error")
		}
		c.Writer.Flush()
		return
	}

	if newCtx.Err() == nil {
		c.SSEvent(previewEventEnd, gin.H{"projectId": project.ID})
		c.Writer.Flush()
	}
}

func (p *previewController) RegisterRoutes(g *gin.Engine) {
	g.GET("/projects/:id/preview", middleware.SSEMiddleware(), p.Preview)
}
