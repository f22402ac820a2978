package controllers

import (
	"faceless-timeline/application/ports/inbound"
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/infrastructure/gin_interface/dto"
	"github.com/gin-gonic/gin"
	"net/http"
)

type TimelineController interface {
	Render(c *gin.Context)
	Timeline(c *gin.Context)
	ProjectTimeline(c *gin.Context)
	ProjectRender(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type timelineController struct {
	logger        outbound.LoggerPort
	compositor    inbound.TimelineCompositorPort
	projectLoader inbound.ProjectTimelineLoaderPort
	defaultFPS    float64
}

func NewTimelineController(
	logger outbound.LoggerPort,
	compositor inbound.TimelineCompositorPort,
	projectLoader inbound.ProjectTimelineLoaderPort,
	defaultFPS float64,
) TimelineController {
	return &timelineController{
		logger:        logger,
		compositor:    compositor,
		projectLoader: projectLoader,
		defaultFPS:    defaultFPS,
	}
}

func (t *timelineController) Render(c *gin.Context) {
	var req dto.RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	instant, err := newRenderInstant(req.Time, req.Frame)
	if err != nil {
		abortBadRequest(c, err)
		return
	}

	project, err := t.projectLoader.Prepare(c.Request.Context(), req.Project)
	if err != nil {
		abortWithError(c, t.logger, err)
		return
	}

	descriptor, err := instant.render(t.compositor, project, fpsOrDefault(req.FPS, t.defaultFPS))
	if err != nil {
		abortWithError(c, t.logger, err)
		return
	}

	c.JSON(http.StatusOK, descriptor)
}

func (t *timelineController) Timeline(c *gin.Context) {
	var req dto.TimelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	project, err := t.projectLoader.Prepare(c.Request.Context(), req.Project)
	if err != nil {
		abortWithError(c, t.logger, err)
		return
	}

	tl, err := t.compositor.BuildTimeline(project, fpsOrDefault(req.FPS, t.defaultFPS))
	if err != nil {
		abortWithError(c, t.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTimelineResponse(project.ID, tl))
}

func (t *timelineController) ProjectTimeline(c *gin.Context) {
	fps, err := queryFloat(c, "fps", t.defaultFPS)
	if err != nil {
		abortBadRequest(c, err)
		return
	}

	project, err := loadOwnedProject(c.Request.Context(), c, t.projectLoader)
	if err != nil {
		abortWithError(c, t.logger, err)
		return
	}

	tl, err := t.compositor.BuildTimeline(project, fps)
	if err != nil {
		abortWithError(c, t.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTimelineResponse(project.ID, tl))
}

func (t *timelineController) ProjectRender(c *gin.Context) {
	instant, err := parseRenderQuery(c)
	if err != nil {
		abortBadRequest(c, err)
		return
	}
	fps, err := queryFloat(c, "fps", t.defaultFPS)
	if err != nil {
		abortBadRequest(c, err)
		return
	}

	project, err := loadOwnedProject(c.Request.Context(), c, t.projectLoader)
	if err != nil {
		abortWithError(c, t.logger, err)
		return
	}

	descriptor, err := instant.render(t.compositor, project, fps)
	if err != nil {
		abortWithError(c, t.logger, err)
		return
	}

	c.JSON(http.StatusOK, descriptor)
}

func (t *timelineController) RegisterRoutes(g *gin.Engine) {
	g.POST("/render", t.Render)
	g.POST("/timeline", t.Timeline)
	g.GET("/projects/:id/timeline", t.ProjectTimeline)
	g.GET("/projects/:id/render", t.ProjectRender)
}
