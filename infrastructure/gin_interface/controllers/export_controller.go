package controllers

import (
	"faceless-timeline/application/ports/inbound"
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/infrastructure/gin_interface/dto"
	"faceless-timeline/middleware"
	"github.com/gin-gonic/gin"
	"io"
	"net/http"
)

type ExportController interface {
	CreateExport(c *gin.Context)
	GetExport(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type exportController struct {
	logger        outbound.LoggerPort
	scheduler     inbound.ExportSchedulerPort
	projectLoader inbound.ProjectTimelineLoaderPort
	defaultFPS    float64
}

func NewExportController(
	logger outbound.LoggerPort,
	scheduler inbound.ExportSchedulerPort,
	projectLoader inbound.ProjectTimelineLoaderPort,
	defaultFPS float64,
) ExportController {
	return &exportController{
		logger:        logger,
		scheduler:     scheduler,
		projectLoader: projectLoader,
		defaultFPS:    defaultFPS,
	}
}

// CreateExport queues a frame export. The project is loaded first so unknown
// or foreign projects fail fast instead of inside the worker.
func (e *exportController) CreateExport(c *gin.Context) {
	var req dto.CreateExportRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		abortBadRequest(c, err)
		return
	}

	project, err := loadOwnedProject(c.Request.Context(), c, e.projectLoader)
	if err != nil {
		abortWithError(c, e.logger, err)
		return
	}

	userID := c.GetString(middleware.ContextUserIDKey)
	if userID == "" {
		userID = project.UserID
	}

	state, err := e.scheduler.Schedule(c.Request.Context(), inbound.ScheduleExportParams{
		ProjectID: project.ID,
		UserID:    userID,
		FPS:       fpsOrDefault(req.FPS, e.defaultFPS),
	})
	if err != nil {
		abortWithError(c, e.logger, err)
		return
	}

	c.JSON(http.StatusAccepted, state)
}

func (e *exportController) GetExport(c *gin.Context) {
	state, err := e.scheduler.Status(c.Request.Context(), c.Param("exportId"))
	if err != nil {
		abortWithError(c, e.logger, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (e *exportController) RegisterRoutes(g *gin.Engine) {
	g.POST("/projects/:id/exports", e.CreateExport)
	g.GET("/exports/:exportId", e.GetExport)
}
