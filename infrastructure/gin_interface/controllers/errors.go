package controllers

import (
	"errors"
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/domain"
	"faceless-timeline/infrastructure/gin_interface/dto"
	"github.com/gin-gonic/gin"
	"net/http"
)

// abortWithError maps domain errors to HTTP statuses. Unexpected errors are
// logged and hidden behind a generic message.
func abortWithError(c *gin.Context, logger outbound.LoggerPort, err error) {
	var cfgErr *domain.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: cfgErr.Error()})
	case errors.Is(err, domain.ErrNoSegments):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrProjectNotFound), errors.Is(err, domain.ErrExportNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	default:
		logger.ErrorWithFields(err, "request failed", map[string]interface{}{
			"path":   c.FullPath(),
			"method": c.Request.Method,
		})
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}

func abortBadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
}
