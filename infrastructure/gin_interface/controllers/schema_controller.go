package controllers

import (
	"faceless-timeline/domain"
	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"
	"net/http"
)

type SchemaController interface {
	RenderDescriptorSchema(c *gin.Context)
	Health(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type schemaController struct {
	descriptorSchema *jsonschema.Schema
}

func NewSchemaController() SchemaController {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return &schemaController{
		descriptorSchema: reflector.Reflect(&domain.RenderDescriptor{}),
	}
}

// RenderDescriptorSchema lets renderers outside this service validate the
// descriptors they receive from preview and export.
func (s *schemaController) RenderDescriptorSchema(c *gin.Context) {
	c.JSON(http.StatusOK, s.descriptorSchema)
}

func (s *schemaController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *schemaController) RegisterRoutes(g *gin.Engine) {
	g.GET("/schema/render-descriptor", s.RenderDescriptorSchema)
	g.GET("/health", s.Health)
}
