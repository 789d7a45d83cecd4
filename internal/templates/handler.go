package templates

import (
	"offer_generator_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler serves the template catalog
type Handler struct {
	catalog *Catalog
}

// NewHandler creates a new template catalog handler
func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// RegisterRoutes registers the catalog routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
}

func (h *Handler) List(c *gin.Context) {
	httpkit.OK(c, gin.H{"items": h.catalog.List()})
}
