package templates

import (
	apphttp "offer_generator_backend/internal/http"
	"offer_generator_backend/platform/config"
	"offer_generator_backend/platform/logger"
)

// Module represents the template catalog module
type Module struct {
	catalog *Catalog
	handler *Handler
}

// NewModule loads the catalog named by cfg and builds the module.
func NewModule(cfg config.TemplatesConfig, log *logger.Logger) (*Module, error) {
	catalog, err := LoadFile(cfg.GetOfferTemplatesFile())
	if err != nil {
		return nil, err
	}
	log.Info("offer templates loaded", "file", cfg.GetOfferTemplatesFile(), "count", len(catalog.summaries))
	return &Module{catalog: catalog, handler: NewHandler(catalog)}, nil
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "templates"
}

// Catalog returns the loaded catalog
func (m *Module) Catalog() *Catalog {
	return m.catalog
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/templates"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
