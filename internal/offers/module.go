// Package offers provides the saved offers module: finalized offers, their
// numbering and the reference tables filled from them.
package offers

import (
	apphttp "offer_generator_backend/internal/http"
	"offer_generator_backend/internal/offers/handler"
	"offer_generator_backend/internal/offers/repository"
	"offer_generator_backend/internal/offers/service"
	"offer_generator_backend/platform/logger"
	"offer_generator_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the offers domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new offers module with all dependencies wired
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "offers"
}

// Service returns the offers service for use by adapters
func (m *Module) Service() *service.Service {
	return m.service
}

// SetLogoResolver injects the company logo URL resolver into the handler
func (m *Module) SetLogoResolver(r handler.LogoURLResolver) {
	m.handler.SetLogoResolver(r)
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/offers"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
