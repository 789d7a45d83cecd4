// Package catalog serves the products and clients remembered from finalized
// offers as editor autocomplete suggestions.
package catalog

import (
	"offer_generator_backend/internal/catalog/handler"
	"offer_generator_backend/internal/catalog/repository"
	"offer_generator_backend/internal/catalog/service"
	apphttp "offer_generator_backend/internal/http"
	"offer_generator_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the catalog module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	svc := service.New(repository.New(pool))
	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/catalog/products/search", m.handler.SearchProducts)
	ctx.Protected.GET("/catalog/clients/search", m.handler.SearchClients)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
