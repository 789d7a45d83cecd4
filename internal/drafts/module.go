// Package drafts provides the offer editor module: live editor sessions,
// debounced draft auto-save and the draft lifecycle endpoints.
package drafts

import (
	"offer_generator_backend/internal/drafts/cache"
	"offer_generator_backend/internal/drafts/handler"
	"offer_generator_backend/internal/drafts/repository"
	"offer_generator_backend/internal/drafts/service"
	"offer_generator_backend/internal/events"
	apphttp "offer_generator_backend/internal/http"
	"offer_generator_backend/platform/config"
	"offer_generator_backend/platform/logger"
	"offer_generator_backend/platform/phone"
	"offer_generator_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Module represents the drafts domain module
type Module struct {
	handler    *handler.Handler
	service    *service.Service
	repository *repository.Repository
}

// NewModule creates a new drafts module with all dependencies wired.
// rdb may be nil, in which case drafts are kept in the database only.
func NewModule(pool *pgxpool.Pool, rdb *redis.Client, eventBus events.Bus, val *validator.Validator, phones *phone.Normalizer, cfg config.DraftsConfig, log *logger.Logger) *Module {
	repo := repository.New(pool)

	var backup service.BackupStore
	if rdb != nil {
		backup = cache.NewBackupStore(rdb, cfg.GetDraftBackupTTL(), log)
	}

	svc := service.New(repo, backup, cfg.GetAutoSaveDebounce(), log)
	svc.SetEventBus(eventBus)
	h := handler.New(svc, val, phones)

	return &Module{
		handler:    h,
		service:    svc,
		repository: repo,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "drafts"
}

// Service returns the editor service for wiring ports
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the drafts repository for cleanup and retry jobs
func (m *Module) Repository() *repository.Repository {
	return m.repository
}

// SetLogoResolver injects the company logo URL resolver into the handler
func (m *Module) SetLogoResolver(r handler.LogoURLResolver) {
	m.handler.SetLogoResolver(r)
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	editor := ctx.Protected.Group("/editor")
	if ctx.EditorRateLimiter != nil {
		editor.Use(ctx.EditorRateLimiter.RateLimit())
	}
	m.handler.RegisterRoutes(editor)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
