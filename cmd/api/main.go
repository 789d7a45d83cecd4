package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"offer_generator_backend/internal/adapters"
	"offer_generator_backend/internal/adapters/storage"
	"offer_generator_backend/internal/catalog"
	"offer_generator_backend/internal/drafts"
	"offer_generator_backend/internal/events"
	apphttp "offer_generator_backend/internal/http"
	"offer_generator_backend/internal/http/router"
	"offer_generator_backend/internal/notification"
	"offer_generator_backend/internal/offers"
	"offer_generator_backend/internal/scheduler"
	"offer_generator_backend/internal/templates"
	"offer_generator_backend/migrations"
	"offer_generator_backend/platform/config"
	"offer_generator_backend/platform/db"
	"offer_generator_backend/platform/logger"
	"offer_generator_backend/platform/phone"
	"offer_generator_backend/platform/redisclient"
	"offer_generator_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	rdb := initRedis(ctx, cfg, log)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}
	defer eventBus.Wait()

	retrier, closeScheduler := initDeleteRetrier(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	logos := initLogoPresigner(ctx, cfg, log)

	// Shared validator and phone normalizer for dependency injection
	val := validator.New()
	phones := phone.NewNormalizer(cfg.GetPhoneDefaultRegion())

	// ========================================================================
	// Domain Modules
	// ========================================================================

	offersModule := offers.NewModule(pool, val, log)

	templatesModule, err := templates.NewModule(cfg, log)
	if err != nil {
		log.Error("failed to load offer templates", "error", err)
		panic("failed to load offer templates: " + err.Error())
	}

	draftsModule := drafts.NewModule(pool, rdb, eventBus, val, phones, cfg, log)
	defer draftsModule.Service().Shutdown()
	go draftsModule.Service().RunIdleSweep(ctx, cfg.GetEditorIdleTTL())

	catalogModule := catalog.NewModule(pool, val)

	modules := []apphttp.Module{draftsModule, offersModule, templatesModule, catalogModule}

	if rdb != nil {
		notificationModule := notification.New(rdb, log)
		notificationModule.RegisterHandlers(eventBus)
		defer notificationModule.Close()
		modules = append(modules, notificationModule)
	}

	// ========================================================================
	// Cross-module wiring (anti-corruption adapters)
	// ========================================================================

	// Wire offer store: drafts → offers (finalize, load saved offer)
	offerStore := adapters.NewDraftsOfferStore(offersModule.Service())
	draftsModule.Service().SetOfferSaver(offerStore)
	draftsModule.Service().SetOfferReader(offerStore)

	draftsModule.Service().SetTemplateCatalog(templatesModule.Catalog())
	draftsModule.Service().SetNotifier(adapters.NewEditorNotifier(eventBus))
	if retrier != nil {
		draftsModule.Service().SetDeleteRetrier(retrier)
	}

	if logos != nil {
		draftsModule.SetLogoResolver(logos)
		offersModule.SetLogoResolver(logos)
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules:  modules,
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
}

// initRedis connects the shared Redis client used for draft backups and the
// notice inbox. Without REDIS_URL both are disabled.
func initRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; draft backups and notices disabled")
		return nil
	}

	var rdb *redis.Client
	if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
		c, err := redisclient.New(ctx, cfg)
		if err != nil {
			return err
		}
		rdb = c
		return nil
	}); err != nil {
		log.Error("failed to connect to redis; draft backups and notices disabled", "error", err)
		return nil
	}
	return rdb
}

func initDeleteRetrier(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; draft delete retries disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

// initLogoPresigner returns nil when MinIO is not configured; responses then
// carry no logo URL.
func initLogoPresigner(ctx context.Context, cfg config.MinIOConfig, log *logger.Logger) *adapters.LogoPresigner {
	if !cfg.IsMinIOEnabled() {
		log.Warn("MINIO_ENDPOINT not configured; company logo URLs disabled")
		return nil
	}

	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}

	bucket := cfg.GetMinioBucketCompanyLogos()
	if err := withRetry(ctx, log, "ensure company-logos bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
		panic("failed to ensure storage bucket exists: " + err.Error())
	}

	return adapters.NewLogoPresigner(storageSvc, bucket, log)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}
