// Package main is the entry point for the UniGuide guidance server.
//
// The service walks a student through the university application journey:
// profile building, counselling, discovery and shortlisting, locking a
// final choice, and working the application checklist.
//
// The architecture follows Clean Architecture and DDD:
// - Domain: pure journey logic with no external dependencies
// - Application: use case orchestration (Commands/Queries)
// - Infrastructure: postgres repositories, redis caches, event bus
// - Interface: REST API handlers
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/uniguide-hub/uniguide-server/config"
	"github.com/uniguide-hub/uniguide-server/internal/application/command"
	"github.com/uniguide-hub/uniguide-server/internal/application/eventhandler"
	"github.com/uniguide-hub/uniguide-server/internal/application/query"
	"github.com/uniguide-hub/uniguide-server/internal/infrastructure/messaging"
	"github.com/uniguide-hub/uniguide-server/internal/infrastructure/persistence/postgres"
	"github.com/uniguide-hub/uniguide-server/internal/infrastructure/persistence/redis"
	httpserver "github.com/uniguide-hub/uniguide-server/internal/interface/http"
	"github.com/uniguide-hub/uniguide-server/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. Configuration
	// ─────────────────────────────────────────────────────────────────────────

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. Logging
	// ─────────────────────────────────────────────────────────────────────────
	logOpts := logger.DefaultOptions()
	logOpts.Level = logger.ParseLevel(cfg.Observability.LogLevel)
	if cfg.App.Debug {
		logOpts.Level = logger.LevelDebug
	}
	log := logger.New(logOpts)

	log.Info("starting UniGuide server",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
		logger.Bool("debug", cfg.App.Debug),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. PostgreSQL
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to database")
	var dbConn *postgres.Connection
	if cfg.Database.URL != "" {
		dbConn, err = postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
	} else {
		pgCfg := postgres.DefaultConfig()
		pgCfg.Host = cfg.Database.Host
		pgCfg.Port = cfg.Database.Port
		pgCfg.User = cfg.Database.User
		pgCfg.Password = cfg.Database.Password
		pgCfg.Database = cfg.Database.Name
		pgCfg.SSLMode = cfg.Database.SSLMode
		pgCfg.MaxConns = int32(cfg.Database.MaxConns)
		pgCfg.MinConns = int32(cfg.Database.MinConns)
		pgCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime
		pgCfg.MaxConnIdleTime = cfg.Database.ConnMaxIdleTime
		pgCfg.ConnectTimeout = cfg.Database.ConnectTimeout
		dbConn, err = postgres.NewConnection(ctx, pgCfg)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("closing database connection")
		dbConn.Close()
	}()

	if err := dbConn.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	log.Info("database connection established")

	// ─────────────────────────────────────────────────────────────────────────
	// 4. Migrations
	// ─────────────────────────────────────────────────────────────────────────
	if cfg.Database.RunMigrations {
		log.Info("running database migrations")
		migrator := postgres.NewMigrator(dbConn)
		if err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("migrations completed")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. Redis (optional)
	// ─────────────────────────────────────────────────────────────────────────
	var cache *redis.Cache
	var dashboardCache query.DashboardCache
	var catalogCache query.CatalogCache

	if !cfg.Redis.Disabled {
		log.Info("connecting to Redis")
		redisCfg := redis.DefaultConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		redisCfg.PoolSize = cfg.Redis.PoolSize
		redisCfg.MinIdleConns = cfg.Redis.MinIdleConns
		redisCfg.DialTimeout = cfg.Redis.DialTimeout
		redisCfg.ReadTimeout = cfg.Redis.ReadTimeout
		redisCfg.WriteTimeout = cfg.Redis.WriteTimeout

		cache, err = redis.NewCache(redisCfg)
		if err != nil {
			// Reads fall back to postgres when the cache is down.
			log.Warn("failed to connect to Redis, caching disabled", logger.Err(err))
			cache = nil
		} else {
			defer cache.Close()
			dashboardCache = redis.NewDashboardCache(cache)
			catalogCache = redis.NewCatalogCache(cache)
			log.Info("Redis connection established")
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. Repositories
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing repositories")
	accountRepo := postgres.NewAccountRepository(dbConn)
	profileRepo := postgres.NewProfileRepository(dbConn)
	progressRepo := postgres.NewProgressRepository(dbConn)
	shortlistRepo := postgres.NewShortlistRepository(dbConn)
	catalogRepo := postgres.NewCatalogRepository(dbConn)
	checklistRepo := postgres.NewChecklistRepository(dbConn)

	// ─────────────────────────────────────────────────────────────────────────
	// 7. Event bus & subscribers
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing event bus")
	eventBus := messaging.NewInMemoryEventBus(log)
	defer func() {
		log.Info("closing event bus")
		eventBus.Close()
	}()

	if dashboardCache != nil {
		invalidator := eventhandler.NewDashboardInvalidator(dashboardCache, log)
		if err := invalidator.Register(eventBus); err != nil {
			return fmt.Errorf("failed to register cache invalidator: %w", err)
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 8. Application layer
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing application layer")

	deps := httpserver.Dependencies{
		RegisterStudent:      command.NewRegisterStudentHandler(accountRepo, eventBus),
		UpdateProfileSection: command.NewUpdateProfileSectionHandler(profileRepo, eventBus),
		CompleteOnboarding:   command.NewCompleteOnboardingHandler(progressRepo, eventBus),
		CompleteCounsellor:   command.NewCompleteCounsellorHandler(progressRepo, eventBus),
		AddToShortlist:       command.NewAddToShortlistHandler(shortlistRepo, progressRepo, eventBus),
		RemoveFromShortlist:  command.NewRemoveFromShortlistHandler(shortlistRepo, eventBus),
		LockUniversity:       command.NewLockUniversityHandler(shortlistRepo, progressRepo, eventBus),
		UnlockUniversity:     command.NewUnlockUniversityHandler(shortlistRepo, progressRepo, eventBus),
		AddCustomTask:        command.NewAddCustomTaskHandler(profileRepo),
		SetTaskDone:          command.NewSetTaskDoneHandler(profileRepo),
		UpdateChecklistItem:  command.NewUpdateChecklistItemHandler(checklistRepo),

		GetDashboard: query.NewGetDashboardHandler(profileRepo, progressRepo, shortlistRepo, dashboardCache),
		GetStrength:  query.NewGetStrengthHandler(profileRepo),
		GetMatches:   query.NewGetMatchesHandler(profileRepo, progressRepo, catalogRepo, catalogCache),
		GetShortlist: query.NewGetShortlistHandler(shortlistRepo),
		GetProgress:  query.NewGetProgressHandler(progressRepo),
		GetChecklist: query.NewGetChecklistHandler(progressRepo, shortlistRepo, checklistRepo),

		Logger:        log,
		HealthChecker: buildHealthChecker(dbConn, cache),
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 9. HTTP server
	// ─────────────────────────────────────────────────────────────────────────
	httpConfig := httpserver.DefaultConfig()
	httpConfig.Host = cfg.HTTP.Host
	httpConfig.Port = cfg.HTTP.Port
	httpConfig.ReadTimeout = cfg.HTTP.ReadTimeout
	httpConfig.WriteTimeout = cfg.HTTP.WriteTimeout
	httpConfig.IdleTimeout = cfg.HTTP.IdleTimeout
	httpConfig.EnableCORS = cfg.HTTP.EnableCORS
	httpConfig.AllowedOrigins = cfg.HTTP.AllowedOrigins
	httpConfig.RateLimitPerMinute = cfg.HTTP.RateLimitPerMinute
	httpConfig.StudentIDHeader = cfg.HTTP.StudentIDHeader

	server := httpserver.NewServer(httpConfig, deps)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	log.Info("UniGuide server is running", logger.String("address", server.Address()))

	// ─────────────────────────────────────────────────────────────────────────
	// 10. Graceful shutdown
	// ─────────────────────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", logger.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("service error", logger.Err(err))
		return err
	case <-ctx.Done():
	}

	log.Info("starting graceful shutdown", logger.Duration("timeout", cfg.App.ShutdownTimeout))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop HTTP server gracefully", logger.Err(err))
		return err
	}

	log.Info("shutdown complete")
	return nil
}

// buildHealthChecker wires the probe endpoints to the live connections.
// Postgres gates readiness; Redis only degrades the reported status.
func buildHealthChecker(db *postgres.Connection, cache *redis.Cache) httpserver.HealthChecker {
	probes := map[string]func(ctx context.Context) error{
		"postgres": db.Ping,
	}
	if cache != nil {
		probes["redis"] = cache.Ping
	}
	return httpserver.NewProbeChecker(probes, "postgres")
}
