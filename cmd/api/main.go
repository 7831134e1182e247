package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/scamwatch/blacklist-service/internal/api/http"
	"github.com/scamwatch/blacklist-service/internal/api/http/handlers"
	"github.com/scamwatch/blacklist-service/internal/auth"
	"github.com/scamwatch/blacklist-service/internal/config"
	"github.com/scamwatch/blacklist-service/internal/events"
	"github.com/scamwatch/blacklist-service/internal/observability"
	"github.com/scamwatch/blacklist-service/internal/persistence"
	"github.com/scamwatch/blacklist-service/internal/repository"
	"github.com/scamwatch/blacklist-service/internal/service"
	"github.com/scamwatch/blacklist-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		reportRepo repository.ReportRepository
		appealRepo repository.AppealRepository
		userRepo   repository.UserRepository
		unitOfWork repository.UnitOfWork
	)
	if pool := pg.PoolHandle(); pool != nil {
		reportRepo = repository.NewReportRepository(pool)
		appealRepo = repository.NewAppealRepository(pool)
		userRepo = repository.NewUserRepository(pool)
		unitOfWork = repository.NewUnitOfWork(pool)
	} else {
		store := repository.NewMemoryStore()
		reportRepo = store.Reports()
		appealRepo = store.Appeals()
		userRepo = store.Users()
		unitOfWork = store.UnitOfWork()
	}

	metrics, registry := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger, metrics)

	cache := service.NewCounterCache(redis)

	reportService := service.NewReportService(service.ReportDependencies{
		ReportRepo: reportRepo,
		Cache:      cache,
		Dispatcher: dispatcher,
	})
	appealService := service.NewAppealService(service.AppealDependencies{
		AppealRepo: appealRepo,
		Cache:      cache,
		Dispatcher: dispatcher,
	})
	moderationService := service.NewModerationService(service.ModerationDependencies{
		UnitOfWork: unitOfWork,
		Resolution: cfg.Moderation.ResolutionPolicy(),
		Cache:      cache,
		Dispatcher: dispatcher,
	})
	authService := service.NewAuthService(*cfg, userRepo)
	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Reports:        handlers.NewReportsHandler(reportService),
		Appeals:        handlers.NewAppealsHandler(appealService, moderationService),
		AuthMiddleware: authMiddleware,
		Registry:       registry,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
