package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/early-access-service/internal/api/http"
	"github.com/spec-kit/early-access-service/internal/api/http/handlers"
	"github.com/spec-kit/early-access-service/internal/config"
	"github.com/spec-kit/early-access-service/internal/events"
	"github.com/spec-kit/early-access-service/internal/observability"
	"github.com/spec-kit/early-access-service/internal/persistence"
	"github.com/spec-kit/early-access-service/internal/repository"
	"github.com/spec-kit/early-access-service/internal/service"
	"github.com/spec-kit/early-access-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Name)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Database.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	submissionRepo := repository.NewSubmissionRepository(pg.PoolHandle())
	dispatcher := events.NewInMemoryDispatcher()

	subscriptionService := service.NewSubscriptionService(service.SubscriptionDependencies{
		SubmissionRepo: submissionRepo,
		Dispatcher:     dispatcher,
		Redis:          redis,
		Logger:         logger,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Subscribe: handlers.NewSubscribeHandler(subscriptionService, logger),
		Stats:     handlers.NewStatsHandler(subscriptionService, metrics),
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
