package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/account-console/internal/api/http"
	"github.com/spec-kit/account-console/internal/api/http/handlers"
	"github.com/spec-kit/account-console/internal/config"
	"github.com/spec-kit/account-console/internal/events"
	"github.com/spec-kit/account-console/internal/observability"
	"github.com/spec-kit/account-console/internal/persistence"
	"github.com/spec-kit/account-console/internal/remote"
	"github.com/spec-kit/account-console/internal/repository"
	"github.com/spec-kit/account-console/internal/service"
	"github.com/spec-kit/account-console/internal/store"
	"github.com/spec-kit/account-console/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
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

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var auditRepo repository.ToggleAuditRepository
	if pg.Enabled() {
		auditRepo = repository.NewToggleAuditRepository(pg.PoolHandle())
	}
	snapshotCache := repository.NewRedisSnapshotCache(redis.Client, cfg.Redis.SnapshotTTL())

	accountsClient, err := remote.NewClient(cfg.Accounts.BaseURL, cfg.Accounts.Timeout())
	if err != nil {
		logger.Fatal("invalid accounts api", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	auditService := service.NewAuditService(dispatcher, auditRepo, logger)
	worker.StartAuditWorker(auditService)

	accountService := service.NewAccountService(*cfg, service.AccountDependencies{
		Remote:     accountsClient,
		Store:      store.NewAccountStore(),
		Cache:      snapshotCache,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})

	app := fiber.New(fiber.Config{AppName: cfg.App.Name, DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, accountsClient, pg, redis),
		Metrics:     handlers.NewMetricsHandler(metrics),
		Accounts:    handlers.NewAccountsHandler(accountService),
		AccountsAPI: handlers.NewAccountsAPIHandler(accountService, auditService),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("accounts_api", cfg.Accounts.BaseURL))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("fiber shutdown", zap.Error(err))
	}
	accountService.Wait()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
