package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/jobboard-service/internal/access"
	httptransport "github.com/spec-kit/jobboard-service/internal/api/http"
	"github.com/spec-kit/jobboard-service/internal/api/http/handlers"
	"github.com/spec-kit/jobboard-service/internal/config"
	"github.com/spec-kit/jobboard-service/internal/events"
	"github.com/spec-kit/jobboard-service/internal/identity"
	"github.com/spec-kit/jobboard-service/internal/observability"
	"github.com/spec-kit/jobboard-service/internal/persistence"
	"github.com/spec-kit/jobboard-service/internal/repository"
	"github.com/spec-kit/jobboard-service/internal/service"
	"github.com/spec-kit/jobboard-service/internal/worker"
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	companyRepo := repository.NewCompanyRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)

	sessionStore := identity.NewRedisSessionStore(redis.Client)
	sessions := identity.NewSessionManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL(), sessionStore)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	accountService := service.NewAccountService(*cfg, service.AccountDependencies{
		AccountRepo: accountRepo,
		ProfileRepo: profileRepo,
		CompanyRepo: companyRepo,
		Sessions:    sessions,
		Dispatcher:  dispatcher,
	})
	onboardingService := service.NewOnboardingService(profileRepo, companyRepo, dispatcher)
	adminService := service.NewAdminService(profileRepo, companyRepo, auditRepo, sessions, dispatcher)

	metrics := observability.NewMetrics()
	policy := access.NewPolicy(cfg.Access)
	roleRouter := access.NewRouter(policy)
	gate := access.NewGate(policy, sessions, profileRepo, cfg.Auth.CookieName, logger, metrics)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:     handlers.NewAuthHandler(accountService, roleRouter, cfg.Auth.CookieName),
		Profile:  handlers.NewProfileHandler(onboardingService),
		Employer: handlers.NewEmployerHandler(onboardingService),
		Admin:    handlers.NewAdminHandler(adminService),
		Pages:    handlers.NewPagesHandler(),
		Gate:     gate,
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
