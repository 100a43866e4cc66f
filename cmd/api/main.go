package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/workforce-service/internal/api/http"
	"github.com/spec-kit/workforce-service/internal/api/http/handlers"
	"github.com/spec-kit/workforce-service/internal/auth"
	"github.com/spec-kit/workforce-service/internal/authz"
	"github.com/spec-kit/workforce-service/internal/config"
	"github.com/spec-kit/workforce-service/internal/events"
	"github.com/spec-kit/workforce-service/internal/observability"
	"github.com/spec-kit/workforce-service/internal/persistence"
	"github.com/spec-kit/workforce-service/internal/repository"
	"github.com/spec-kit/workforce-service/internal/service"
	"github.com/spec-kit/workforce-service/internal/worker"
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

	redisStore := persistence.NewRedis(cfg.Redis, logger)
	defer redisStore.Close()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	kpiRepo := repository.NewKpiRepository(pool)
	leaveRepo := repository.NewLeaveRequestRepository(pool)
	reviewRepo := repository.NewPerformanceReviewRepository(pool)
	auditRepo := repository.NewAuditLogRepository(pool)

	scope := authz.NewScopePolicy(taskRepo)
	refs := service.NewRecordSource(service.RecordSourceDependencies{
		AccountRepo:    accountRepo,
		DepartmentRepo: departmentRepo,
		ProjectRepo:    projectRepo,
		TaskRepo:       taskRepo,
		KpiRepo:        kpiRepo,
		LeaveRepo:      leaveRepo,
		ReviewRepo:     reviewRepo,
	})
	gate := authz.NewGate(scope, refs)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg, accountRepo, dispatcher)
	accountService := service.NewAccountService(service.AccountDependencies{
		AccountRepo:    accountRepo,
		DepartmentRepo: departmentRepo,
		Gate:           gate,
		Dispatcher:     dispatcher,
		BcryptCost:     cfg.Auth.BcryptCost,
	})
	departmentService := service.NewDepartmentService(departmentRepo, gate, dispatcher)
	projectService := service.NewProjectService(service.ProjectDependencies{
		ProjectRepo: projectRepo,
		TaskRepo:    taskRepo,
		AccountRepo: accountRepo,
		Gate:        gate,
		Dispatcher:  dispatcher,
	})
	taskService := service.NewTaskService(service.TaskDependencies{
		TaskRepo:    taskRepo,
		ProjectRepo: projectRepo,
		AccountRepo: accountRepo,
		Gate:        gate,
		Dispatcher:  dispatcher,
	})
	kpiService := service.NewKpiService(kpiRepo, accountRepo, gate, dispatcher)
	leaveService := service.NewLeaveService(leaveRepo, accountRepo, gate, dispatcher)
	reviewService := service.NewReviewService(reviewRepo, accountRepo, gate, dispatcher)
	auditService := service.NewAuditService(auditRepo, dispatcher, redisStore.Client, gate, logger, cfg.Audit)
	auditService.RegisterHandlers()

	if cfg.Audit.WorkerEnabled {
		auditWorker := worker.NewAuditWorker(redisStore.Client, cfg.Audit.QueueKey, auditRepo, logger)
		auditWorker.Start(ctx)
	}

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), accountRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redisStore, metrics),
		Auth:           handlers.NewAuthHandler(authService, accountService),
		Accounts:       handlers.NewAccountsHandler(accountService),
		Departments:    handlers.NewDepartmentsHandler(departmentService),
		Projects:       handlers.NewProjectsHandler(projectService),
		Tasks:          handlers.NewTasksHandler(taskService),
		Kpis:           handlers.NewKpisHandler(kpiService),
		Leave:          handlers.NewLeaveHandler(leaveService),
		Reviews:        handlers.NewReviewsHandler(reviewService),
		Audit:          handlers.NewAuditHandler(auditService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	cancel()

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
