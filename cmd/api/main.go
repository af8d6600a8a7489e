package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/campaign-service/internal/api/http"
	"github.com/spec-kit/campaign-service/internal/api/http/handlers"
	"github.com/spec-kit/campaign-service/internal/auth"
	"github.com/spec-kit/campaign-service/internal/config"
	"github.com/spec-kit/campaign-service/internal/events"
	"github.com/spec-kit/campaign-service/internal/identifier"
	"github.com/spec-kit/campaign-service/internal/messaging"
	"github.com/spec-kit/campaign-service/internal/observability"
	"github.com/spec-kit/campaign-service/internal/persistence"
	"github.com/spec-kit/campaign-service/internal/repository"
	"github.com/spec-kit/campaign-service/internal/service"
	"github.com/spec-kit/campaign-service/internal/worker"
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

	metrics := observability.NewMetrics()

	pool := pg.PoolHandle()
	tx := persistence.NewTransactor(pool)
	adminRepo := repository.NewAdminRepository(pool)
	clientRepo := repository.NewClientRepository(pool)
	employeeRepo := repository.NewEmployeeRepository(pool)
	retailerRepo := repository.NewRetailerRepository(pool)
	candidateRepo := repository.NewCandidateRepository(pool)
	documentRepo := repository.NewDocumentRepository(pool)
	campaignRepo := repository.NewCampaignRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	jobRepo := repository.NewJobRepository(pool)
	applicationRepo := repository.NewApplicationRepository(pool)
	reportRepo := repository.NewReportRepository(pool)
	otpRepo := repository.NewOTPRepository(redis.Client)

	ids, err := identifier.NewGenerator(identifier.NewRedisSequencer(redis.Client), cfg.Snowflake.NodeID)
	if err != nil {
		logger.Fatal("failed to init id generator", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher(logger)
	enqueuer := worker.NewEnqueuer(redis.Client, cfg.Worker.Queue)
	service.NewNotificationService(dispatcher, enqueuer, logger).RegisterHandlers()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		AdminRepo:     adminRepo,
		ClientRepo:    clientRepo,
		EmployeeRepo:  employeeRepo,
		RetailerRepo:  retailerRepo,
		CandidateRepo: candidateRepo,
		OTPRepo:       otpRepo,
		Dispatcher:    dispatcher,
		Tokens:        tokens,
	})
	identityService := service.NewIdentityService(cfg.Auth, service.IdentityDependencies{
		AdminRepo:    adminRepo,
		ClientRepo:   clientRepo,
		RetailerRepo: retailerRepo,
	})
	employeeService := service.NewEmployeeService(cfg.Auth, service.EmployeeDependencies{
		EmployeeRepo: employeeRepo,
		DocumentRepo: documentRepo,
		CampaignRepo: campaignRepo,
		Transactor:   tx,
	})
	retailerService := service.NewRetailerService(cfg.Auth, service.RetailerDependencies{
		RetailerRepo: retailerRepo,
		DocumentRepo: documentRepo,
		CampaignRepo: campaignRepo,
		OTPRepo:      otpRepo,
		IDs:          ids,
		Transactor:   tx,
		Dispatcher:   dispatcher,
	})
	campaignService := service.NewCampaignService(campaignRepo)
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		CampaignRepo: campaignRepo,
		PaymentRepo:  paymentRepo,
		Transactor:   tx,
		Dispatcher:   dispatcher,
	})
	paymentService := service.NewPaymentService(service.PaymentDependencies{
		CampaignRepo: campaignRepo,
		PaymentRepo:  paymentRepo,
		Transactor:   tx,
		Dispatcher:   dispatcher,
	})
	recruitmentService := service.NewRecruitmentService(cfg.Auth, service.RecruitmentDependencies{
		JobRepo:         jobRepo,
		ApplicationRepo: applicationRepo,
		CandidateRepo:   candidateRepo,
		DocumentRepo:    documentRepo,
		Transactor:      tx,
		Dispatcher:      dispatcher,
	})
	reportService := service.NewReportService(cfg.Upload, service.ReportDependencies{
		ReportRepo:   reportRepo,
		EmployeeRepo: employeeRepo,
		CampaignRepo: campaignRepo,
		RetailerRepo: retailerRepo,
		Transactor:   tx,
	})

	var taskServer *worker.Server
	if cfg.Worker.Embedded {
		taskServer = startWorker(cfg, metrics, logger)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Upload.BodyLimit(),
		ErrorHandler: httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Admin:          handlers.NewAdminHandler(identityService, employeeService, retailerService),
		Campaigns:      handlers.NewCampaignHandler(campaignService, assignmentService, paymentService),
		Employees:      handlers.NewEmployeeHandler(employeeService),
		Retailers:      handlers.NewRetailerHandler(retailerService),
		Careers:        handlers.NewCareerHandler(recruitmentService),
		Reports:        handlers.NewReportHandler(reportService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	if taskServer != nil {
		taskServer.Shutdown()
	}
}

// startWorker runs the notification consumer inside the API process.
func startWorker(cfg *config.Config, metrics *observability.Metrics, logger *zap.Logger) *worker.Server {
	mailer, err := messaging.NewMailer(cfg.Notification, logger)
	if err != nil {
		logger.Fatal("failed to init mailer", zap.Error(err))
	}
	processor := worker.NewProcessor(mailer, messaging.NewSMSSender(cfg.Notification, logger), metrics, logger)
	srv := worker.NewServer(cfg.Redis, cfg.Worker, processor, logger)
	if err := srv.Start(); err != nil {
		logger.Fatal("failed to start worker", zap.Error(err))
	}
	logger.Info("embedded worker started", zap.String("queue", cfg.Worker.Queue))
	return srv
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
