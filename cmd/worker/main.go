package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/spec-kit/campaign-service/internal/config"
	"github.com/spec-kit/campaign-service/internal/messaging"
	"github.com/spec-kit/campaign-service/internal/observability"
	"github.com/spec-kit/campaign-service/internal/worker"
)

// Standalone notification worker for deployments that set WORKER_EMBEDDED=false on the API.
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

	mailer, err := messaging.NewMailer(cfg.Notification, logger)
	if err != nil {
		logger.Fatal("failed to init mailer", zap.Error(err))
	}
	sms := messaging.NewSMSSender(cfg.Notification, logger)

	processor := worker.NewProcessor(mailer, sms, observability.NewMetrics(), logger)
	srv := worker.NewServer(cfg.Redis, cfg.Worker, processor, logger)
	if err := srv.Start(); err != nil {
		logger.Fatal("failed to start worker", zap.Error(err))
	}
	logger.Info("worker started",
		zap.String("queue", cfg.Worker.Queue),
		zap.Int("concurrency", cfg.Worker.Concurrency),
		zap.Bool("smtp", cfg.Notification.SMTPEnabled()),
		zap.Bool("sms", cfg.Notification.SMSEnabled()),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))

	srv.Shutdown()
}
