package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/spec-kit/campaign-service/internal/config"
	"github.com/spec-kit/campaign-service/internal/messaging"
	"github.com/spec-kit/campaign-service/internal/observability"
)

// Processor holds the task handlers, separated from the asynq server for testing.
type Processor struct {
	mailer  messaging.Mailer
	sms     messaging.SMSSender
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewProcessor constructs a Processor.
func NewProcessor(mailer messaging.Mailer, sms messaging.SMSSender, metrics *observability.Metrics, logger *zap.Logger) *Processor {
	return &Processor{mailer: mailer, sms: sms, metrics: metrics, logger: logger}
}

// Mux registers every task handler.
func (p *Processor) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeEmailSend, p.HandleEmail)
	mux.HandleFunc(TypeSMSSend, p.HandleSMS)
	return mux
}

func (p *Processor) HandleEmail(ctx context.Context, t *asynq.Task) error {
	var payload EmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		p.metrics.RecordTask(t.Type(), false)
		return fmt.Errorf("decode email payload: %v: %w", err, asynq.SkipRetry)
	}
	err := p.mailer.Send(ctx, messaging.Email{To: payload.To, Subject: payload.Subject, HTML: payload.HTML})
	p.metrics.RecordTask(t.Type(), err == nil)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	p.logger.Debug("email delivered", zap.String("to", payload.To))
	return nil
}

func (p *Processor) HandleSMS(ctx context.Context, t *asynq.Task) error {
	var payload SMSPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		p.metrics.RecordTask(t.Type(), false)
		return fmt.Errorf("decode sms payload: %v: %w", err, asynq.SkipRetry)
	}
	err := p.sms.Send(ctx, payload.To, payload.Body)
	p.metrics.RecordTask(t.Type(), err == nil)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	return nil
}

// Server wraps the asynq server consuming notification tasks.
type Server struct {
	srv       *asynq.Server
	processor *Processor
}

// NewServer builds an asynq server bound to the configured queue.
func NewServer(redisCfg config.RedisConfig, workerCfg config.WorkerConfig, processor *Processor, logger *zap.Logger) *Server {
	concurrency := workerCfg.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     redisCfg.Addr,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		},
		asynq.Config{
			Concurrency:    concurrency,
			RetryDelayFunc: asynq.DefaultRetryDelayFunc,
			Queues: map[string]int{
				workerCfg.Queue: 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Warn("notification task failed", zap.String("task_type", task.Type()), zap.Error(err))
			}),
		},
	)
	return &Server{srv: srv, processor: processor}
}

// Start begins processing in background goroutines.
func (s *Server) Start() error {
	return s.srv.Start(s.processor.Mux())
}

// Shutdown waits for in-flight tasks and stops the server.
func (s *Server) Shutdown() {
	s.srv.Shutdown()
}
