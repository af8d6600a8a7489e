package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/campaign-service/internal/events"
	"github.com/spec-kit/campaign-service/internal/messaging"
	"github.com/spec-kit/campaign-service/internal/worker"
)

// TaskEnqueuer hands notification work to the background queue.
type TaskEnqueuer interface {
	EnqueueEmail(ctx context.Context, p worker.EmailPayload) error
	EnqueueSMS(ctx context.Context, p worker.SMSPayload) error
}

// NotificationService turns domain events into queued emails and SMS.
// Delivery problems are logged and never reach the operation that raised the event.
type NotificationService struct {
	dispatcher events.Dispatcher
	enqueuer   TaskEnqueuer
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, enqueuer TaskEnqueuer, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		enqueuer:   enqueuer,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventApplicationStatusChanged, n.handleApplicationStatusChanged)
	n.dispatcher.Subscribe(events.EventRetailerOTPRequested, n.handleRetailerOTPRequested)
	n.dispatcher.Subscribe(events.EventAdminPasswordReset, n.handleAdminPasswordReset)
	n.dispatcher.Subscribe(events.EventCampaignAssigned, n.logEvent)
	n.dispatcher.Subscribe(events.EventAssignmentStatusChanged, n.logEvent)
	n.dispatcher.Subscribe(events.EventPaymentRecorded, n.logEvent)
}

func (n *NotificationService) handleApplicationStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ApplicationStatusChangedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	if payload.CandidateEmail == "" {
		return nil
	}
	email, err := messaging.RenderApplicationUpdate(payload.CandidateEmail, messaging.ApplicationUpdate{
		CandidateName: payload.CandidateName,
		JobTitle:      payload.JobTitle,
		Status:        string(payload.Status),
		ShowRound:     payload.RoundChanged && payload.CurrentRound > 0,
		CurrentRound:  payload.CurrentRound,
		TotalRounds:   payload.TotalRounds,
	})
	if err != nil {
		return err
	}
	n.enqueueEmail(ctx, event, email)
	return nil
}

func (n *NotificationService) handleRetailerOTPRequested(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.RetailerOTPRequestedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	err := n.enqueuer.EnqueueSMS(ctx, worker.SMSPayload{
		To:   payload.Phone,
		Body: messaging.OTPMessage(payload.Code, payload.TTL),
	})
	if err != nil {
		n.logger.Warn("enqueue sms failed", zap.String("event_id", event.ID), zap.Error(err))
	}
	return nil
}

func (n *NotificationService) handleAdminPasswordReset(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AdminPasswordResetPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	email, err := messaging.RenderPasswordReset(payload.Email, payload.Name, payload.Code, payload.TTL)
	if err != nil {
		return err
	}
	n.enqueueEmail(ctx, event, email)
	return nil
}

func (n *NotificationService) enqueueEmail(ctx context.Context, event events.Event, email messaging.Email) {
	err := n.enqueuer.EnqueueEmail(ctx, worker.EmailPayload{To: email.To, Subject: email.Subject, HTML: email.HTML})
	if err != nil {
		n.logger.Warn("enqueue email failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}

func (n *NotificationService) logEvent(_ context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("actor_id", event.Actor.ID),
		zap.Any("payload", event.Payload))
	return nil
}
