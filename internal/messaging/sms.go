package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/spec-kit/campaign-service/internal/config"
)

// SMSSender delivers text messages.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// TwilioSender sends SMS through the Twilio REST API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSender builds a sender from notification settings.
func NewTwilioSender(cfg config.NotificationConfig) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	return &TwilioSender{client: client, from: cfg.TwilioFromNumber}
}

// Send posts a single message. The Twilio client has no context support.
func (s *TwilioSender) Send(ctx context.Context, to, body string) error {
	if to == "" {
		return errors.New("sms recipient required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)
	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio create message: %w", err)
	}
	return nil
}

// LogSender only logs messages; used when Twilio credentials are absent.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender constructs a LogSender.
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, to, _ string) error {
	s.logger.Info("sms suppressed: twilio not configured", zap.String("to", to))
	return nil
}

// NewSMSSender picks Twilio when credentials are present.
func NewSMSSender(cfg config.NotificationConfig, logger *zap.Logger) SMSSender {
	if !cfg.SMSEnabled() {
		return NewLogSender(logger)
	}
	return NewTwilioSender(cfg)
}
