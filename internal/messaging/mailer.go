package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/spec-kit/campaign-service/internal/config"
)

// Email is an outbound HTML message.
type Email struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers email.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// SMTPMailer sends through an SMTP relay.
type SMTPMailer struct {
	from   string
	client *mail.Client
}

// NewSMTPMailer builds a relay client from notification settings.
func NewSMTPMailer(cfg config.NotificationConfig) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}
	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPMailer{from: cfg.EmailFrom, client: client}, nil
}

// Send dials the relay and delivers one message.
func (m *SMTPMailer) Send(ctx context.Context, email Email) error {
	if email.To == "" {
		return errors.New("email recipient required")
	}
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(email.To); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextHTML, email.HTML)
	return m.client.DialAndSendWithContext(ctx, msg)
}

// LogMailer only logs messages; used when no SMTP host is configured.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer constructs a LogMailer.
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, email Email) error {
	m.logger.Info("email suppressed: smtp not configured",
		zap.String("to", email.To),
		zap.String("subject", email.Subject))
	return nil
}

// NewMailer picks SMTP delivery when configured.
func NewMailer(cfg config.NotificationConfig, logger *zap.Logger) (Mailer, error) {
	if !cfg.SMTPEnabled() {
		return NewLogMailer(logger), nil
	}
	return NewSMTPMailer(cfg)
}
