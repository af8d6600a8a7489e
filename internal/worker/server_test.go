package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/campaign-service/internal/messaging"
	"github.com/spec-kit/campaign-service/internal/observability"
)

type stubMailer struct {
	sent []messaging.Email
	err  error
}

func (m *stubMailer) Send(_ context.Context, e messaging.Email) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, e)
	return nil
}

type stubSMS struct {
	to, body string
}

func (s *stubSMS) Send(_ context.Context, to, body string) error {
	s.to, s.body = to, body
	return nil
}

func TestHandleEmailDelivers(t *testing.T) {
	mailer := &stubMailer{}
	metrics := observability.NewMetrics()
	p := NewProcessor(mailer, &stubSMS{}, metrics, zap.NewNop())

	task, err := NewEmailTask("notifications", EmailPayload{To: "a@example.com", Subject: "Hi", HTML: "<p>x</p>"})
	require.NoError(t, err)
	require.NoError(t, p.HandleEmail(context.Background(), task))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "a@example.com", mailer.sent[0].To)
	assert.Equal(t, int64(1), metrics.Snapshot().Tasks[TypeEmailSend+"|ok"])
}

func TestHandleEmailFailureRetries(t *testing.T) {
	mailer := &stubMailer{err: errors.New("relay down")}
	metrics := observability.NewMetrics()
	p := NewProcessor(mailer, &stubSMS{}, metrics, zap.NewNop())

	task, err := NewEmailTask("notifications", EmailPayload{To: "a@example.com"})
	require.NoError(t, err)
	err = p.HandleEmail(context.Background(), task)
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
	assert.Equal(t, int64(1), metrics.Snapshot().Tasks[TypeEmailSend+"|failed"])
}

func TestHandleMalformedPayloadSkipsRetry(t *testing.T) {
	p := NewProcessor(&stubMailer{}, &stubSMS{}, nil, zap.NewNop())
	err := p.HandleSMS(context.Background(), asynq.NewTask(TypeSMSSend, []byte("{")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleSMS(t *testing.T) {
	sms := &stubSMS{}
	p := NewProcessor(&stubMailer{}, sms, nil, zap.NewNop())
	body, _ := json.Marshal(SMSPayload{To: "+919999999999", Body: "code"})
	require.NoError(t, p.HandleSMS(context.Background(), asynq.NewTask(TypeSMSSend, body)))
	assert.Equal(t, "+919999999999", sms.to)
	assert.Equal(t, "code", sms.body)
}
