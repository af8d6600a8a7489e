package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/campaign-service/internal/config"
)

func TestRenderApplicationUpdate(t *testing.T) {
	email, err := RenderApplicationUpdate("cand@example.com", ApplicationUpdate{
		CandidateName: "Asha <script>",
		JobTitle:      "Field Executive",
		Status:        "Shortlisted",
		ShowRound:     true,
		CurrentRound:  2,
		TotalRounds:   3,
	})
	require.NoError(t, err)
	assert.Equal(t, "cand@example.com", email.To)
	assert.Equal(t, "Application Update for Field Executive", email.Subject)
	assert.Contains(t, email.HTML, "2 / 3")
	assert.NotContains(t, email.HTML, "<script>")
}

func TestRenderPasswordReset(t *testing.T) {
	email, err := RenderPasswordReset("a@example.com", "", "123456", 10*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, email.HTML, "Hi Admin")
	assert.Contains(t, email.HTML, "123456")
	assert.Contains(t, email.HTML, "10 minutes")
}

func TestFallbackSenders(t *testing.T) {
	logger := zap.NewNop()
	mailer, err := NewMailer(config.NotificationConfig{}, logger)
	require.NoError(t, err)
	assert.IsType(t, &LogMailer{}, mailer)
	assert.NoError(t, mailer.Send(context.Background(), Email{To: "x@example.com"}))

	sms := NewSMSSender(config.NotificationConfig{}, logger)
	assert.IsType(t, &LogSender{}, sms)
	assert.NoError(t, sms.Send(context.Background(), "+911234567890", "hi"))
}
