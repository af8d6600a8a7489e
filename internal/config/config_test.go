package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("TWILIO_ACCOUNT_SID", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 10*time.Minute, cfg.Auth.OTPTTL())
	assert.False(t, cfg.Notification.SMTPEnabled())
	assert.False(t, cfg.Notification.SMSEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("AUTH_OTP_TTL_MINUTES", "5")
	t.Setenv("UPLOAD_MAX_BODY_MB", "2")
	t.Setenv("WORKER_EMBEDDED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 5*time.Minute, cfg.Auth.OTPTTL())
	assert.Equal(t, 2*1024*1024, cfg.Upload.BodyLimit())
	assert.False(t, cfg.Worker.Embedded)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("REDIS_DB", "x")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("REDIS_DB", "0")
	t.Setenv("SNOWFLAKE_NODE_ID", "5000")
	_, err = Load()
	require.Error(t, err)
}
