package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Notification NotificationConfig
	Worker       WorkerConfig
	Upload       UploadConfig
	Snowflake    SnowflakeConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	OTPTTLMinutes         int
	OTPLength             int
}

// NotificationConfig holds outbound email and SMS settings.
type NotificationConfig struct {
	EmailFrom        string
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
}

// WorkerConfig controls the background task processor.
type WorkerConfig struct {
	Embedded    bool
	Concurrency int
	Queue       string
}

// UploadConfig bounds multipart request sizes.
type UploadConfig struct {
	MaxBodyMB    int
	MaxReportImg int
}

// SnowflakeConfig identifies this process for snowflake id generation.
type SnowflakeConfig struct {
	NodeID int64
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	nodeID := getEnvAsInt("SNOWFLAKE_NODE_ID", 1)
	if nodeID < 0 || nodeID > 1023 {
		return nil, fmt.Errorf("invalid SNOWFLAKE_NODE_ID: %d", nodeID)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "campaign-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "5000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 24*60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 10),
			OTPTTLMinutes:         getEnvAsInt("AUTH_OTP_TTL_MINUTES", 10),
			OTPLength:             getEnvAsInt("AUTH_OTP_LENGTH", 6),
		},
		Notification: NotificationConfig{
			EmailFrom:        getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			SMTPHost:         os.Getenv("SMTP_HOST"),
			SMTPPort:         getEnvAsInt("SMTP_PORT", 587),
			SMTPUsername:     os.Getenv("SMTP_USERNAME"),
			SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
			TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
		},
		Worker: WorkerConfig{
			Embedded:    getEnvAsBool("WORKER_EMBEDDED", true),
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 5),
			Queue:       getEnv("WORKER_QUEUE", "notifications"),
		},
		Upload: UploadConfig{
			MaxBodyMB:    getEnvAsInt("UPLOAD_MAX_BODY_MB", 25),
			MaxReportImg: getEnvAsInt("UPLOAD_MAX_REPORT_IMAGES", 10),
		},
		Snowflake: SnowflakeConfig{
			NodeID: int64(nodeID),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// AccessTokenTTL returns the bearer token lifetime.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// OTPTTL returns how long a one-time code stays valid.
func (a AuthConfig) OTPTTL() time.Duration {
	if a.OTPTTLMinutes <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(a.OTPTTLMinutes) * time.Minute
}

// BodyLimit returns the maximum request body size in bytes.
func (u UploadConfig) BodyLimit() int {
	if u.MaxBodyMB <= 0 {
		return 4 * 1024 * 1024
	}
	return u.MaxBodyMB * 1024 * 1024
}

// SMTPEnabled reports whether real email delivery is configured.
func (n NotificationConfig) SMTPEnabled() bool {
	return n.SMTPHost != ""
}

// SMSEnabled reports whether Twilio credentials are present.
func (n NotificationConfig) SMSEnabled() bool {
	return n.TwilioAccountSID != "" && n.TwilioAuthToken != "" && n.TwilioFromNumber != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
