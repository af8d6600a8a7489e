package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrOTPNotFound is returned when no live code exists for the key.
var ErrOTPNotFound = errors.New("otp not found or expired")

// OTP purposes.
const (
	OTPPurposeRetailerPhone = "retailer-phone"
	OTPPurposeAdminReset    = "admin-reset"
)

// OTPRepository stores hashed one-time codes with a TTL.
type OTPRepository interface {
	Put(ctx context.Context, purpose, subject, codeHash string, ttl time.Duration) error
	Get(ctx context.Context, purpose, subject string) (string, error)
	Delete(ctx context.Context, purpose, subject string) error
}

type otpRepository struct {
	client *redis.Client
}

// NewOTPRepository returns a Redis-backed implementation.
func NewOTPRepository(client *redis.Client) OTPRepository {
	return &otpRepository{client: client}
}

func otpKey(purpose, subject string) string {
	return "otp:" + purpose + ":" + subject
}

func (r *otpRepository) Put(ctx context.Context, purpose, subject, codeHash string, ttl time.Duration) error {
	return r.client.Set(ctx, otpKey(purpose, subject), codeHash, ttl).Err()
}

func (r *otpRepository) Get(ctx context.Context, purpose, subject string) (string, error) {
	val, err := r.client.Get(ctx, otpKey(purpose, subject)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrOTPNotFound
	}
	return val, err
}

func (r *otpRepository) Delete(ctx context.Context, purpose, subject string) error {
	return r.client.Del(ctx, otpKey(purpose, subject)).Err()
}
