package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/campaign-service/internal/repository"
	"github.com/spec-kit/campaign-service/internal/worker"
)

// Transactor runs the function directly and counts calls.
type Transactor struct {
	mu    sync.Mutex
	Calls int
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	t.Calls++
	t.mu.Unlock()
	return fn(ctx)
}

type otpEntry struct {
	hash      string
	expiresAt time.Time
}

// OTPStore is an in-memory repository.OTPRepository with a controllable clock.
type OTPStore struct {
	mu      sync.Mutex
	entries map[string]otpEntry
	Now     func() time.Time
}

var _ repository.OTPRepository = (*OTPStore)(nil)

// NewOTPStore returns an empty store using the wall clock.
func NewOTPStore() *OTPStore {
	return &OTPStore{entries: map[string]otpEntry{}, Now: time.Now}
}

func (o *OTPStore) Put(_ context.Context, purpose, subject, hash string, ttl time.Duration) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.entries[purpose+":"+subject] = otpEntry{hash: hash, expiresAt: o.Now().Add(ttl)}
	return nil
}

func (o *OTPStore) Get(_ context.Context, purpose, subject string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	e, ok := o.entries[purpose+":"+subject]
	if !ok || !o.Now().Before(e.expiresAt) {
		return "", repository.ErrOTPNotFound
	}
	return e.hash, nil
}

func (o *OTPStore) Delete(_ context.Context, purpose, subject string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.entries, purpose+":"+subject)
	return nil
}

// Enqueuer records notification tasks instead of pushing them to Redis.
type Enqueuer struct {
	mu     sync.Mutex
	Emails []worker.EmailPayload
	SMS    []worker.SMSPayload
	Err    error
}

func (e *Enqueuer) EnqueueEmail(_ context.Context, p worker.EmailPayload) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Err != nil {
		return e.Err
	}
	e.Emails = append(e.Emails, p)
	return nil
}

func (e *Enqueuer) EnqueueSMS(_ context.Context, p worker.SMSPayload) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Err != nil {
		return e.Err
	}
	e.SMS = append(e.SMS, p)
	return nil
}

// Sequencer counts per key in memory.
type Sequencer struct {
	mu     sync.Mutex
	counts map[string]int64
}

func (s *Sequencer) Next(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counts == nil {
		s.counts = map[string]int64{}
	}
	s.counts[key]++
	return s.counts[key], nil
}
