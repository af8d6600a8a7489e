package worker

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Enqueuer pushes notification tasks onto the asynq queue.
type Enqueuer struct {
	client *asynq.Client
	queue  string
}

// NewEnqueuer reuses the service's redis connection for the asynq client.
func NewEnqueuer(rdb redis.UniversalClient, queue string) *Enqueuer {
	return &Enqueuer{client: asynq.NewClientFromRedisClient(rdb), queue: queue}
}

func (e *Enqueuer) EnqueueEmail(ctx context.Context, p EmailPayload) error {
	task, err := NewEmailTask(e.queue, p)
	if err != nil {
		return err
	}
	_, err = e.client.EnqueueContext(ctx, task)
	return err
}

func (e *Enqueuer) EnqueueSMS(ctx context.Context, p SMSPayload) error {
	task, err := NewSMSTask(e.queue, p)
	if err != nil {
		return err
	}
	_, err = e.client.EnqueueContext(ctx, task)
	return err
}
