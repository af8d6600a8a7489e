package identifier

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Sequencer hands out monotonically increasing numbers per key.
type Sequencer interface {
	Next(ctx context.Context, key string) (int64, error)
}

// RedisSequencer backs sequences with Redis INCR so every process shares them.
type RedisSequencer struct {
	rdb *redis.Client
}

// NewRedisSequencer constructs a sequencer.
func NewRedisSequencer(rdb *redis.Client) *RedisSequencer {
	return &RedisSequencer{rdb: rdb}
}

// Next increments and returns the counter stored under seq:<key>.
func (s *RedisSequencer) Next(ctx context.Context, key string) (int64, error) {
	return s.rdb.Incr(ctx, "seq:"+key).Result()
}
