package event

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerationLock serializes idea generation runs per user via Redis SETNX.
// The TTL guards against locks leaking when a process dies mid-run.
type GenerationLock struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewGenerationLock creates a new GenerationLock
func NewGenerationLock(redisClient *redis.Client, ttl time.Duration, logger *zap.Logger) *GenerationLock {
	return &GenerationLock{
		redis:  redisClient,
		ttl:    ttl,
		logger: logger,
	}
}

func lockKey(userID uuid.UUID) string {
	return fmt.Sprintf("idea_generation_lock:%s", userID.String())
}

// Acquire attempts to take the user's generation lock. Returns false when
// another run already holds it.
func (l *GenerationLock) Acquire(ctx context.Context, userID uuid.UUID) (bool, error) {
	acquired, err := l.redis.SetNX(ctx, lockKey(userID), "1", l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire generation lock: %w", err)
	}
	return acquired, nil
}

// Release frees the user's generation lock. Failures are logged only; the
// TTL will reclaim the lock eventually.
func (l *GenerationLock) Release(ctx context.Context, userID uuid.UUID) {
	if err := l.redis.Del(ctx, lockKey(userID)).Err(); err != nil {
		l.logger.Warn("Failed to release generation lock",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
	}
}
