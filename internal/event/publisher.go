package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventTypeIdeasGenerated is published after a generation run commits
const EventTypeIdeasGenerated = "IDEAS_GENERATED"

// IdeasGeneratedEvent is the payload published to a user's idea channel
type IdeasGeneratedEvent struct {
	Type             string    `json:"type"`
	UserID           uuid.UUID `json:"user_id"`
	IdeaCount        int       `json:"idea_count"`
	CommentsConsumed int       `json:"comments_consumed"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// Publisher publishes idea events to Redis
type Publisher struct {
	redis  *redis.Client
	logger *zap.Logger
}

// NewPublisher creates a new Publisher
func NewPublisher(redisClient *redis.Client, logger *zap.Logger) *Publisher {
	return &Publisher{
		redis:  redisClient,
		logger: logger,
	}
}

// ChannelForUser returns the Redis channel carrying a user's idea events
func ChannelForUser(userID uuid.UUID) string {
	return fmt.Sprintf("idea_events:%s", userID.String())
}

// PublishIdeasGenerated publishes an IDEAS_GENERATED event to the user's channel
func (p *Publisher) PublishIdeasGenerated(ctx context.Context, userID uuid.UUID, ideaCount, commentsConsumed int) error {
	evt := IdeasGeneratedEvent{
		Type:             EventTypeIdeasGenerated,
		UserID:           userID,
		IdeaCount:        ideaCount,
		CommentsConsumed: commentsConsumed,
		OccurredAt:       time.Now().UTC(),
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.redis.Publish(ctx, ChannelForUser(userID), payload).Err(); err != nil {
		p.logger.Error("Failed to publish idea event",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return err
	}

	return nil
}

// Subscribe subscribes to a user's idea events. The caller owns the returned
// PubSub and must close it.
func (p *Publisher) Subscribe(ctx context.Context, userID uuid.UUID) *redis.PubSub {
	return p.redis.Subscribe(ctx, ChannelForUser(userID))
}
