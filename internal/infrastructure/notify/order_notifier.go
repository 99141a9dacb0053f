package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/resto/backend/internal/domain/ordering"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/resto/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// OrderNotification is the wire format published on the order channel.
// Kitchen displays and POS terminals subscribe to it.
type OrderNotification struct {
	EventType   string    `json:"event_type"`
	OrderID     string    `json:"order_id"`
	TenantID    string    `json:"tenant_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	PublishedAt time.Time `json:"published_at"`
}

// RedisOrderNotifier fans order lifecycle events out to a Redis pub/sub
// channel. It subscribes to the in-process event bus and republishes, so
// delivery is best-effort and decoupled from the order transaction.
type RedisOrderNotifier struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewRedisOrderNotifier creates a notifier with its own Redis client
func NewRedisOrderNotifier(cfg *config.RedisConfig, channel string, logger *zap.Logger) (*RedisOrderNotifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisOrderNotifierWithClient(client, channel, logger), nil
}

// NewRedisOrderNotifierWithClient creates a notifier with an existing Redis client
func NewRedisOrderNotifierWithClient(client *redis.Client, channel string, logger *zap.Logger) *RedisOrderNotifier {
	if channel == "" {
		channel = "resto:orders"
	}
	return &RedisOrderNotifier{
		client:  client,
		channel: channel,
		logger:  logger.Named("order-notifier"),
	}
}

// Handle republishes an order event on the Redis channel
func (n *RedisOrderNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	notification := OrderNotification{
		EventType:   event.EventType(),
		OrderID:     event.AggregateID().String(),
		TenantID:    event.TenantID().String(),
		OccurredAt:  event.OccurredAt(),
		PublishedAt: time.Now(),
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal order notification: %w", err)
	}

	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish order notification: %w", err)
	}

	n.logger.Debug("order notification published",
		zap.String("event_type", notification.EventType),
		zap.String("order_id", notification.OrderID),
	)
	return nil
}

// EventTypes returns the order lifecycle events the notifier republishes
func (n *RedisOrderNotifier) EventTypes() []string {
	return []string{
		ordering.EventTypeOrderPlaced,
		ordering.EventTypeOrderCompleted,
		ordering.EventTypeOrderCancelled,
	}
}

// Close closes the underlying Redis client
func (n *RedisOrderNotifier) Close() error {
	return n.client.Close()
}

// Ensure RedisOrderNotifier implements EventHandler
var _ shared.EventHandler = (*RedisOrderNotifier)(nil)
