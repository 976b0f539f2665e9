// Package pubsub relays session events between instances over Redis.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"tempus/internal/domain/session"
	"tempus/internal/shared/logger"
)

const sessionEventChannel = "tempus:sessions:events"

// relayEnvelope wraps a session event with the source instance ID so a
// publisher does not re-deliver its own events to its local hub.
type relayEnvelope struct {
	Event      session.Event `json:"event"`
	InstanceID string        `json:"instance_id"`
}

// SessionEventPublisher publishes session events for cross-instance delivery.
type SessionEventPublisher interface {
	Publish(ctx context.Context, evt session.Event) error
}

// SessionEventSubscriber consumes session events published by other instances.
type SessionEventSubscriber interface {
	Subscribe(ctx context.Context, handler func(evt session.Event)) error
}

// SessionEventBus combines publisher and subscriber interfaces.
type SessionEventBus interface {
	SessionEventPublisher
	SessionEventSubscriber
}

// RedisSessionEventBus implements SessionEventBus using Redis Pub/Sub. Each
// instance relays the events of sessions it mutates; every instance fans the
// relayed events out to its own WebSocket subscribers.
type RedisSessionEventBus struct {
	client     *redis.Client
	logger     logger.Interface
	instanceID string
}

// NewRedisSessionEventBus creates a new Redis-based session event bus.
func NewRedisSessionEventBus(client *redis.Client, log logger.Interface) *RedisSessionEventBus {
	return &RedisSessionEventBus{
		client:     client,
		logger:     log,
		instanceID: uuid.NewString(),
	}
}

// Publish publishes a session event to Redis for cross-instance delivery.
func (b *RedisSessionEventBus) Publish(ctx context.Context, evt session.Event) error {
	envelope := relayEnvelope{
		Event:      evt,
		InstanceID: b.instanceID,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal session event: %w", err)
	}

	if err := b.client.Publish(ctx, sessionEventChannel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish session event",
			"event_type", evt.Type,
			"session_id", evt.SessionID,
			"error", err,
		)
		return fmt.Errorf("failed to publish session event: %w", err)
	}

	return nil
}

// Subscribe consumes session events from Redis. Events published by this
// instance are filtered out.
func (b *RedisSessionEventBus) Subscribe(ctx context.Context, handler func(evt session.Event)) error {
	return b.subscribeWithReconnect(ctx, sessionEventChannel, func(payload string) {
		var envelope relayEnvelope
		if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
			b.logger.Warnw("failed to unmarshal session event",
				"payload", payload,
				"error", err,
			)
			return
		}

		// Skip events from own instance to avoid duplicate local broadcasts
		if envelope.InstanceID == b.instanceID {
			return
		}

		handler(envelope.Event)
	})
}

// subscribeWithReconnect wraps subscribe with automatic reconnection and exponential backoff.
func (b *RedisSessionEventBus) subscribeWithReconnect(ctx context.Context, channel string, handler func(payload string)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := b.subscribe(ctx, channel, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b.logger.Warnw("session event subscription disconnected, reconnecting",
			"channel", channel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (b *RedisSessionEventBus) subscribe(ctx context.Context, channel string, handler func(payload string)) error {
	pubsub := b.client.Subscribe(ctx, channel)
	defer pubsub.Close()

	_, err := pubsub.Receive(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", channel, err)
	}

	b.logger.Infow("subscribed to session event channel",
		"channel", channel,
	)

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("session event subscriber stopped",
				"channel", channel,
				"reason", ctx.Err(),
			)
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("session event channel closed",
					"channel", channel,
				)
				return nil
			}
			handler(msg.Payload)
		}
	}
}
