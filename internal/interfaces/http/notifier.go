package http

import (
	"context"
	"time"

	"tempus/internal/domain/session"
	"tempus/internal/infrastructure/pubsub"
	"tempus/internal/infrastructure/services"
	"tempus/internal/shared/goroutine"
	"tempus/internal/shared/logger"
)

const busPublishTimeout = 5 * time.Second

// fanoutNotifier delivers session events to local WebSocket subscribers
// and relays them to other engine instances over Redis. Local delivery is
// synchronous; the Redis publish runs off the request path so a broker
// hiccup never delays a countdown tick.
type fanoutNotifier struct {
	hub    *services.SessionHub
	bus    *pubsub.RedisSessionEventBus
	logger logger.Interface
}

func newFanoutNotifier(hub *services.SessionHub, bus *pubsub.RedisSessionEventBus, log logger.Interface) *fanoutNotifier {
	return &fanoutNotifier{
		hub:    hub,
		bus:    bus,
		logger: log,
	}
}

func (n *fanoutNotifier) Publish(evt session.Event) {
	n.hub.Publish(evt)

	goroutine.SafeGo(n.logger, "pubsub.publish", func() {
		ctx, cancel := context.WithTimeout(context.Background(), busPublishTimeout)
		defer cancel()

		if err := n.bus.Publish(ctx, evt); err != nil {
			n.logger.Warnw("failed to relay session event",
				"event_type", evt.Type,
				"session_id", evt.SessionID,
				"error", err,
			)
		}
	})
}
