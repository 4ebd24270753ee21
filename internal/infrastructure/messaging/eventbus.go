// Package messaging implements an in-memory event bus for domain
// events. A single process is enough here: events fan out to local
// subscribers (cache invalidation, logging) and are not persisted.
package messaging

import (
	"context"
	"sync"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/shared"
	"github.com/vocal-hub/vocal-studio-hub/pkg/logger"
)

// EventBus is an in-memory implementation of shared.EventPublisher.
// Handlers run synchronously in publish order; a failing handler is
// logged and does not block the others.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[shared.EventType][]shared.EventHandler
	all      []shared.EventHandler
	log      *logger.Logger
}

// NewEventBus creates an EventBus.
func NewEventBus(log *logger.Logger) *EventBus {
	if log == nil {
		log = logger.Default()
	}
	return &EventBus{
		handlers: make(map[shared.EventType][]shared.EventHandler),
		log:      log.With(logger.Component("eventbus")),
	}
}

// Subscribe registers a handler for a specific event type.
func (b *EventBus) Subscribe(eventType shared.EventType, handler shared.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll registers a handler for every event.
func (b *EventBus) SubscribeAll(handler shared.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, handler)
}

// Publish delivers the event to all matching handlers.
func (b *EventBus) Publish(ctx context.Context, event shared.Event) error {
	b.mu.RLock()
	typed := make([]shared.EventHandler, len(b.handlers[event.EventType()]))
	copy(typed, b.handlers[event.EventType()])
	all := make([]shared.EventHandler, len(b.all))
	copy(all, b.all)
	b.mu.RUnlock()

	for _, h := range append(typed, all...) {
		if err := h.Handle(ctx, event); err != nil {
			b.log.Error("event handler failed",
				logger.String("event_type", string(event.EventType())),
				logger.Int64("aggregate_id", event.AggregateID()),
				logger.Err(err))
		}
	}

	return nil
}

var _ shared.EventPublisher = (*EventBus)(nil)
