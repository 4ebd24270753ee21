package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/shared"
)

func TestPublishDeliversToTypedSubscribers(t *testing.T) {
	bus := NewEventBus(nil)

	var completed, scheduled int
	bus.Subscribe(shared.EventLessonCompleted, shared.EventHandlerFunc(func(ctx context.Context, e shared.Event) error {
		completed++
		return nil
	}))
	bus.Subscribe(shared.EventLessonScheduled, shared.EventHandlerFunc(func(ctx context.Context, e shared.Event) error {
		scheduled++
		return nil
	}))

	event := shared.NewLessonCompletedEvent(1, 2, time.Now(), 60, 3)
	require.NoError(t, bus.Publish(context.Background(), event))

	assert.Equal(t, 1, completed)
	assert.Equal(t, 0, scheduled)
}

func TestPublishDeliversToCatchAllSubscribers(t *testing.T) {
	bus := NewEventBus(nil)

	var seen []shared.EventType
	bus.SubscribeAll(shared.EventHandlerFunc(func(ctx context.Context, e shared.Event) error {
		seen = append(seen, e.EventType())
		return nil
	}))

	require.NoError(t, bus.Publish(context.Background(), shared.NewRentPostedEvent(1, 30000, time.Now())))
	require.NoError(t, bus.Publish(context.Background(), shared.NewSubscriptionPurchasedEvent(1, 2, 8, 16000)))

	assert.Equal(t, []shared.EventType{shared.EventRentPosted, shared.EventSubscriptionPurchased}, seen)
}

func TestPublishContinuesPastFailingHandler(t *testing.T) {
	bus := NewEventBus(nil)

	var called bool
	bus.Subscribe(shared.EventRentPosted, shared.EventHandlerFunc(func(ctx context.Context, e shared.Event) error {
		return errors.New("boom")
	}))
	bus.Subscribe(shared.EventRentPosted, shared.EventHandlerFunc(func(ctx context.Context, e shared.Event) error {
		called = true
		return nil
	}))

	// Handler failures are logged, not propagated.
	err := bus.Publish(context.Background(), shared.NewRentPostedEvent(1, 30000, time.Now()))
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestPublishWithoutSubscribers(t *testing.T) {
	bus := NewEventBus(nil)
	assert.NoError(t, bus.Publish(context.Background(), shared.NewRentPostedEvent(1, 30000, time.Now())))
}
