// Package eventbus carries runner events between editor sessions and the execution backend.
package eventbus

import (
	"context"

	"github.com/dukex/operion-runner/pkg/events"
)

type Event interface {
	GetType() events.EventType
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, event Event) error
}

type EventSubscriber interface {
	Handle(eventType events.EventType, handler EventHandler) error
	Subscribe(ctx context.Context) error
	// Done is closed when the subscription's consumer loop stops.
	Done() <-chan struct{}
}

type EventHandler func(ctx context.Context, event any) error

type EventBus interface {
	EventPublisher
	EventSubscriber
	Close() error
	GenerateID() string
}
