// Package eventbus provides the publish/subscribe plumbing for workflow lifecycle events.
package eventbus

import (
	"context"

	"github.com/qubeflow/qubeflow/pkg/events"
)

// Event is a lifecycle notification. Its id doubles as the transport message id, so a
// redelivered event keeps the identity it was published with.
type Event interface {
	GetID() string
	GetType() events.EventType
}

// EventPublisher sends events keyed by workflow id; the key selects the Kafka partition.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event Event) error
}

// EventSubscriber routes incoming events to one handler per event type. Handlers must be
// registered before Subscribe.
type EventSubscriber interface {
	Handle(eventType events.EventType, handler EventHandler) error
	Subscribe(ctx context.Context) error
}

// EventHandler receives a pointer to the decoded event, e.g. *events.WorkflowValidated.
type EventHandler func(ctx context.Context, event any) error

type EventBus interface {
	EventPublisher
	EventSubscriber
	Close() error
}
