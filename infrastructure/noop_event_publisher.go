package infrastructure

import (
	"context"

	"warden/domain/events"
)

// NoopEventPublisher runs local handlers but publishes nowhere.
// Used when NATS is not configured.
type NoopEventPublisher struct {
	local *localHandlers
}

// NewNoopEventPublisher creates a new no-op event publisher
func NewNoopEventPublisher() *NoopEventPublisher {
	return &NoopEventPublisher{local: newLocalHandlers()}
}

// Publish runs local handlers for the event
func (n *NoopEventPublisher) Publish(event events.Event) error {
	n.local.dispatch(context.Background(), event)
	return nil
}

// RegisterLocalHandler registers a handler invoked for every published event of the type
func (n *NoopEventPublisher) RegisterLocalHandler(eventType events.EventType, handler LocalEventHandler) {
	n.local.register(eventType, handler)
}
