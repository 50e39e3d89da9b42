package infrastructure

import (
	"context"

	"warden/domain/events"
	"warden/domain/interfaces"
	"warden/infrastructure/observability"
)

// EventBus publishes domain events and runs in-process handlers for them
type EventBus interface {
	interfaces.EventPublisher
	RegisterLocalHandler(eventType events.EventType, handler LocalEventHandler)
}

var (
	_ EventBus = (*NATSEventPublisher)(nil)
	_ EventBus = (*NoopEventPublisher)(nil)
)

// RegisterMetricsHandlers counts moderation actions and audit entries as they are published
func RegisterMetricsHandlers(bus EventBus) {
	bus.RegisterLocalHandler(events.EventTypeModerationAction, func(ctx context.Context, event events.Event) error {
		if e, ok := event.(events.ModerationActionEvent); ok {
			observability.GetMetrics().RecordModerationAction(e.Action)
		}
		return nil
	})
	bus.RegisterLocalHandler(events.EventTypeAuditEntry, func(ctx context.Context, event events.Event) error {
		if e, ok := event.(events.AuditEntryEvent); ok {
			observability.GetMetrics().RecordAuditEntry(e.Kind)
		}
		return nil
	})
}
