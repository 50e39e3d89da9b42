package infrastructure

import (
	"context"
	"sync"

	"warden/domain/events"

	log "github.com/sirupsen/logrus"
)

// LocalEventHandler handles an event in the publishing process
type LocalEventHandler func(context.Context, events.Event) error

// localHandlers dispatches events to in-process handlers by event type
type localHandlers struct {
	mu       sync.RWMutex
	handlers map[events.EventType][]LocalEventHandler
}

func newLocalHandlers() *localHandlers {
	return &localHandlers{handlers: make(map[events.EventType][]LocalEventHandler)}
}

func (l *localHandlers) register(eventType events.EventType, handler LocalEventHandler) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.handlers[eventType] = append(l.handlers[eventType], handler)
	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(l.handlers[eventType]),
	}).Info("Registered local event handler")
}

// dispatch runs every handler for the event. A failing handler is logged and
// does not stop the others.
func (l *localHandlers) dispatch(ctx context.Context, event events.Event) {
	l.mu.RLock()
	handlers := l.handlers[event.Type()]
	l.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			log.WithFields(log.Fields{
				"eventType": event.Type(),
				"error":     err,
			}).Error("Local event handler failed")
		}
	}
}
