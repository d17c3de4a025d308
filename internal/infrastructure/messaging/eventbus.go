// Package messaging implements the in-process event bus the journey
// commands publish to. Single-instance deployments need nothing more;
// the bus fans events out to subscribers such as the dashboard cache
// invalidator.
package messaging

import (
	"errors"
	"sync"

	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
	"github.com/uniguide-hub/uniguide-server/pkg/logger"
)

// ErrEventBusClosed is returned when publishing to a closed bus.
var ErrEventBusClosed = errors.New("messaging: event bus is closed")

// ══════════════════════════════════════════════════════════════════════════════
// IN-MEMORY EVENT BUS
// ══════════════════════════════════════════════════════════════════════════════

// InMemoryEventBus fans published events out to subscribed handlers.
// Handlers run synchronously in publish order; a handler error is logged
// and never fails the publishing command.
type InMemoryEventBus struct {
	mu          sync.RWMutex
	handlers    map[shared.EventType][]shared.EventHandler
	allHandlers []shared.EventHandler
	log         *logger.Logger
	closed      bool
}

// NewInMemoryEventBus creates a new in-memory event bus.
func NewInMemoryEventBus(log *logger.Logger) *InMemoryEventBus {
	if log == nil {
		log = logger.Default()
	}
	return &InMemoryEventBus{
		handlers: make(map[shared.EventType][]shared.EventHandler),
		log:      log.With(logger.Component("eventbus")),
	}
}

// Subscribe registers a handler for a specific event type.
func (b *InMemoryEventBus) Subscribe(eventType shared.EventType, handler shared.EventHandler) error {
	if handler == nil {
		return errors.New("handler cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrEventBusClosed
	}

	b.handlers[eventType] = append(b.handlers[eventType], handler)
	return nil
}

// SubscribeAll registers a handler for all events.
func (b *InMemoryEventBus) SubscribeAll(handler shared.EventHandler) error {
	if handler == nil {
		return errors.New("handler cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrEventBusClosed
	}

	b.allHandlers = append(b.allHandlers, handler)
	return nil
}

// Publish sends an event to all subscribed handlers.
func (b *InMemoryEventBus) Publish(event shared.Event) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrEventBusClosed
	}
	handlers := make([]shared.EventHandler, 0, len(b.handlers[event.EventType()])+len(b.allHandlers))
	handlers = append(handlers, b.handlers[event.EventType()]...)
	handlers = append(handlers, b.allHandlers...)
	b.mu.RUnlock()

	for _, h := range handlers {
		if err := h(event); err != nil {
			b.log.Warn("event handler failed",
				logger.String("event_type", string(event.EventType())),
				logger.StudentID(event.AggregateID()),
				logger.Err(err))
		}
	}
	return nil
}

// Close stops the bus. Further publishes and subscriptions fail.
func (b *InMemoryEventBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}
