// internal/event/manager.go
package event

import (
	"slices"
	"sync"

	"github.com/rsql-tui/rsql/internal/logger"
)

// Handler defines the function signature for event subscribers.
// It returns true if the event was consumed; later handlers are skipped.
type Handler func(e Event) bool

// Manager handles event subscriptions and dispatching.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe adds a handler function for a specific event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handlers[eventType] = append(m.handlers[eventType], handler)
	logger.DebugTagf("event", "Handler subscribed to %v", eventType)
}

// Dispatch sends an event to the handlers registered for its type, in
// subscription order. Handlers run synchronously on the caller's goroutine.
func (m *Manager) Dispatch(eventType Type, data any) {
	m.mu.RLock()
	// Copy so a handler may subscribe during dispatch.
	handlers := slices.Clone(m.handlers[eventType])
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	logger.DebugTagf("event", "Dispatching %v to %d handler(s)", eventType, len(handlers))

	e := Event{Type: eventType, Data: data}
	for _, handler := range handlers {
		if handler(e) {
			break
		}
	}
}
