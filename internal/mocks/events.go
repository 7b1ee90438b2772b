package mocks

import (
	"context"
	"sync"

	"github.com/dreis/minhasfinancas-api/internal/events"
)

// MockEventEmitter records emitted events.
type MockEventEmitter struct {
	EmitEventFn func(ctx context.Context, event *events.EntryEvent) error

	mu     sync.Mutex
	events []*events.EntryEvent
}

// EmitEvent implements events.EventEmitter.
func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.EntryEvent) error {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()

	if m.EmitEventFn != nil {
		return m.EmitEventFn(ctx, event)
	}
	return nil
}

// Events returns a copy of the recorded events.
func (m *MockEventEmitter) Events() []*events.EntryEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*events.EntryEvent, len(m.events))
	copy(out, m.events)
	return out
}

// Types returns the recorded event types in emission order.
func (m *MockEventEmitter) Types() []string {
	recorded := m.Events()
	types := make([]string, len(recorded))
	for i, e := range recorded {
		types[i] = e.Type
	}
	return types
}
