package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dreis/minhasfinancas-api/internal/platform/logger"
)

// InMemoryEventEmitter fans entry events out to every registered handler in
// registration order.
type InMemoryEventEmitter struct {
	mu       sync.RWMutex
	handlers []EventHandler
	logger   *slog.Logger
}

// NewInMemoryEventEmitter returns an emitter with no handlers. Until one is
// registered, EmitEvent is a no-op.
func NewInMemoryEventEmitter(log *slog.Logger) *InMemoryEventEmitter {
	if log == nil {
		log = slog.Default()
	}
	return &InMemoryEventEmitter{
		logger: log.With("component", "entry_event_emitter"),
	}
}

// RegisterHandler subscribes handler to every subsequent event.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) {
	e.mu.Lock()
	e.handlers = append(e.handlers, handler)
	count := len(e.handlers)
	e.mu.Unlock()

	e.logger.Debug("entry event handler registered", "handler_count", count)
}

// EmitEvent delivers event to every handler, even after one fails, and
// returns the first failure.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *EntryEvent) error {
	e.mu.RLock()
	handlers := append([]EventHandler(nil), e.handlers...)
	e.mu.RUnlock()

	log := logger.FromContextOrDefault(ctx, e.logger).With(
		"event_id", event.ID,
		"event_type", event.Type,
		"entry_id", event.EntryID,
	)

	if len(handlers) == 0 {
		log.Debug("no handlers for entry event")
		return nil
	}

	var firstErr error
	for i, h := range handlers {
		err := h.HandleEvent(ctx, event)
		if err == nil {
			continue
		}
		log.Error("entry event handler failed", "handler_index", i, "error", err)
		if firstErr == nil {
			firstErr = err
		}
	}

	log.Debug("entry event emitted", "handler_count", len(handlers))
	return firstErr
}
