package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/dreis/minhasfinancas-api/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	mu     sync.Mutex
	events []*EntryEvent
	err    error
}

func (h *recordingHandler) HandleEvent(ctx context.Context, event *EntryEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return h.err
}

func testEntry() *domain.Entry {
	return &domain.Entry{
		ID:          uuid.New(),
		Description: "Mercado",
		Month:       2,
		Year:        2025,
		Value:       decimal.RequireFromString("350.75"),
		Type:        domain.EntryTypeExpense,
		Status:      domain.EntryStatusPending,
		UserID:      uuid.New(),
	}
}

func TestInMemoryEventEmitter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("emit event with no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		event, err := NewEntryEvent(EntryCreated, testEntry())
		require.NoError(t, err)

		assert.NoError(t, emitter.EmitEvent(context.Background(), event))
	})

	t.Run("emit event with successful handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		handler1 := &recordingHandler{}
		handler2 := &recordingHandler{}
		emitter.RegisterHandler(handler1)
		emitter.RegisterHandler(handler2)

		event, err := NewEntryEvent(EntryUpdated, testEntry())
		require.NoError(t, err)

		require.NoError(t, emitter.EmitEvent(context.Background(), event))
		require.Len(t, handler1.events, 1)
		require.Len(t, handler2.events, 1)
		assert.Same(t, event, handler1.events[0])
		assert.Same(t, event, handler2.events[0])
	})

	t.Run("emit event with failing handler", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		failing := &recordingHandler{err: errors.New("handler error")}
		success := &recordingHandler{}
		emitter.RegisterHandler(failing)
		emitter.RegisterHandler(success)

		event, err := NewEntryEvent(EntryDeleted, testEntry())
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.EqualError(t, err, "handler error")
		assert.Len(t, failing.events, 1)
		assert.Len(t, success.events, 1)
	})
}
