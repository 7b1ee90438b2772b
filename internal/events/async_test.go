package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingHandler holds every delivery until release is closed.
type blockingHandler struct {
	started chan struct{}
	release chan struct{}
	recordingHandler
}

func (h *blockingHandler) HandleEvent(ctx context.Context, event *EntryEvent) error {
	h.started <- struct{}{}
	<-h.release
	return h.recordingHandler.HandleEvent(ctx, event)
}

type panickingHandler struct{}

func (panickingHandler) HandleEvent(context.Context, *EntryEvent) error {
	panic("boom")
}

func TestAsyncHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	newEvent := func(t *testing.T) *EntryEvent {
		event, err := NewEntryEvent(EntryCreated, testEntry())
		require.NoError(t, err)
		return event
	}

	t.Run("delivers queued events before close returns", func(t *testing.T) {
		next := &recordingHandler{}
		h := NewAsyncHandler(next, AsyncConfig{QueueSize: 10, Workers: 3}, logger)

		for i := 0; i < 5; i++ {
			require.NoError(t, h.HandleEvent(context.Background(), newEvent(t)))
		}
		h.Close()

		assert.Len(t, next.events, 5)
	})

	t.Run("delivery ignores caller cancellation", func(t *testing.T) {
		next := &recordingHandler{}
		h := NewAsyncHandler(next, AsyncConfig{}, logger)

		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, h.HandleEvent(ctx, newEvent(t)))
		cancel()
		h.Close()

		assert.Len(t, next.events, 1)
	})

	t.Run("rejects when queue is full", func(t *testing.T) {
		next := &blockingHandler{started: make(chan struct{}, 1), release: make(chan struct{})}
		h := NewAsyncHandler(next, AsyncConfig{QueueSize: 1, Workers: 1}, logger)

		require.NoError(t, h.HandleEvent(context.Background(), newEvent(t)))
		<-next.started
		require.NoError(t, h.HandleEvent(context.Background(), newEvent(t)))

		err := h.HandleEvent(context.Background(), newEvent(t))
		assert.ErrorIs(t, err, ErrQueueFull)

		go func() {
			for range next.started {
			}
		}()
		close(next.release)
		h.Close()
		close(next.started)

		assert.Len(t, next.events, 2)
	})

	t.Run("rejects after close", func(t *testing.T) {
		h := NewAsyncHandler(&recordingHandler{}, AsyncConfig{}, logger)
		h.Close()
		h.Close()

		assert.ErrorIs(t, h.HandleEvent(context.Background(), newEvent(t)), ErrQueueClosed)
	})

	t.Run("failing and panicking handlers do not stop workers", func(t *testing.T) {
		failing := &recordingHandler{err: errors.New("broker down")}
		h := NewAsyncHandler(failing, AsyncConfig{Workers: 1}, logger)
		require.NoError(t, h.HandleEvent(context.Background(), newEvent(t)))
		require.NoError(t, h.HandleEvent(context.Background(), newEvent(t)))
		h.Close()
		assert.Len(t, failing.events, 2)

		p := NewAsyncHandler(panickingHandler{}, AsyncConfig{Workers: 1}, logger)
		require.NoError(t, p.HandleEvent(context.Background(), newEvent(t)))
		require.NoError(t, p.HandleEvent(context.Background(), newEvent(t)))
		p.Close()
	})
}
