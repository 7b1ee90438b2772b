package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Errors returned by AsyncHandler.HandleEvent.
var (
	ErrQueueClosed = errors.New("event queue is closed")
	ErrQueueFull   = errors.New("event queue is full")
)

// AsyncConfig sizes the buffered queue and worker pool of an AsyncHandler.
type AsyncConfig struct {
	// QueueSize is the number of events buffered before HandleEvent rejects.
	// Zero or negative uses 100.
	QueueSize int

	// Workers is the number of goroutines delivering events.
	// Zero or negative uses 1.
	Workers int
}

// AsyncHandler queues events and delivers them to a wrapped handler on
// background workers, so slow handlers such as a broker publish stay off
// the caller's path. Events are delivered with a context detached from the
// caller, since request contexts end before delivery.
type AsyncHandler struct {
	next   EventHandler
	queue  chan *EntryEvent
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewAsyncHandler starts the workers and returns the handler. Call Close to
// drain the queue and stop them.
func NewAsyncHandler(next EventHandler, cfg AsyncConfig, logger *slog.Logger) *AsyncHandler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "async_event_handler")

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 100
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	h := &AsyncHandler{
		next:   next,
		queue:  make(chan *EntryEvent, queueSize),
		logger: logger,
	}

	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go h.work(i)
	}

	logger.Info("async event handler started",
		"workers", workers,
		"queue_cap", queueSize)

	return h
}

// HandleEvent enqueues the event without blocking. It fails with
// ErrQueueFull when the buffer is exhausted and ErrQueueClosed after Close.
func (h *AsyncHandler) HandleEvent(ctx context.Context, event *EntryEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return ErrQueueClosed
	}

	select {
	case h.queue <- event:
		h.logger.Debug("event enqueued",
			"event_id", event.ID,
			"event_type", event.Type,
			"queue_len", len(h.queue))
		return nil
	default:
		return fmt.Errorf("%w: queue capacity %d reached", ErrQueueFull, cap(h.queue))
	}
}

// Close stops accepting events, waits for queued events to be delivered and
// returns once every worker has exited. It is safe to call more than once.
func (h *AsyncHandler) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	close(h.queue)
	h.mu.Unlock()

	h.wg.Wait()
	h.logger.Info("async event handler stopped")
}

func (h *AsyncHandler) work(id int) {
	defer h.wg.Done()

	for event := range h.queue {
		if err := h.deliver(event); err != nil {
			h.logger.Error("event delivery failed",
				"worker_id", id,
				"event_id", event.ID,
				"event_type", event.Type,
				"error", err)
		}
	}
}

func (h *AsyncHandler) deliver(event *EntryEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h.next.HandleEvent(context.Background(), event)
}
