package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dreis/minhasfinancas-api/internal/domain"
	"github.com/google/uuid"
)

// Entry event types.
const (
	EntryCreated       = "entry.created"
	EntryUpdated       = "entry.updated"
	EntryDeleted       = "entry.deleted"
	EntryStatusChanged = "entry.status_changed"
)

// EntryEvent records a committed change to a financial entry.
type EntryEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Entry* constants
	Type string `json:"type"`

	EntryID uuid.UUID `json:"entry_id"`
	UserID  uuid.UUID `json:"user_id"`

	// Payload is the JSON snapshot of the entry after the change
	Payload json.RawMessage `json:"payload"`

	CreatedAt time.Time `json:"created_at"`
}

// NewEntryEvent creates an EntryEvent of the given type for entry.
func NewEntryEvent(eventType string, entry *domain.Entry) (*EntryEvent, error) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}

	return &EntryEvent{
		ID:        uuid.New(),
		Type:      eventType,
		EntryID:   entry.ID,
		UserID:    entry.UserID,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Entry decodes the payload snapshot.
func (e *EntryEvent) Entry() (*domain.Entry, error) {
	var entry domain.Entry
	if err := json.Unmarshal(e.Payload, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *EntryEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *EntryEvent) error
}

// NoopEmitter discards every event.
type NoopEmitter struct{}

// EmitEvent implements EventEmitter.
func (NoopEmitter) EmitEvent(context.Context, *EntryEvent) error { return nil }
