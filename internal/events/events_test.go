package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntryEvent(t *testing.T) {
	entry := testEntry()

	event, err := NewEntryEvent(EntryStatusChanged, entry)
	require.NoError(t, err)

	assert.NotEqual(t, entry.ID, event.ID)
	assert.Equal(t, EntryStatusChanged, event.Type)
	assert.Equal(t, entry.ID, event.EntryID)
	assert.Equal(t, entry.UserID, event.UserID)
	assert.False(t, event.CreatedAt.IsZero())

	decoded, err := event.Entry()
	require.NoError(t, err)
	assert.Equal(t, entry.Description, decoded.Description)
	assert.True(t, entry.Value.Equal(decoded.Value))
	assert.Equal(t, entry.Status, decoded.Status)
}

func TestNoopEmitter(t *testing.T) {
	var emitter EventEmitter = NoopEmitter{}
	event, err := NewEntryEvent(EntryCreated, testEntry())
	require.NoError(t, err)
	assert.NoError(t, emitter.EmitEvent(context.Background(), event))
}
