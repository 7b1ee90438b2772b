package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/dreis/minhasfinancas-api/internal/domain"
	"github.com/dreis/minhasfinancas-api/internal/events"
	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	declared   []string
	declareErr error
	publishErr error
	published  []amqp091.Publishing
	keys       []string
	closed     bool
}

func (c *fakeChannel) ExchangeDeclare(name, kind string, durable, _, _, _ bool, _ amqp091.Table) error {
	if c.declareErr != nil {
		return c.declareErr
	}
	c.declared = append(c.declared, name+":"+kind)
	return nil
}

func (c *fakeChannel) PublishWithContext(
	_ context.Context,
	_ string,
	key string,
	_, _ bool,
	msg amqp091.Publishing,
) error {
	if c.publishErr != nil {
		return c.publishErr
	}
	c.keys = append(c.keys, key)
	c.published = append(c.published, msg)
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

type fakeConn struct{ closed bool }

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

func sampleEvent(t *testing.T) *events.EntryEvent {
	t.Helper()
	ev, err := events.NewEntryEvent(events.EntryCreated, &domain.Entry{
		ID:          uuid.New(),
		Description: "Salario",
		Month:       1,
		Year:        2024,
		Value:       decimal.NewFromInt(5000),
		Type:        domain.EntryTypeIncome,
		Status:      domain.EntryStatusPending,
		UserID:      uuid.New(),
	})
	require.NoError(t, err)
	return ev
}

func TestNewPublisherDeclaresExchange(t *testing.T) {
	ch := &fakeChannel{}
	_, err := newPublisher(&fakeConn{}, ch, "financas.events", "entries", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"financas.events:direct"}, ch.declared)
}

func TestNewPublisherDeclareFailure(t *testing.T) {
	ch := &fakeChannel{declareErr: errors.New("access refused")}
	_, err := newPublisher(&fakeConn{}, ch, "financas.events", "entries", nil)
	assert.ErrorContains(t, err, "declare exchange")
}

func TestHandleEventPublishesJSON(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newPublisher(&fakeConn{}, ch, "financas.events", "entries", nil)
	require.NoError(t, err)

	ev := sampleEvent(t)
	require.NoError(t, p.HandleEvent(context.Background(), ev))

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, "entries", ch.keys[0])
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp091.Persistent, msg.DeliveryMode)
	assert.Equal(t, ev.ID.String(), msg.MessageId)
	assert.Equal(t, events.EntryCreated, msg.Type)

	var decoded events.EntryEvent
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, ev.EntryID, decoded.EntryID)

	entry, err := decoded.Entry()
	require.NoError(t, err)
	assert.Equal(t, "Salario", entry.Description)
}

func TestHandleEventPublishFailure(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newPublisher(&fakeConn{}, ch, "financas.events", "entries", nil)
	require.NoError(t, err)

	ch.publishErr = amqp091.ErrClosed
	err = p.HandleEvent(context.Background(), sampleEvent(t))
	assert.ErrorIs(t, err, amqp091.ErrClosed)
}

func TestClose(t *testing.T) {
	ch := &fakeChannel{}
	conn := &fakeConn{}
	p, err := newPublisher(conn, ch, "financas.events", "entries", nil)
	require.NoError(t, err)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
	assert.True(t, conn.closed)
}
