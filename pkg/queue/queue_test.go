package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChannel struct {
	closed    bool
	declared  []string
	published []amqp.Publishing
}

func (c *fakeChannel) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	c.declared = append(c.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (c *fakeChannel) PublishWithContext(_ context.Context, _, _ string, _, _ bool, msg amqp.Publishing) error {
	if c.closed {
		return amqp.ErrClosed
	}
	c.published = append(c.published, msg)
	return nil
}

func (c *fakeChannel) IsClosed() bool { return c.closed }

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

type fakeConnection struct {
	closed   bool
	channels []*fakeChannel
}

func (c *fakeConnection) Channel() (channel, error) {
	if c.closed {
		return nil, amqp.ErrClosed
	}
	ch := &fakeChannel{}
	c.channels = append(c.channels, ch)
	return ch, nil
}

func (c *fakeConnection) IsClosed() bool { return c.closed }

func (c *fakeConnection) Close() error {
	c.closed = true
	return nil
}

type fakeBroker struct {
	down  bool
	conns []*fakeConnection
}

func (b *fakeBroker) dial(string) (connection, error) {
	if b.down {
		return nil, errors.New("connection refused")
	}
	conn := &fakeConnection{}
	b.conns = append(b.conns, conn)
	return conn, nil
}

func (b *fakeBroker) restart() {
	for _, conn := range b.conns {
		conn.closed = true
		for _, ch := range conn.channels {
			ch.closed = true
		}
	}
}

type bookingEvent struct {
	BookingID string `json:"booking_id"`
}

func TestRabbitPublisher_Publish(t *testing.T) {
	broker := &fakeBroker{}
	p, err := newRabbitPublisher("amqp://test", broker.dial, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, p.Publish(ctx, "booking.created", bookingEvent{BookingID: "b1"}))
	require.NoError(t, p.Publish(ctx, "booking.created", bookingEvent{BookingID: "b2"}))

	ch := broker.conns[0].channels[0]
	assert.Equal(t, []string{"booking.created"}, ch.declared)
	require.Len(t, ch.published, 2)
	assert.Equal(t, "application/json", ch.published[0].ContentType)
	assert.Equal(t, amqp.Persistent, ch.published[0].DeliveryMode)

	var got bookingEvent
	require.NoError(t, json.Unmarshal(ch.published[1].Body, &got))
	assert.Equal(t, "b2", got.BookingID)
}

func TestRabbitPublisher_ReconnectsAfterBrokerRestart(t *testing.T) {
	broker := &fakeBroker{}
	p, err := newRabbitPublisher("amqp://test", broker.dial, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, p.Publish(ctx, "booking.created", bookingEvent{BookingID: "b1"}))

	broker.restart()
	broker.down = true

	err = p.Publish(ctx, "booking.created", bookingEvent{BookingID: "b2"})
	assert.ErrorContains(t, err, "dial rabbitmq")

	broker.down = false
	require.NoError(t, p.Publish(ctx, "booking.created", bookingEvent{BookingID: "b3"}))

	require.Len(t, broker.conns, 2)
	fresh := broker.conns[1].channels[0]
	assert.Equal(t, []string{"booking.created"}, fresh.declared, "queue is declared again on the new channel")
	require.Len(t, fresh.published, 1)

	require.NoError(t, p.Close())
	assert.True(t, broker.conns[1].closed)
}

func TestRabbitPublisher_ReopensClosedChannel(t *testing.T) {
	broker := &fakeBroker{}
	p, err := newRabbitPublisher("amqp://test", broker.dial, zap.NewNop())
	require.NoError(t, err)

	broker.conns[0].channels[0].closed = true

	require.NoError(t, p.Publish(context.Background(), "booking.cancelled", bookingEvent{BookingID: "b1"}))
	assert.Len(t, broker.conns, 1, "connection is reused")
	require.Len(t, broker.conns[0].channels, 2)
	assert.Len(t, broker.conns[0].channels[1].published, 1)
}

func TestNewRabbitPublisher_EmptyURL(t *testing.T) {
	p, err := NewRabbitPublisher("", zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, Nop{}, p)
}
