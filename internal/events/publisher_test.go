package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"koistore/internal/middleware"
	"koistore/internal/models"
	"koistore/pkg/lib/logger/slogdiscard"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	sent []published
	err  error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error { return nil }

func TestPublisher_CartChanged(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(slogdiscard.NewDiscardLogger(), ch)
	p.now = func() time.Time { return time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC) }

	ctx := middleware.WithCorrelationID(context.Background(), "cid")
	cart := models.Cart{
		SessionId: "sid",
		Revision:  3,
		Items:     []models.CartItem{{KoiFish: models.KoiFish{Id: 7}}, {KoiFish: models.KoiFish{Id: 9}}},
	}
	require.NoError(t, p.CartChanged(ctx, cart))

	require.Len(t, ch.sent, 1)
	got := ch.sent[0]
	assert.Equal(t, EventsExchange, got.exchange)
	assert.Equal(t, CartChangedRoutingKey, got.key)
	assert.Equal(t, "cid", got.msg.CorrelationId)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)

	var env Envelope[CartChanged]
	require.NoError(t, json.Unmarshal(got.msg.Body, &env))
	assert.Equal(t, "CartChanged", env.EventName)
	assert.Equal(t, "sid", env.PartitionKey)
	assert.Equal(t, got.msg.MessageId, env.EventID)
	assert.Equal(t, CartChanged{SessionId: "sid", Revision: 3, ItemCount: 2, FishIds: []int{7, 9}}, env.Payload)
}

func TestPublisher_OrderSubmitted(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(slogdiscard.NewDiscardLogger(), ch)

	require.NoError(t, p.OrderSubmitted(context.Background(), "sid", models.Order{Id: 44, TotalAmount: 5_100_000}, 1))

	var env Envelope[OrderSubmitted]
	require.NoError(t, json.Unmarshal(ch.sent[0].msg.Body, &env))
	assert.Equal(t, OrderSubmittedRoutingKey, ch.sent[0].key)
	assert.Equal(t, OrderSubmitted{SessionId: "sid", OrderId: 44, TotalAmount: 5_100_000, FishCount: 1}, env.Payload)
}

func TestPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := newPublisher(slogdiscard.NewDiscardLogger(), ch)

	err := p.CartChanged(context.Background(), models.Cart{SessionId: "sid"})
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	var n Noop
	assert.NoError(t, n.CartChanged(context.Background(), models.Cart{}))
	assert.NoError(t, n.OrderSubmitted(context.Background(), "sid", models.Order{}, 0))
}
