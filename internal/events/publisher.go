package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"koistore/internal/middleware"
	"koistore/internal/models"
	"koistore/pkg/lib/logger/sl"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 3 * time.Second

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	log *slog.Logger
	ch  channel
	now func() time.Time
}

func NewPublisher(log *slog.Logger, conn *amqp.Connection) (*Publisher, error) {
	const op = "events.NewPublisher"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: open channel: %w", op, err)
	}

	if err := declareEventsExchange(ch); err != nil {
		ch.Close()
		return nil, fmt.Errorf("%s: declare exchange: %w", op, err)
	}

	return newPublisher(log, ch), nil
}

func newPublisher(log *slog.Logger, ch channel) *Publisher {
	return &Publisher{log: log, ch: ch, now: time.Now}
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) CartChanged(ctx context.Context, cart models.Cart) error {
	const op = "events.Publisher.CartChanged"
	return publish(ctx, p, op, "CartChanged", CartChangedRoutingKey, cart.SessionId, NewCartChanged(cart))
}

func (p *Publisher) OrderSubmitted(ctx context.Context, sessionId string, order models.Order, fishCount int) error {
	const op = "events.Publisher.OrderSubmitted"
	return publish(ctx, p, op, "OrderSubmitted", OrderSubmittedRoutingKey, sessionId, OrderSubmitted{
		SessionId:   sessionId,
		OrderId:     order.Id,
		TotalAmount: order.TotalAmount,
		FishCount:   fishCount,
	})
}

func publish[T any](ctx context.Context, p *Publisher, op, name, routingKey, partitionKey string, payload T) error {
	log := p.log.With("op", op)

	env := Envelope[T]{
		EventName:     name,
		EventVersion:  1,
		EventID:       uuid.NewString(),
		CorrelationID: middleware.GetCorrelationID(ctx),
		Producer:      producerName,
		PartitionKey:  partitionKey,
		OccurredAt:    p.now().UTC(),
		Payload:       payload,
	}

	body, err := json.Marshal(env)
	if err != nil {
		log.Error("Failed to marshal event", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     env.EventID,
			CorrelationId: env.CorrelationID,
			Timestamp:     env.OccurredAt,
			Body:          body,
		},
	); err != nil {
		log.Error("Failed to publish event", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Noop drops every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) CartChanged(context.Context, models.Cart) error { return nil }

func (Noop) OrderSubmitted(context.Context, string, models.Order, int) error { return nil }
