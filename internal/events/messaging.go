package events

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventsExchange           = "koistore.events"
	CartChangedRoutingKey    = "cart.changed.v1"
	OrderSubmittedRoutingKey = "order.submitted.v1"
	producerName             = "koistore"
)

func Dial(url string) (*amqp.Connection, error) {
	const op = "events.Dial"

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return conn, nil
}

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}
