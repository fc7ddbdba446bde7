package events

import (
	"time"

	"koistore/internal/models"
)

// Envelope is the common wrapper of every published event.
type Envelope[T any] struct {
	EventName     string    `json:"eventName"`
	EventVersion  int       `json:"eventVersion"`
	EventID       string    `json:"eventId"`
	CorrelationID string    `json:"correlationId,omitempty"`
	Producer      string    `json:"producer"`
	PartitionKey  string    `json:"partitionKey"`
	OccurredAt    time.Time `json:"occurredAt"`
	Payload       T         `json:"payload"`
}

type CartChanged struct {
	SessionId string `json:"sessionId"`
	Revision  int64  `json:"revision"`
	ItemCount int    `json:"itemCount"`
	FishIds   []int  `json:"fishIds"`
}

func NewCartChanged(cart models.Cart) CartChanged {
	ids := make([]int, 0, len(cart.Items))
	for _, it := range cart.Items {
		ids = append(ids, it.Id)
	}
	return CartChanged{
		SessionId: cart.SessionId,
		Revision:  cart.Revision,
		ItemCount: len(cart.Items),
		FishIds:   ids,
	}
}

type OrderSubmitted struct {
	SessionId   string `json:"sessionId"`
	OrderId     int    `json:"orderId"`
	TotalAmount int64  `json:"totalAmount"`
	FishCount   int    `json:"fishCount"`
}
