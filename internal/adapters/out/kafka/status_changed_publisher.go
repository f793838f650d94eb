// Package kafka publishes domain events to Kafka for external consumers
// such as notification services and clinic-facing chat. Publication is
// best-effort by contract: a transition that already committed must never
// be failed or retried because the broker is down.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"dentallab/internal/core/domain/model/order"

	segmentio "github.com/segmentio/kafka-go"
)

// StatusChangedPublisher writes StatusChanged events to a Kafka topic.
// Messages are keyed by order ID so all events of one order land in the
// same partition and consumers observe them in transition order.
type StatusChangedPublisher struct {
	writer *segmentio.Writer
}

// NewStatusChangedPublisher creates a publisher for the given brokers and topic.
// The caller owns the publisher lifecycle and must Close it on shutdown.
func NewStatusChangedPublisher(brokers []string, topic string) *StatusChangedPublisher {
	return &StatusChangedPublisher{
		writer: &segmentio.Writer{
			Addr:         segmentio.TCP(brokers...),
			Topic:        topic,
			Balancer:     &segmentio.Hash{},
			RequiredAcks: segmentio.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// statusChangedMessage is the wire representation of a StatusChanged event.
// fromStatus is null for the event emitted when an order is registered.
type statusChangedMessage struct {
	OrderID     string    `json:"orderId"`
	FromStatus  *string   `json:"fromStatus"`
	ToStatus    string    `json:"toStatus"`
	PerformedBy string    `json:"performedBy"`
	Role        string    `json:"role"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// Publish writes one event to the topic.
func (p *StatusChangedPublisher) Publish(ctx context.Context, event order.StatusChanged) error {
	value, err := json.Marshal(newStatusChangedMessage(event))
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, segmentio.Message{
		Key:   []byte(event.OrderID.String()),
		Value: value,
	})
}

// Close flushes pending messages and releases the writer.
func (p *StatusChangedPublisher) Close() error {
	return p.writer.Close()
}

func newStatusChangedMessage(event order.StatusChanged) statusChangedMessage {
	var fromStatus *string
	if event.From != nil {
		name := event.From.String()
		fromStatus = &name
	}

	return statusChangedMessage{
		OrderID:     event.OrderID.String(),
		FromStatus:  fromStatus,
		ToStatus:    event.To.String(),
		PerformedBy: event.PerformedBy.ID(),
		Role:        event.PerformedBy.Role().String(),
		OccurredAt:  event.OccurredAt,
	}
}
