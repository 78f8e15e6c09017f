package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	EventTicketSold     = "ticket.sold"
	EventTicketRefunded = "ticket.refunded"
)

// InventoryEvent is the message published after a successful sell or refund.
type InventoryEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	TicketID   int64     `json:"ticketId"`
	Quantity   int       `json:"quantity"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Producer struct {
	Writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers: brokers,
		Topic:   topic,
	})
	return &Producer{Writer: writer}
}

func (p *Producer) PublishTicketSold(ctx context.Context, ticketID int64, quantity int) error {
	return p.publish(ctx, EventTicketSold, ticketID, quantity)
}

func (p *Producer) PublishTicketRefunded(ctx context.Context, ticketID int64, quantity int) error {
	return p.publish(ctx, EventTicketRefunded, ticketID, quantity)
}

func (p *Producer) publish(ctx context.Context, eventType string, ticketID int64, quantity int) error {
	event := InventoryEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		TicketID:   ticketID,
		Quantity:   quantity,
		OccurredAt: time.Now().UTC(),
	}

	msgBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(ctx,
		kafka.Message{
			Key:   []byte(event.ID),
			Value: msgBytes,
		},
	)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
