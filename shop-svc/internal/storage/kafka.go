package storage

import (
	"context"
	"encoding/json"

	"foodwala-storefront/shop-svc/internal/domain"
	"foodwala-storefront/shop-svc/internal/order"

	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaPublisher appends an order_placed event per checkout to the orders
// topic.
type KafkaPublisher struct {
	Writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) Name() string {
	return "kafka"
}

func (p *KafkaPublisher) PublishOrder(ctx context.Context, event domain.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Reference),
		Value: payload,
	})
}

func (p *KafkaPublisher) LogOrder(ctx context.Context, summary domain.OrderSummary) error {
	return p.PublishOrder(ctx, order.NewOrderEvent(summary))
}
