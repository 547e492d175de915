package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"foodwala-storefront/shop-svc/internal/domain"
	"foodwala-storefront/shop-svc/internal/order"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// OrderFeed follows the orders topic and hands each order_placed event to
// Handle. It backs the operator's order tail.
type OrderFeed struct {
	Reader MessageReader
	Handle func(event domain.OrderEvent)
	Logger *zap.Logger
}

func NewOrderFeed(reader MessageReader, handle func(domain.OrderEvent), logger *zap.Logger) *OrderFeed {
	return &OrderFeed{
		Reader: reader,
		Handle: handle,
		Logger: logger.With(zap.String("component", "order-feed")),
	}
}

// Start reads until ctx is cancelled or the reader is closed.
func (f *OrderFeed) Start(ctx context.Context) error {
	f.Logger.Info("following order events")
	for {
		message, err := f.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			f.Logger.Warn("error reading message", zap.Error(err))
			return err
		}
		f.Process(message.Value)
	}
}

// Process decodes one message and reports whether it was handled.
func (f *OrderFeed) Process(value []byte) bool {
	var event domain.OrderEvent
	if err := json.Unmarshal(value, &event); err != nil {
		f.Logger.Warn("error unmarshaling message", zap.Error(err))
		return false
	}
	if event.Type != order.EventOrderPlaced {
		return false
	}
	f.Handle(event)
	return true
}
