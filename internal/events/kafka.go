package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/SergeyBogomolovv/order-service/internal/config"
	"github.com/SergeyBogomolovv/order-service/internal/entities"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// OrderEvent сообщение о жизненном цикле заказа
type OrderEvent struct {
	EventID     string          `json:"event_id"`
	Type        string          `json:"type"`
	OrderID     int64           `json:"order_id"`
	OwnerID     string          `json:"owner_id,omitempty"`
	Status      string          `json:"status,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	logger *slog.Logger
	writer messageWriter
}

func NewKafkaPublisher(logger *slog.Logger, cfg config.Kafka) *kafkaPublisher {
	return &kafkaPublisher{
		logger: logger.With(slog.String("publisher", "kafka")),
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: cfg.BatchTimeout,
		},
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, e entities.OrderEvent) error {
	msg, err := newMessage(e)
	if err != nil {
		return err
	}

	// в библиотеке уже есть retry
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	p.logger.Debug("event published", slog.String("type", string(e.Type)), slog.Int64("order_id", e.Order.ID))
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

func newMessage(e entities.OrderEvent) (kafka.Message, error) {
	payload := OrderEvent{
		EventID:     uuid.NewString(),
		Type:        string(e.Type),
		OrderID:     e.Order.ID,
		OwnerID:     e.Order.OwnerID,
		Status:      string(e.Order.Status),
		TotalAmount: e.Order.TotalAmount,
		OccurredAt:  e.OccurredAt.UTC(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	return kafka.Message{
		Key:   []byte(strconv.FormatInt(e.Order.ID, 10)),
		Value: data,
		Time:  payload.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(payload.Type)},
		},
	}, nil
}

// NoopPublisher используется, когда Kafka отключена
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, entities.OrderEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
