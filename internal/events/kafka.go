// Package events publishes cart events to a message broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nikolayk812/cart-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type KafkaConfig struct {
	Brokers     []string
	Topic       string
	MaxAttempts int
}

// Kafka writes cart events keyed by session ID, so the events of one cart
// land on one partition in order.
type Kafka struct {
	writer messageWriter
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafka builds a synchronous publisher that flushes every event at once
// rather than waiting for kafka-go's default one second batch timeout.
func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("brokers are empty")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("topic is empty")
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}

	return &Kafka{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			RequiredAcks:           kafka.RequireAll,
			BatchSize:              1,
			BatchTimeout:           10 * time.Millisecond,
			MaxAttempts:            cfg.MaxAttempts,
			WriteBackoffMin:        100 * time.Millisecond,
			WriteBackoffMax:        time.Second,
		},
	}, nil
}

func (k *Kafka) Publish(ctx context.Context, event domain.CartEvent) error {
	msg, err := toMessage(event)
	if err != nil {
		return fmt.Errorf("toMessage: %w", err)
	}

	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writer.WriteMessages: %w", err)
	}

	return nil
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}

func toMessage(event domain.CartEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("json.Marshal: %w", err)
	}

	return kafka.Message{
		Key:   []byte(event.SessionID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}, nil
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, domain.CartEvent) error { return nil }
