package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/economize/economize-backend/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

const writeTimeout = 5 * time.Second

// messageWriter is the part of kafka.Writer the publisher uses
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher forwards change-feed events to a Kafka topic, keyed by entity
type Publisher struct {
	writer messageWriter
}

// NewPublisher creates a publisher writing to topic on brokers.
// Writes are asynchronous; delivery failures surface in logCompletion.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
			Async:        true,
			Completion:   logCompletion,
		},
	}
}

// logCompletion reports the outcome of an asynchronous batch
func logCompletion(messages []kafka.Message, err error) {
	if err == nil {
		log.Debug().Int("messages", len(messages)).Msg("Delivered Kafka events")
		return
	}
	for _, msg := range messages {
		log.Error().
			Err(err).
			Str("event", headerValue(msg, "type")).
			Msg("Failed to deliver Kafka event")
	}
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// BuildMessage converts an event into a Kafka message
func BuildMessage(event websocket.Event) (kafka.Message, error) {
	data, err := event.ToJSON()
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(event.Entity),
		Value: data,
		Time:  event.Timestamp,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}, nil
}

// Publish implements websocket.EventPublisher. It only queues the message,
// so a slow or unreachable broker never delays the caller. Failures are logged.
func (p *Publisher) Publish(event websocket.Event) {
	msg, err := BuildMessage(event)
	if err != nil {
		log.Error().Err(err).Str("event", event.Type).Msg("Failed to encode Kafka event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.Error().Err(err).Str("event", event.Type).Msg("Failed to publish Kafka event")
	}
}

// Close flushes and closes the writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ websocket.EventPublisher = (*Publisher)(nil)
