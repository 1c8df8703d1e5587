package amqp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dafibh/economize/economize-backend/internal/websocket"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const publishTimeout = 5 * time.Second

// Publisher forwards change-feed events to a topic exchange.
// The routing key is the event type, e.g. "entry.created".
type Publisher struct {
	mu           sync.Mutex
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
}

// NewPublisher dials url and declares the exchange
func NewPublisher(url, exchangeName string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p := &Publisher{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
	}

	err = channel.ExchangeDeclare(
		exchangeName, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return p, nil
}

// BuildPublishing converts an event into an AMQP message
func BuildPublishing(event websocket.Event) (amqp091.Publishing, error) {
	body, err := event.ToJSON()
	if err != nil {
		return amqp091.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}
	return amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    event.Timestamp,
		Type:         event.Type,
		Body:         body,
	}, nil
}

// Publish implements websocket.EventPublisher. Failures are logged, never returned.
func (p *Publisher) Publish(event websocket.Event) {
	msg, err := BuildPublishing(event)
	if err != nil {
		log.Error().Err(err).Str("event", event.Type).Msg("Failed to encode AMQP event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	// amqp091 channels are not safe for concurrent publishes
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchangeName, // exchange
		event.Type,     // routing key
		false,          // mandatory
		false,          // immediate
		msg,
	)
	if err != nil {
		log.Error().Err(err).Str("event", event.Type).Str("exchange", p.exchangeName).Msg("Failed to publish AMQP event")
		return
	}

	log.Debug().Str("event", event.Type).Str("exchange", p.exchangeName).Msg("Published AMQP event")
}

// Close closes the channel and the connection
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

var _ websocket.EventPublisher = (*Publisher)(nil)
