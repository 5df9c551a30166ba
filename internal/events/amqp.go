package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// AMQPPublisher publishes events to a durable direct exchange. The routing
// key is the queue name so a single bound queue receives every event type.
type AMQPPublisher struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
	logger       zerolog.Logger
	mu           sync.Mutex
}

func NewAMQPPublisher(url, exchangeName, queueName string, logger zerolog.Logger) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p := &AMQPPublisher{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
		logger:       logger,
	}
	if err := p.setup(); err != nil {
		p.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}
	return p, nil
}

func (p *AMQPPublisher) setup() error {
	if err := p.channel.ExchangeDeclare(p.exchangeName, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	if _, err := p.channel.QueueDeclare(p.queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := p.channel.QueueBind(p.queueName, p.queueName, p.exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, e Event) error {
	body, err := e.JSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// amqp091 channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.PublishWithContext(ctx, p.exchangeName, p.queueName, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Type:         string(e.Type),
		MessageId:    e.DonationID + ":" + string(e.Type),
		Timestamp:    e.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}

	p.logger.Info().
		Str("event", string(e.Type)).
		Str("donation_id", e.DonationID).
		Str("exchange", p.exchangeName).
		Msg("event published")
	return nil
}

func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

var _ Publisher = (*AMQPPublisher)(nil)
