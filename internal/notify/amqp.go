package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/streadway/amqp"
)

// DefaultExchange is fanout exchange requirement events are published to
const DefaultExchange = "leads.requirements"

// AmqpPublisher publishes events to fanout exchange
type AmqpPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewAmqpPublisher dials broker and declares durable fanout exchange
func NewAmqpPublisher(url, exchange string) (*AmqpPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to message broker - %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel - %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s - %w", exchange, err)
	}

	return &AmqpPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// Notify publishes event as persistent JSON message routed by event type
func (p *AmqpPublisher) Notify(_ context.Context, e Event) error {
	msg, err := Publishing(e)
	if err != nil {
		return err
	}

	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.Publish(p.exchange, string(e.Type), false, false, msg)
}

// Close closes channel and connection
func (p *AmqpPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// Publishing builds broker message for event
func Publishing(e Event) (amqp.Publishing, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return amqp.Publishing{}, err
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         string(e.Type),
		MessageId:    e.RequirementID,
		Timestamp:    e.At,
		Body:         body,
	}, nil
}
