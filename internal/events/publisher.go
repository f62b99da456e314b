// Package events publishes reservation audit events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/BruksfildServices01/table-booking/internal/audit"
)

// Message is the JSON body put on the queue.
type Message struct {
	Type       string    `json:"type"`
	Entity     string    `json:"entity"`
	EntityID   string    `json:"entity_id"`
	Data       any       `json:"data,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func toMessage(ev audit.Event) Message {
	return Message{
		Type:       ev.Action,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		Data:       ev.Metadata,
		OccurredAt: ev.At.UTC(),
	}
}

// Publisher keeps one connection and channel, reopened after a failure.
type Publisher struct {
	url   string
	queue string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(url string, queue string) *Publisher {
	return &Publisher{url: url, queue: queue}
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.closeLocked()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	// fila durável, idempotente
	if _, err := ch.QueueDeclare(
		p.queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *Publisher) Write(ctx context.Context, ev audit.Event) error {
	body, err := json.Marshal(toMessage(ev))
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Type:         ev.Action,
			Timestamp:    ev.At.UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.closeLocked()
	}
	return err
}

func (p *Publisher) closeLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
}

var _ audit.Sink = (*Publisher)(nil)
