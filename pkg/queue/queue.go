// Package queue publishes domain events to RabbitMQ.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Publisher interface {
	// Publish sends event as JSON to the durable queue named by routingKey.
	Publish(ctx context.Context, routingKey string, event any) error
	Close() error
}

type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

type connection interface {
	Channel() (channel, error)
	IsClosed() bool
	Close() error
}

type dialFunc func(url string) (connection, error)

type amqpConnection struct{ *amqp.Connection }

func (c amqpConnection) Channel() (channel, error) {
	return c.Connection.Channel()
}

func dialAMQP(url string) (connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return amqpConnection{conn}, nil
}

type rabbitPublisher struct {
	mu       sync.Mutex
	url      string
	dial     dialFunc
	conn     connection
	ch       channel
	declared map[string]bool
	log      *zap.Logger
}

// NewRabbitPublisher dials url. With an empty url it returns Nop. A closed
// connection or channel, after a broker restart for example, is re-opened
// on the next Publish.
func NewRabbitPublisher(url string, log *zap.Logger) (Publisher, error) {
	if url == "" {
		return Nop{}, nil
	}
	p, err := newRabbitPublisher(url, dialAMQP, log)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func newRabbitPublisher(url string, dial dialFunc, log *zap.Logger) (*rabbitPublisher, error) {
	p := &rabbitPublisher{
		url:  url,
		dial: dial,
		log:  log.With(zap.String("component", "queue")),
	}
	if err := p.connect(); err != nil {
		if p.conn != nil {
			_ = p.conn.Close()
		}
		return nil, err
	}
	return p, nil
}

// connect opens whatever part of the connection is missing or closed.
// Callers hold mu, except the constructor.
func (p *rabbitPublisher) connect() error {
	if p.conn == nil || p.conn.IsClosed() {
		conn, err := p.dial(p.url)
		if err != nil {
			return fmt.Errorf("dial rabbitmq: %w", err)
		}
		p.conn = conn
		p.ch = nil
	}

	if p.ch == nil || p.ch.IsClosed() {
		ch, err := p.conn.Channel()
		if err != nil {
			return fmt.Errorf("open rabbitmq channel: %w", err)
		}
		p.ch = ch
		// queue declarations do not survive a broker restart
		p.declared = make(map[string]bool)
	}

	return nil
}

func (p *rabbitPublisher) open() bool {
	return p.conn != nil && !p.conn.IsClosed() && p.ch != nil && !p.ch.IsClosed()
}

func (p *rabbitPublisher) Publish(ctx context.Context, routingKey string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", routingKey, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.open() {
		p.log.Warn("RabbitMQ connection lost, reconnecting", zap.String("routing_key", routingKey))
		if err := p.connect(); err != nil {
			return err
		}
		p.log.Info("RabbitMQ connection restored")
	}

	if !p.declared[routingKey] {
		if _, err := p.ch.QueueDeclare(
			routingKey, // name
			true,       // durable
			false,      // autoDelete
			false,      // exclusive
			false,      // noWait
			nil,
		); err != nil {
			return fmt.Errorf("declare queue %s: %w", routingKey, err)
		}
		p.declared[routingKey] = true
	}

	err = p.ch.PublishWithContext(ctx,
		"",         // default exchange
		routingKey, // routing key = queue name
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	p.log.Debug("Event published", zap.String("routing_key", routingKey))
	return nil
}

func (p *rabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil && !p.ch.IsClosed() {
		if err := p.ch.Close(); err != nil {
			p.log.Warn("Close rabbitmq channel", zap.Error(err))
		}
	}
	if p.conn == nil || p.conn.IsClosed() {
		return nil
	}
	return p.conn.Close()
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
func (Nop) Close() error                              { return nil }
