package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/infrastructure/logger"
	"ritual_desk/internal/usecase/interfaces"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrPublisherClosed = errors.New("event publisher closed")

// AMQPPublisher publishes lifecycle events to a durable topic exchange. The
// event type is the routing key, so consumers can bind "quote.*" or
// "request.status_changed" directly.
type AMQPPublisher struct {
	url      string
	exchange string
	log      *logger.Logger

	mu     sync.Mutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	closed bool
}

var _ interfaces.IEventPublisher = (*AMQPPublisher)(nil)

// NewAMQPPublisher dials lazily; a broker that is down at startup does not
// keep the service from starting.
func NewAMQPPublisher(url, exchange string, log *logger.Logger) *AMQPPublisher {
	if log == nil {
		log = logger.NewNop()
	}
	return &AMQPPublisher{url: url, exchange: exchange, log: log}
}

func (p *AMQPPublisher) Publish(ctx context.Context, e entities.Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		p.log.Warn("[events][amqp] channel unavailable", "err", err)
		return err
	}

	err = ch.PublishWithContext(ctx,
		p.exchange,
		string(e.Type),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			MessageId:    e.AggregateID + ":" + string(e.Type) + ":" + e.OccurredAt.UTC().Format(time.RFC3339Nano),
			Type:         string(e.Type),
			Body:         body,
		},
	)
	if err != nil {
		// drop the channel so the next publish reconnects
		p.reset()
		return err
	}
	p.log.Debug("[events][amqp] published", "type", e.Type, "aggregate_id", e.AggregateID)
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.reset()
	return nil
}

// channel returns an open channel, dialing and declaring the exchange when
// needed. Callers hold mu.
func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	if p.closed {
		return nil, ErrPublisherClosed
	}
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn, p.ch = conn, ch
	p.log.Info("[events][amqp] connected", "exchange", p.exchange)
	return ch, nil
}

func (p *AMQPPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
