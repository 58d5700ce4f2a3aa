package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// defaultDialTimeout bounds connection setup when the caller's context has
// no deadline.
const defaultDialTimeout = 5 * time.Second

// Publisher sends ActivityEvents to a durable topic exchange.  The
// connection is opened on first use and reopened after a failure.  Every
// step, including waiting for another publish to finish, is bounded by the
// caller's context.
type Publisher struct {
	url      string
	exchange string

	sem  chan struct{} // one publish at a time
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(url, exchange string) *Publisher {
	return &Publisher{url: url, exchange: exchange, sem: make(chan struct{}, 1)}
}

func (p *Publisher) acquire(ctx context.Context) error {
	select {
	case p.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Publisher) release() { <-p.sem }

// dialTimeout is the time left before ctx expires, or defaultDialTimeout.
func dialTimeout(ctx context.Context) time.Duration {
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left > 0 {
			return left
		}
		return time.Millisecond
	}
	return defaultDialTimeout
}

// channel returns an open channel, dialing and declaring the exchange if
// needed.  Callers hold the semaphore.
func (p *Publisher) channel(ctx context.Context) (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	// DefaultDial also sets a deadline covering the AMQP handshake.
	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(dialTimeout(ctx))})
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.ch, p.conn = nil, nil
}

// PublishActivity publishes ev as a persistent JSON message.
func (p *Publisher) PublishActivity(ctx context.Context, ev ActivityEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal activity: %w", err)
	}

	if err := p.acquire(ctx); err != nil {
		return fmt.Errorf("publish activity: %w", err)
	}
	defer p.release()

	ch, err := p.channel(ctx)
	if err != nil {
		return err
	}
	err = ch.PublishWithContext(ctx, p.exchange, ev.RoutingKey(), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         string(ev.Action),
		Body:         body,
	})
	if err != nil {
		p.reset()
		return fmt.Errorf("publish activity: %w", err)
	}
	return nil
}

// Close releases the broker connection.
func (p *Publisher) Close() error {
	p.sem <- struct{}{}
	defer p.release()
	p.reset()
	return nil
}
