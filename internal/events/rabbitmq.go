package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/storefront-labs/storefront-api/internal/config"
)

// channel is the part of *amqp.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher forwards events to a topic exchange, routed by event name.
type RabbitPublisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
}

func NewRabbitPublisher(cfg config.RabbitMQ) (*RabbitPublisher, error) {

	slog.Info("Connecting to RabbitMQ", slog.String("exchange", cfg.Exchange))

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &RabbitPublisher{conn: conn, ch: ch, exchange: cfg.Exchange}, nil
}

func newRabbitPublisherWithChannel(ch channel, exchange string) *RabbitPublisher {
	return &RabbitPublisher{ch: ch, exchange: exchange}
}

func (p *RabbitPublisher) Name() string {
	return "rabbitmq"
}

func (p *RabbitPublisher) HandleOrderCreated(ctx context.Context, event OrderCreated) error {

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    OrderCreatedEvent + ":" + strconv.FormatInt(event.Order.ID, 10),
		Timestamp:    time.Now(),
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx, p.exchange, OrderCreatedEvent, false, false, msg); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	return nil
}

// Ping reports whether the broker connection is still open.
func (p *RabbitPublisher) Ping(ctx context.Context) error {
	if p.conn == nil || p.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}

	return nil
}

func (p *RabbitPublisher) Close() error {

	var errs []error

	if err := p.ch.Close(); err != nil {
		errs = append(errs, err)
	}

	if p.conn != nil {
		if err := p.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
