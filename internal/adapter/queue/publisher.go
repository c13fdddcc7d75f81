// Package queue publishes appointment lifecycle events to RabbitMQ.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"clinic-booking/internal/domain/notification"
)

// RabbitPublisher dials per publish; events are rare and this keeps no
// long-lived broker connection around.
type RabbitPublisher struct {
	url  string
	dial func(url string) (*amqp.Connection, error)
}

var _ notification.Publisher = (*RabbitPublisher)(nil)

func NewRabbitPublisher(url string) *RabbitPublisher {
	return &RabbitPublisher{url: url, dial: amqp.Dial}
}

// Publish sends ev to a durable queue named after its type.
func (p *RabbitPublisher) Publish(ctx context.Context, ev notification.Event) error {
	conn, err := p.dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		ev.Type, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		return fmt.Errorf("rabbitmq queue declare %s: %w", ev.Type, err)
	}

	pub, err := buildPublishing(ev)
	if err != nil {
		return err
	}
	if err := ch.PublishWithContext(ctx, "", ev.Type, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish %s: %w", ev.Type, err)
	}
	return nil
}

func buildPublishing(ev notification.Event) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Type:         ev.Type,
		Timestamp:    ev.OccurredAt.UTC(),
		Body:         body,
	}, nil
}

// LogPublisher is used when no broker is configured.
type LogPublisher struct{ logger *log.Logger }

var _ notification.Publisher = (*LogPublisher)(nil)

func NewLogPublisher(l *log.Logger) *LogPublisher {
	if l == nil {
		l = log.Default()
	}
	return &LogPublisher{logger: l}
}

func (p *LogPublisher) Publish(_ context.Context, ev notification.Event) error {
	p.logger.Printf("event %s appointment=%d at %s", ev.Type, ev.AppointmentID, ev.OccurredAt.UTC().Format(time.RFC3339))
	return nil
}
