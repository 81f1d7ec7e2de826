package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"fittrack/internal/events"
)

// EventPublisher pushes activity events onto a durable queue for the audit
// worker. Each publish opens its own channel; publish volume tracks activity
// creation, which is low enough that channel reuse is not worth the locking.
type EventPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewEventPublisher(conn *amqp.Connection, queueName string) *EventPublisher {
	return &EventPublisher{conn: conn, queueName: queueName}
}

func (p *EventPublisher) Publish(ctx context.Context, event events.ActivityCreated) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	// Declare is idempotent and keeps publisher and consumer agreeing on
	// queue properties regardless of start order.
	if _, err := ch.QueueDeclare(p.queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event payload failed: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    event.EventID,
		Type:         event.Action,
		Timestamp:    event.OccurredAt,
		Body:         payload,
		DeliveryMode: amqp.Persistent,
	}
	if err := ch.PublishWithContext(ctx, "", p.queueName, false, false, pub); err != nil {
		return fmt.Errorf("publish event failed: %w", err)
	}
	return nil
}
