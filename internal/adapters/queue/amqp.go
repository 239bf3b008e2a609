package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"meetapp/internal/domain"
)

// Publisher implements domain.Notifier on top of a RabbitMQ channel. The
// topic is used as the routing key; messages are persistent JSON so they
// survive a broker restart.
type Publisher struct {
	ch *amqp.Channel
}

// NewPublisher declares a durable queue per topic and returns a Publisher.
func NewPublisher(ch *amqp.Channel, topics ...string) (*Publisher, error) {
	for _, topic := range topics {
		if _, err := ch.QueueDeclare(topic, true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("declare queue %s: %w", topic, err)
		}
	}
	return &Publisher{ch: ch}, nil
}

func (p *Publisher) Enqueue(ctx context.Context, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	err = p.ch.Publish(
		"", // default exchange routes by queue name
		topic,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// Consume reads messages from topic and calls handler for each one until
// ctx is cancelled. Messages are acked on success and requeued on handler
// error, giving at-least-once delivery.
func Consume(ctx context.Context, ch *amqp.Channel, topic string, logger *slog.Logger, handler func([]byte) error) error {
	if _, err := ch.QueueDeclare(topic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", topic, err)
	}
	deliveries, err := ch.Consume(topic, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", topic, err)
	}
	for {
		select {
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			if err := handler(d.Body); err != nil {
				logger.Error("message handling failed, requeueing", "topic", topic, "err", err)
				if nackErr := d.Nack(false, true); nackErr != nil {
					logger.Error("nack failed", "err", nackErr)
				}
				continue
			}
			if ackErr := d.Ack(false); ackErr != nil {
				logger.Error("ack failed", "err", ackErr)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// NoopNotifier drops every notice; used when no broker is configured.
type NoopNotifier struct {
	Logger *slog.Logger
}

func (n NoopNotifier) Enqueue(ctx context.Context, topic string, payload any) error {
	n.Logger.DebugContext(ctx, "notification dropped (noop notifier)", "topic", topic)
	return nil
}

var _ domain.Notifier = (*Publisher)(nil)
var _ domain.Notifier = NoopNotifier{}
