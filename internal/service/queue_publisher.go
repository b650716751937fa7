// Package queue_publisher publishes domain events to RabbitMQ. Errors
// are logged and returned so callers can ignore failures without
// interrupting the request flow; a dead broker must never fail a
// checkout that already committed.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/online-bookstore/internal/queue"
)

const orderPlacedQueue = "order.placed"

// PublishOrderPlaced publishes an OrderPlacedEvent to the order.placed
// queue with persistent delivery. The url comes from configuration; an
// empty url disables publishing entirely.
func PublishOrderPlaced(ctx context.Context, url string, event q.OrderPlacedEvent) error {
	if url == "" {
		return nil
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Declare idempotently; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(orderPlacedQueue, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", orderPlacedQueue, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
