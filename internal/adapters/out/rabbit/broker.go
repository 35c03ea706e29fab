// Package rabbit implements the task broker ports on RabbitMQ. Queues
// are durable and deliveries persistent, so enqueued tasks survive broker
// restarts. Consumers acknowledge manually, which is what carries the
// at-least-once delivery guarantee.
package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// consumePrefetch bounds the unacknowledged deliveries per consumer so a
// stalled worker does not hoard messages other replicas could process.
const consumePrefetch = 1

// Broker is a RabbitMQ-backed implementation of TaskPublisher and
// TaskConsumer. One Broker owns one connection; the publisher side shares
// a channel guarded by a mutex, each consumed queue gets its own channel.
type Broker struct {
	conn *amqp.Connection

	mu        sync.Mutex
	publishCh *amqp.Channel
	declared  map[kernel.QueueName]bool
	consumers map[kernel.QueueName]<-chan amqp.Delivery
}

// Connect dials the broker at the given AMQP URL.
func Connect(url string) (*Broker, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	publishCh, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open publish channel: %w", err)
	}

	return &Broker{
		conn:      conn,
		publishCh: publishCh,
		declared:  make(map[kernel.QueueName]bool),
		consumers: make(map[kernel.QueueName]<-chan amqp.Delivery),
	}, nil
}

// Close shuts down the connection and all channels derived from it.
func (b *Broker) Close() error {
	return b.conn.Close()
}

func (b *Broker) declare(ch *amqp.Channel, queue kernel.QueueName) error {
	if b.declared[queue] {
		return nil
	}

	_, err := ch.QueueDeclare(
		string(queue),
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}

	b.declared[queue] = true
	return nil
}

// Publish sends the envelope to the named queue as a persistent JSON
// message, declaring the queue on first use.
func (b *Broker) Publish(ctx context.Context, queue kernel.QueueName, envelope ports.TaskEnvelope) error {
	if err := queue.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err = b.declare(b.publishCh, queue); err != nil {
		return err
	}

	return b.publishCh.PublishWithContext(ctx,
		"",            // default exchange
		string(queue), // routing key is the queue name
		false,         // mandatory
		false,         // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// Consume blocks until a message is available on the named queue or the
// context is canceled.
func (b *Broker) Consume(ctx context.Context, queue kernel.QueueName) (ports.TaskMessage, error) {
	if err := queue.Validate(); err != nil {
		return nil, err
	}

	deliveries, err := b.deliveries(queue)
	if err != nil {
		return nil, err
	}

	select {
	case delivery, ok := <-deliveries:
		if !ok {
			return nil, amqp.ErrClosed
		}
		return newMessage(delivery)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (b *Broker) deliveries(queue kernel.QueueName) (<-chan amqp.Delivery, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if existing, ok := b.consumers[queue]; ok {
		return existing, nil
	}

	ch, err := b.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open consume channel: %w", err)
	}

	if err = ch.Qos(consumePrefetch, 0, false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("set qos: %w", err)
	}

	if err = b.declare(ch, queue); err != nil {
		_ = ch.Close()
		return nil, err
	}

	deliveries, err := ch.Consume(
		string(queue),
		"",    // broker-generated consumer tag
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("consume queue %s: %w", queue, err)
	}

	b.consumers[queue] = deliveries
	return deliveries, nil
}

// message wraps one AMQP delivery.
type message struct {
	delivery amqp.Delivery
	envelope ports.TaskEnvelope
}

func newMessage(delivery amqp.Delivery) (*message, error) {
	var envelope ports.TaskEnvelope
	if err := json.Unmarshal(delivery.Body, &envelope); err != nil {
		// Unparsable payloads cannot be retried; drop them.
		_ = delivery.Nack(false, false)
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}

	return &message{delivery: delivery, envelope: envelope}, nil
}

func (m *message) Envelope() ports.TaskEnvelope {
	return m.envelope
}

func (m *message) Ack() error {
	return m.delivery.Ack(false)
}

func (m *message) Nack(requeue bool) error {
	return m.delivery.Nack(false, requeue)
}
