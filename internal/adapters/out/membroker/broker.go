// Package membroker provides an in-memory implementation of the task
// broker ports. It backs single-process deployments and tests; durability
// is limited to the process lifetime.
package membroker

import (
	"context"
	"sync"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/ports"
)

const defaultQueueDepth = 1024

// Broker is an in-memory queue fabric. Queues are created on first use;
// unacknowledged messages are redelivered on Nack with requeue.
type Broker struct {
	mu     sync.Mutex
	queues map[kernel.QueueName]chan ports.TaskEnvelope
	depth  int
}

// New creates an in-memory broker with the default queue depth.
func New() *Broker {
	return NewWithDepth(defaultQueueDepth)
}

// NewWithDepth creates an in-memory broker whose queues buffer up to
// depth messages each.
func NewWithDepth(depth int) *Broker {
	return &Broker{
		queues: make(map[kernel.QueueName]chan ports.TaskEnvelope),
		depth:  depth,
	}
}

func (b *Broker) queue(name kernel.QueueName) chan ports.TaskEnvelope {
	b.mu.Lock()
	defer b.mu.Unlock()

	q, ok := b.queues[name]
	if !ok {
		q = make(chan ports.TaskEnvelope, b.depth)
		b.queues[name] = q
	}
	return q
}

// Publish enqueues the envelope on the named queue. Blocks when the queue
// is full until there is room or the context is canceled.
func (b *Broker) Publish(ctx context.Context, queue kernel.QueueName, envelope ports.TaskEnvelope) error {
	if err := queue.Validate(); err != nil {
		return err
	}

	select {
	case b.queue(queue) <- envelope:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume blocks until a message is available on the named queue or the
// context is canceled.
func (b *Broker) Consume(ctx context.Context, queue kernel.QueueName) (ports.TaskMessage, error) {
	if err := queue.Validate(); err != nil {
		return nil, err
	}

	select {
	case envelope := <-b.queue(queue):
		return &message{broker: b, queue: queue, envelope: envelope}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// message is a single in-memory delivery.
type message struct {
	broker   *Broker
	queue    kernel.QueueName
	envelope ports.TaskEnvelope
}

func (m *message) Envelope() ports.TaskEnvelope {
	return m.envelope
}

// Ack drops the message.
func (m *message) Ack() error {
	return nil
}

// Nack redelivers the message to the back of its queue when requeue is
// set, otherwise drops it.
func (m *message) Nack(requeue bool) error {
	if !requeue {
		return nil
	}

	select {
	case m.broker.queue(m.queue) <- m.envelope:
		return nil
	default:
		return ErrQueueFull
	}
}
