package ports

import (
	"context"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/task"
)

// TaskEnvelope is the wire format carried on broker queues. It is a
// pointer to a task, not the task state: the database stays the source of
// truth, and a stale envelope for a task that already moved on is detected
// by the status state machine and acknowledged.
type TaskEnvelope struct {
	TaskID   string `json:"task_id"`
	Name     string `json:"name"`
	Resource string `json:"resource,omitempty"`
	Attempt  int    `json:"attempt"`
}

// NewTaskEnvelope builds the envelope published for a task.
func NewTaskEnvelope(t *task.Task) TaskEnvelope {
	envelope := TaskEnvelope{
		TaskID:  t.ID().String(),
		Name:    t.Name(),
		Attempt: t.Attempts(),
	}
	if resource := t.Resource(); resource != nil {
		envelope.Resource = resource.String()
	}
	return envelope
}

// ParseTaskID parses the envelope's task identifier.
func (e TaskEnvelope) ParseTaskID() (kernel.UUID, error) {
	return kernel.UUIDFromString(e.TaskID)
}

// TaskPublisher publishes task envelopes to durable broker queues.
type TaskPublisher interface {
	// Publish enqueues the envelope on the named queue. The message must
	// survive a broker restart once Publish returns.
	Publish(ctx context.Context, queue kernel.QueueName, envelope TaskEnvelope) error
}

// TaskConsumer delivers task envelopes from a durable broker queue.
type TaskConsumer interface {
	// Consume blocks until a message is available on the named queue or
	// the context is canceled.
	Consume(ctx context.Context, queue kernel.QueueName) (TaskMessage, error)
}

// TaskMessage is a single in-flight delivery. Every message must be
// settled exactly once with Ack or Nack; unsettled messages are redelivered
// after the consumer disconnects, which is what makes dispatch
// at-least-once.
type TaskMessage interface {
	// Envelope returns the carried task envelope.
	Envelope() TaskEnvelope

	// Ack acknowledges successful processing; the broker drops the
	// message.
	Ack() error

	// Nack signals failed processing. With requeue the broker redelivers
	// the message later; without it the message is dropped.
	Nack(requeue bool) error
}
