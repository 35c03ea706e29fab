package kernel

import (
	"fmt"
	"strings"

	"tasking/internal/pkg/errs"
)

// DispatchQueueName is the queue consumed by the resource manager.
// Every newly enqueued or requeued task is published here first.
const DispatchQueueName QueueName = "tasking.dispatch"

// workerQueuePrefix namespaces the per-worker queues on the broker.
const workerQueuePrefix = "tasking.worker."

// QueueName names a durable broker queue. The zero value is invalid.
type QueueName string

// NewWorkerQueueName derives the dedicated queue name for a worker.
// Worker names come from worker registration and are already validated
// there; this only guards against the empty string.
func NewWorkerQueueName(workerName string) (QueueName, error) {
	if workerName == "" {
		return "", errs.NewValueIsRequiredError("worker name")
	}
	return QueueName(workerQueuePrefix + workerName), nil
}

// String returns the queue name as used on the broker.
func (q QueueName) String() string {
	return string(q)
}

// Validate checks that the queue name belongs to this application's
// namespace: either the dispatch queue or a worker queue.
func (q QueueName) Validate() error {
	if q == DispatchQueueName {
		return nil
	}
	if strings.HasPrefix(string(q), workerQueuePrefix) && len(q) > len(workerQueuePrefix) {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"queue name",
		fmt.Errorf("%q is not a tasking queue", string(q)),
	)
}
