package task

import (
	"errors"
	"fmt"
	"time"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/pkg/errs"
)

// MaxRetriesLimit bounds how often a single task may be requeued.
const MaxRetriesLimit = 100

var (
	// ErrTaskIsNotConstructed is returned when a Task instance was not
	// created through NewTask or RestoreTask.
	ErrTaskIsNotConstructed = errors.New("Task must be created via NewTask or RestoreTask constructor")

	// ErrNoRetriesLeft is returned by Requeue when the task has exhausted
	// its retry budget and must be failed instead.
	ErrNoRetriesLeft = errors.New("no retries left")
)

// Task is the aggregate root for a unit of work flowing through the system.
// It tracks the dispatch state machine, the optional named resource whose
// access must be serialized, the retry budget, and the execution outcome.
//
// Invariants:
//   - must have a valid unique identifier and a non-empty handler name
//   - a Dispatched or Running task always has a worker assigned
//   - attempts never exceeds maxRetries
//   - status transitions follow the Status state machine
type Task struct {
	id         kernel.UUID
	name       string
	resource   *kernel.ResourceName
	payload    []byte
	status     Status
	workerID   *kernel.UUID
	attempts   int
	maxRetries int
	result     []byte
	failure    string
	enqueuedAt time.Time
	startedAt  *time.Time
	finishedAt *time.Time

	isConstructed bool
}

// NewTask creates a Waiting task ready to be published to the dispatch
// queue.
//
// Parameters:
//   - id: unique task identifier
//   - name: registered handler name executed by workers (must be non-empty)
//   - resource: optional resource whose tasks are serialized; nil for
//     unconstrained tasks
//   - payload: handler input, opaque JSON
//   - maxRetries: how many times the task may be requeued after a
//     retryable failure (0..MaxRetriesLimit)
func NewTask(
	id kernel.UUID,
	name string,
	resource *kernel.ResourceName,
	payload []byte,
	maxRetries int,
) (*Task, error) {
	t := &Task{
		status:        Waiting,
		enqueuedAt:    time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setName(name),
		t.setResource(resource),
		t.setMaxRetries(maxRetries),
	); err != nil {
		return nil, err
	}

	t.payload = payload
	return t, nil
}

// RestoreTask reconstructs a task from persistence without running the
// construction-time defaults. The stored state is validated for internal
// consistency.
func RestoreTask(
	id kernel.UUID,
	name string,
	resource *kernel.ResourceName,
	payload []byte,
	status Status,
	workerID *kernel.UUID,
	attempts int,
	maxRetries int,
	result []byte,
	failure string,
	enqueuedAt time.Time,
	startedAt *time.Time,
	finishedAt *time.Time,
) (*Task, error) {
	t := &Task{
		status:        status,
		payload:       payload,
		result:        result,
		failure:       failure,
		enqueuedAt:    enqueuedAt,
		startedAt:     startedAt,
		finishedAt:    finishedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setName(name),
		t.setResource(resource),
		t.setMaxRetries(maxRetries),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if attempts < 0 || attempts > maxRetries {
		return nil, errs.NewValueIsOutOfRangeError("attempts", attempts, 0, maxRetries)
	}
	t.attempts = attempts

	if workerID != nil {
		if err := workerID.Validate(); err != nil {
			return nil, err
		}
		t.workerID = workerID
	}

	if (status == Dispatched || status == Running) && workerID == nil {
		return nil, errs.NewValueIsRequiredError("workerID")
	}

	return t, nil
}

// Validate ensures the Task instance was properly constructed.
func (t *Task) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTaskIsNotConstructed
	}
	return nil
}

// IsEqual compares two tasks by their unique identifiers.
func (t *Task) IsEqual(other *Task) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the task's unique identifier.
func (t *Task) ID() kernel.UUID {
	return t.id
}

// Name returns the handler name executed for this task.
func (t *Task) Name() string {
	return t.name
}

// Resource returns the serialized resource name, or nil for unconstrained
// tasks.
func (t *Task) Resource() *kernel.ResourceName {
	return t.resource
}

// Payload returns the opaque handler input.
func (t *Task) Payload() []byte {
	return t.payload
}

// Status returns the current lifecycle state.
func (t *Task) Status() Status {
	return t.status
}

// Worker returns the ID of the worker the task is dispatched to, or nil.
func (t *Task) Worker() *kernel.UUID {
	return t.workerID
}

// Attempts returns how many times the task has been requeued.
func (t *Task) Attempts() int {
	return t.attempts
}

// MaxRetries returns the retry budget.
func (t *Task) MaxRetries() int {
	return t.maxRetries
}

// Result returns the persisted handler output for completed tasks.
func (t *Task) Result() []byte {
	return t.result
}

// Failure returns the recorded failure reason, empty if none.
func (t *Task) Failure() string {
	return t.failure
}

// EnqueuedAt returns when the task was first enqueued.
func (t *Task) EnqueuedAt() time.Time {
	return t.enqueuedAt
}

// StartedAt returns when execution began, or nil if it never started.
func (t *Task) StartedAt() *time.Time {
	return t.startedAt
}

// FinishedAt returns when the task reached a final state, or nil.
func (t *Task) FinishedAt() *time.Time {
	return t.finishedAt
}

// CanRetry reports whether the retry budget allows another requeue.
func (t *Task) CanRetry() bool {
	return t.attempts < t.maxRetries
}

// Dispatch routes the task to a worker: the coordinator has reserved the
// task's resource for that worker and is about to publish to its queue.
func (t *Task) Dispatch(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}

	newStatus, err := t.status.Dispatch()
	if err != nil {
		return err
	}

	t.status = newStatus
	t.workerID = &workerID
	return nil
}

// Start marks the task as picked up by its worker.
func (t *Task) Start() error {
	newStatus, err := t.status.Start()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	t.status = newStatus
	t.startedAt = &now
	return nil
}

// Complete records the handler result and finishes the task.
func (t *Task) Complete(result []byte) error {
	newStatus, err := t.status.Complete()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	t.status = newStatus
	t.result = result
	t.finishedAt = &now
	return nil
}

// Fail finishes the task with a failure reason. No further transitions are
// possible afterwards; use Requeue while the retry budget lasts.
func (t *Task) Fail(reason string) error {
	newStatus, err := t.status.Fail()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	t.status = newStatus
	t.failure = reason
	t.finishedAt = &now
	return nil
}

// Requeue puts the task back on the dispatch queue after a retryable
// failure or a lost worker. It consumes one retry from the budget and
// clears the worker assignment.
func (t *Task) Requeue(reason string) error {
	if !t.CanRetry() {
		return fmt.Errorf("%w: %d of %d retries used", ErrNoRetriesLeft, t.attempts, t.maxRetries)
	}

	newStatus, err := t.status.Requeue()
	if err != nil {
		return err
	}

	t.status = newStatus
	t.attempts++
	t.workerID = nil
	t.failure = reason
	t.startedAt = nil
	return nil
}

// Cancel aborts a task that has not started executing yet.
func (t *Task) Cancel() error {
	newStatus, err := t.status.Cancel()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	t.status = newStatus
	t.workerID = nil
	t.finishedAt = &now
	return nil
}

func (t *Task) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Task) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	t.name = name
	return nil
}

func (t *Task) setResource(resource *kernel.ResourceName) error {
	if resource == nil {
		return nil
	}
	if err := resource.Validate(); err != nil {
		return err
	}
	t.resource = resource
	return nil
}

func (t *Task) setMaxRetries(maxRetries int) error {
	if maxRetries < 0 || maxRetries > MaxRetriesLimit {
		return errs.NewValueIsOutOfRangeError("maxRetries", maxRetries, 0, MaxRetriesLimit)
	}
	t.maxRetries = maxRetries
	return nil
}
