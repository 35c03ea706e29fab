package worker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/pkg/errs"
)

// ErrWorkerIsNotConstructed is returned when a Worker instance was not
// created through NewWorker or RestoreWorker.
var ErrWorkerIsNotConstructed = errors.New("Worker must be created via NewWorker or RestoreWorker constructor")

// Status represents a worker's availability.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Online means the worker is registered and heartbeating; the
	// coordinator may route tasks to its queue.
	Online

	// Offline means the worker missed its heartbeat window or shut down;
	// its reservations are released and its in-flight tasks requeued.
	Offline
)

// String returns the human-readable name of the status.
func (s Status) String() string {
	switch s {
	case Online:
		return "Online"
	case Offline:
		return "Offline"
	default:
		return "Unknown"
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s != Online && s != Offline {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid worker status", s))
	}
	return nil
}

// Worker is the aggregate root for a task-executing process replica.
// Each worker owns a dedicated broker queue derived from its unique name
// and proves liveness through periodic heartbeats.
type Worker struct {
	id            kernel.UUID
	name          string
	status        Status
	lastHeartbeat time.Time

	isConstructed bool
}

// NewWorker registers a new online worker.
// The name must be unique among all workers (the replica identity, e.g.
// "worker-1") and is used to derive the worker's queue name.
func NewWorker(id kernel.UUID, name string, now time.Time) (*Worker, error) {
	w := &Worker{
		status:        Online,
		lastHeartbeat: now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
	); err != nil {
		return nil, err
	}

	return w, nil
}

// RestoreWorker reconstructs a worker from persistence.
func RestoreWorker(id kernel.UUID, name string, status Status, lastHeartbeat time.Time) (*Worker, error) {
	w := &Worker{
		status:        status,
		lastHeartbeat: lastHeartbeat,
		isConstructed: true,
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return w, nil
}

// Validate ensures the Worker instance was properly constructed.
func (w *Worker) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWorkerIsNotConstructed
	}
	return nil
}

// IsEqual compares two workers by their unique identifiers.
func (w *Worker) IsEqual(other *Worker) bool {
	return other != nil && w.id.IsEqual(other.id)
}

// ID returns the worker's unique identifier.
func (w *Worker) ID() kernel.UUID {
	return w.id
}

// Name returns the worker's unique replica name.
func (w *Worker) Name() string {
	return w.name
}

// Status returns the worker's availability.
func (w *Worker) Status() Status {
	return w.status
}

// LastHeartbeat returns the time of the most recent heartbeat.
func (w *Worker) LastHeartbeat() time.Time {
	return w.lastHeartbeat
}

// Queue returns the broker queue dedicated to this worker.
func (w *Worker) Queue() kernel.QueueName {
	queue, _ := kernel.NewWorkerQueueName(w.name)
	return queue
}

// Heartbeat records liveness and brings an offline worker back online.
// A worker that reappears after being reaped simply resumes service.
func (w *Worker) Heartbeat(now time.Time) {
	w.lastHeartbeat = now.UTC()
	w.status = Online
}

// MarkOffline takes the worker out of routing.
// Called by the reaper for stale workers and on graceful shutdown.
func (w *Worker) MarkOffline() {
	w.status = Offline
}

// IsStale reports whether the worker's heartbeat is older than timeout.
// Offline workers are never stale: they are already out of routing.
func (w *Worker) IsStale(now time.Time, timeout time.Duration) bool {
	return w.status == Online && now.UTC().Sub(w.lastHeartbeat) > timeout
}

func (w *Worker) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Worker) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if strings.ContainsAny(name, " \t\n") {
		return errs.NewValueIsInvalidErrorWithCause("name",
			fmt.Errorf("%q must not contain whitespace", name))
	}
	w.name = name
	return nil
}
