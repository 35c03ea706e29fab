package task

import (
	"fmt"

	"tasking/internal/pkg/errs"
)

// Status represents the lifecycle state of a task.
// It implements a state machine with defined transitions so tasks follow
// the dispatch protocol even when broker messages are delivered more than
// once.
//
// State transitions:
//
//	Waiting -> Dispatched -> Running -> Completed | Failed
//	   ^           |            |
//	   +-----------+------------+  (requeue on retry or worker loss)
//
//	Waiting, Dispatched -> Canceled
//
// Completed, Failed and Canceled are final states.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Waiting means the task is persisted and published to the dispatch
	// queue, but not yet routed to a worker.
	Waiting

	// Dispatched means the coordinator reserved the task's resource and
	// published the task to a specific worker queue.
	Dispatched

	// Running means a worker picked the task up and is executing its
	// handler.
	Running

	// Completed means the handler finished successfully and its result is
	// persisted. Final state.
	Completed

	// Failed means the handler failed and no retries remain. Final state.
	Failed

	// Canceled means the task was canceled before execution started.
	// Final state.
	Canceled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Waiting:    "Waiting",
		Dispatched: "Dispatched",
		Running:    "Running",
		Completed:  "Completed",
		Failed:     "Failed",
		Canceled:   "Canceled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Waiting:    "Waiting",
		Dispatched: "Dispatched",
		Running:    "Running",
		Completed:  "Completed",
		Failed:     "Failed",
		Canceled:   "Canceled",
	}
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFinal reports whether the status admits no further transitions.
func (s Status) IsFinal() bool {
	return s == Completed || s == Failed || s == Canceled
}

// Dispatch transitions the status to Dispatched.
// Only Waiting tasks can be dispatched; a duplicate broker delivery of an
// already dispatched task therefore surfaces as a transition error rather
// than a second dispatch.
func (s Status) Dispatch() (Status, error) {
	if s != Waiting {
		return 0, transitionError(s, "dispatch")
	}
	return Dispatched, nil
}

// Start transitions the status to Running. Only Dispatched tasks can start.
func (s Status) Start() (Status, error) {
	if s != Dispatched {
		return 0, transitionError(s, "start")
	}
	return Running, nil
}

// Complete transitions the status to Completed. Only Running tasks can
// complete.
func (s Status) Complete() (Status, error) {
	if s != Running {
		return 0, transitionError(s, "complete")
	}
	return Completed, nil
}

// Fail transitions the status to Failed. Only Dispatched or Running tasks
// can fail: Dispatched covers tasks lost with their worker before starting.
func (s Status) Fail() (Status, error) {
	if s != Dispatched && s != Running {
		return 0, transitionError(s, "fail")
	}
	return Failed, nil
}

// Requeue transitions the status back to Waiting for another delivery.
// Allowed from Dispatched (worker lost before start) and Running
// (retryable handler failure or worker lost mid-flight).
func (s Status) Requeue() (Status, error) {
	if s != Dispatched && s != Running {
		return 0, transitionError(s, "requeue")
	}
	return Waiting, nil
}

// Cancel transitions the status to Canceled.
// Running tasks cannot be canceled: execution is never interrupted, the
// task simply runs to its outcome.
func (s Status) Cancel() (Status, error) {
	if s != Waiting && s != Dispatched {
		return 0, transitionError(s, "cancel")
	}
	return Canceled, nil
}

func transitionError(s Status, action string) error {
	return errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%s is not a valid status to %s", s.String(), action))
}
