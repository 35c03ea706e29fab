package commands

import (
	"errors"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/pkg/errs"
	"tasking/internal/pkg/guard"
)

var ErrFailTaskCommandIsNotConstructed = errors.New(
	"FailTaskCommand must be created via NewFailTaskCommand constructor",
)

// FailTaskCommand records a failed task execution attempt.
type FailTaskCommand struct {
	taskID   kernel.UUID
	workerID kernel.UUID
	reason   string

	guard guard.ConstructorGuard
}

// NewFailTaskCommand creates a command to report the failure of the given
// task with the handler's error text.
func NewFailTaskCommand(taskID kernel.UUID, workerID kernel.UUID, reason string) (FailTaskCommand, error) {
	if err := taskID.Validate(); err != nil {
		return FailTaskCommand{}, err
	}
	if err := workerID.Validate(); err != nil {
		return FailTaskCommand{}, err
	}
	if reason == "" {
		return FailTaskCommand{}, errs.NewValueIsRequiredError("reason")
	}

	return FailTaskCommand{
		taskID:   taskID,
		workerID: workerID,
		reason:   reason,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// TaskID returns the identifier of the failed task.
func (c *FailTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// WorkerID returns the identifier of the worker reporting the failure.
func (c *FailTaskCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// Reason returns the failure description.
func (c *FailTaskCommand) Reason() string {
	return c.reason
}

// Validate ensures the command was created through the constructor.
func (c *FailTaskCommand) Validate() error {
	return c.guard.Validate(ErrFailTaskCommandIsNotConstructed)
}
