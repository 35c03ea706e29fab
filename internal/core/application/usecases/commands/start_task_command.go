package commands

import (
	"errors"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/pkg/guard"
)

var ErrStartTaskCommandIsNotConstructed = errors.New(
	"StartTaskCommand must be created via NewStartTaskCommand constructor",
)

// StartTaskCommand marks a dispatched task as running. Issued by a worker
// right before it invokes the task handler.
type StartTaskCommand struct {
	taskID   kernel.UUID
	workerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartTaskCommand creates a command to start the given task on the
// given worker.
func NewStartTaskCommand(taskID kernel.UUID, workerID kernel.UUID) (StartTaskCommand, error) {
	if err := taskID.Validate(); err != nil {
		return StartTaskCommand{}, err
	}
	if err := workerID.Validate(); err != nil {
		return StartTaskCommand{}, err
	}

	return StartTaskCommand{
		taskID:   taskID,
		workerID: workerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// TaskID returns the identifier of the task to start.
func (c *StartTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// WorkerID returns the identifier of the worker executing the task.
func (c *StartTaskCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// Validate ensures the command was created through the constructor.
func (c *StartTaskCommand) Validate() error {
	return c.guard.Validate(ErrStartTaskCommandIsNotConstructed)
}
