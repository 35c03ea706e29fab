package commands

import (
	"errors"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/pkg/guard"
)

var ErrDispatchTaskCommandIsNotConstructed = errors.New(
	"DispatchTaskCommand must be created via NewDispatchTaskCommand constructor",
)

// DispatchTaskCommand routes one waiting task to a worker.
// Issued by the resource manager for every envelope consumed from the
// dispatch queue.
type DispatchTaskCommand struct {
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDispatchTaskCommand creates a command to dispatch the given task.
func NewDispatchTaskCommand(taskID kernel.UUID) (DispatchTaskCommand, error) {
	if err := taskID.Validate(); err != nil {
		return DispatchTaskCommand{}, err
	}

	return DispatchTaskCommand{
		taskID: taskID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// TaskID returns the identifier of the task to dispatch.
func (c *DispatchTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// Validate ensures the command was created through the constructor.
func (c *DispatchTaskCommand) Validate() error {
	return c.guard.Validate(ErrDispatchTaskCommandIsNotConstructed)
}
