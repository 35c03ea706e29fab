package commands

import (
	"errors"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/pkg/guard"
)

var ErrCancelTaskCommandIsNotConstructed = errors.New(
	"CancelTaskCommand must be created via NewCancelTaskCommand constructor",
)

// CancelTaskCommand withdraws a task that has not started running yet.
type CancelTaskCommand struct {
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelTaskCommand creates a command to cancel the given task.
func NewCancelTaskCommand(taskID kernel.UUID) (CancelTaskCommand, error) {
	if err := taskID.Validate(); err != nil {
		return CancelTaskCommand{}, err
	}

	return CancelTaskCommand{
		taskID: taskID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// TaskID returns the identifier of the task to cancel.
func (c *CancelTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// Validate ensures the command was created through the constructor.
func (c *CancelTaskCommand) Validate() error {
	return c.guard.Validate(ErrCancelTaskCommandIsNotConstructed)
}
