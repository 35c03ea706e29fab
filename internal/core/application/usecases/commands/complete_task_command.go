package commands

import (
	"errors"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/pkg/guard"
)

var ErrCompleteTaskCommandIsNotConstructed = errors.New(
	"CompleteTaskCommand must be created via NewCompleteTaskCommand constructor",
)

// CompleteTaskCommand records the successful outcome of a running task.
type CompleteTaskCommand struct {
	taskID   kernel.UUID
	workerID kernel.UUID
	result   []byte

	guard guard.ConstructorGuard
}

// NewCompleteTaskCommand creates a command to complete the given task with
// the handler's result. A nil result is valid.
func NewCompleteTaskCommand(taskID kernel.UUID, workerID kernel.UUID, result []byte) (CompleteTaskCommand, error) {
	if err := taskID.Validate(); err != nil {
		return CompleteTaskCommand{}, err
	}
	if err := workerID.Validate(); err != nil {
		return CompleteTaskCommand{}, err
	}

	return CompleteTaskCommand{
		taskID:   taskID,
		workerID: workerID,
		result:   result,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// TaskID returns the identifier of the task to complete.
func (c *CompleteTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// WorkerID returns the identifier of the worker reporting completion.
func (c *CompleteTaskCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// Result returns the serialized handler result.
func (c *CompleteTaskCommand) Result() []byte {
	return c.result
}

// Validate ensures the command was created through the constructor.
func (c *CompleteTaskCommand) Validate() error {
	return c.guard.Validate(ErrCompleteTaskCommandIsNotConstructed)
}
