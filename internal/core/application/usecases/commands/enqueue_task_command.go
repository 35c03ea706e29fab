package commands

import (
	"errors"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/pkg/errs"
	"tasking/internal/pkg/guard"
)

var ErrEnqueueTaskCommandIsNotConstructed = errors.New(
	"EnqueueTaskCommand must be created via NewEnqueueTaskCommand constructor",
)

// EnqueueTaskCommand submits a new task for execution.
// The task is persisted in Waiting status and published to the dispatch
// queue, where the resource manager picks it up for routing.
type EnqueueTaskCommand struct {
	taskID     kernel.UUID
	name       string
	resource   *kernel.ResourceName
	payload    []byte
	maxRetries int

	guard guard.ConstructorGuard
}

// NewEnqueueTaskCommand creates a command to enqueue a task.
//
// Parameters:
//   - taskID: client-generated identifier, returned to the caller for
//     status polling
//   - name: registered handler name
//   - resource: optional resource to serialize on; nil for unconstrained
//     tasks
//   - payload: opaque handler input
//   - maxRetries: retry budget for transient failures
func NewEnqueueTaskCommand(
	taskID kernel.UUID,
	name string,
	resource *kernel.ResourceName,
	payload []byte,
	maxRetries int,
) (EnqueueTaskCommand, error) {
	if err := taskID.Validate(); err != nil {
		return EnqueueTaskCommand{}, err
	}
	if name == "" {
		return EnqueueTaskCommand{}, errs.NewValueIsRequiredError("name")
	}
	if resource != nil {
		if err := resource.Validate(); err != nil {
			return EnqueueTaskCommand{}, err
		}
	}

	return EnqueueTaskCommand{
		taskID:     taskID,
		name:       name,
		resource:   resource,
		payload:    payload,
		maxRetries: maxRetries,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// TaskID returns the identifier of the task being enqueued.
func (c *EnqueueTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// Validate ensures the command was created through the constructor.
func (c *EnqueueTaskCommand) Validate() error {
	return c.guard.Validate(ErrEnqueueTaskCommandIsNotConstructed)
}
