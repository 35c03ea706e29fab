package commands

import (
	"context"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/task"
	"tasking/internal/core/ports"
)

// EnqueueTaskCommandHandler persists a new task and publishes it to the
// dispatch queue within a single transaction.
type EnqueueTaskCommandHandler struct {
	uowFactory TaskUoWFactory
	publisher  ports.TaskPublisher
}

// NewEnqueueTaskCommandHandler creates a handler for task submission.
func NewEnqueueTaskCommandHandler(uowFactory TaskUoWFactory, publisher ports.TaskPublisher) EnqueueTaskCommandHandler {
	return EnqueueTaskCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the enqueue command.
// The new task starts in Waiting status; its envelope goes to the dispatch
// queue for the resource manager to route.
func (h EnqueueTaskCommandHandler) Handle(ctx context.Context, command EnqueueTaskCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	newTask, err := task.NewTask(
		command.taskID,
		command.name,
		command.resource,
		command.payload,
		command.maxRetries,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.TaskRepository().Add(ctx, newTask); err != nil {
		return err
	}

	if err = h.publisher.Publish(ctx, kernel.DispatchQueueName, ports.NewTaskEnvelope(newTask)); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
