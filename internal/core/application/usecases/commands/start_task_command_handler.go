package commands

import (
	"context"
	"errors"

	"tasking/internal/core/domain/model/task"
	"tasking/internal/pkg/errs"
)

// StartTaskCommandHandler transitions a dispatched task to Running.
type StartTaskCommandHandler struct {
	uowFactory TaskUoWFactory
}

// NewStartTaskCommandHandler creates a handler for task start reports.
func NewStartTaskCommandHandler(uowFactory TaskUoWFactory) StartTaskCommandHandler {
	return StartTaskCommandHandler{uowFactory: uowFactory}
}

// Handle processes the start command.
//
// Returns ErrTaskWorkerMismatch when the task is assigned to a different
// worker, which happens after the reaper requeued the task while the
// original worker was merely slow. Returns ErrTaskAlreadyStarted when the
// task is Running and assigned to the reporting worker: a replica that
// crashed mid-run and restarted under the same name reclaims its identity
// and receives the redelivered message, and must run the task again rather
// than leave it stranded Running.
func (h StartTaskCommandHandler) Handle(ctx context.Context, command StartTaskCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	startingTask, err := uow.TaskRepository().Get(ctx, command.taskID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if startingTask.Status().IsFinal() {
		return ErrTaskAlreadySettled
	}

	assignee := startingTask.Worker()
	if assignee == nil || !assignee.IsEqual(command.workerID) {
		return ErrTaskWorkerMismatch
	}

	if startingTask.Status() == task.Running {
		return ErrTaskAlreadyStarted
	}

	if err = startingTask.Start(); err != nil {
		return err
	}

	if err = uow.TaskRepository().Update(ctx, startingTask); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
