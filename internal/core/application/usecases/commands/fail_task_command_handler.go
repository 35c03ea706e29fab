package commands

import (
	"context"
	"errors"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/ports"
	"tasking/internal/pkg/errs"
)

// FailTaskCommandHandler settles or retries a task whose execution failed.
//
// While the task has retry budget left it goes back to Waiting and its
// envelope is republished to the dispatch queue; once the budget is spent
// the task is marked Failed with the last error. Either way the worker's
// reservation count drops.
type FailTaskCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.TaskPublisher
}

// NewFailTaskCommandHandler creates a handler for task failure reports.
func NewFailTaskCommandHandler(uowFactory UoWFactory, publisher ports.TaskPublisher) FailTaskCommandHandler {
	return FailTaskCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the failure command.
func (h FailTaskCommandHandler) Handle(ctx context.Context, command FailTaskCommand) error {
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

	failedTask, err := uow.TaskRepository().Get(ctx, command.taskID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if failedTask.Status().IsFinal() {
		return ErrTaskAlreadySettled
	}

	assignee := failedTask.Worker()
	if assignee == nil || !assignee.IsEqual(command.workerID) {
		return ErrTaskWorkerMismatch
	}

	if failedTask.CanRetry() {
		if err = failedTask.Requeue(command.reason); err != nil {
			return err
		}
	} else if err = failedTask.Fail(command.reason); err != nil {
		return err
	}

	if err = releaseReservation(ctx, uow.ReservationRepository(), failedTask.Resource()); err != nil {
		return err
	}

	if err = uow.TaskRepository().Update(ctx, failedTask); err != nil {
		return err
	}

	if !failedTask.Status().IsFinal() {
		if err = h.publisher.Publish(ctx, kernel.DispatchQueueName, ports.NewTaskEnvelope(failedTask)); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
