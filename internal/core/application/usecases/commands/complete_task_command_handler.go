package commands

import (
	"context"
	"errors"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/ports"
	"tasking/internal/pkg/errs"
)

// CompleteTaskCommandHandler finishes a running task and releases its
// reservation.
type CompleteTaskCommandHandler struct {
	uowFactory UoWFactory
}

// NewCompleteTaskCommandHandler creates a handler for task completion
// reports.
func NewCompleteTaskCommandHandler(uowFactory UoWFactory) CompleteTaskCommandHandler {
	return CompleteTaskCommandHandler{uowFactory: uowFactory}
}

// Handle processes the completion command.
func (h CompleteTaskCommandHandler) Handle(ctx context.Context, command CompleteTaskCommand) error {
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

	finishingTask, err := uow.TaskRepository().Get(ctx, command.taskID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if finishingTask.Status().IsFinal() {
		return ErrTaskAlreadySettled
	}

	assignee := finishingTask.Worker()
	if assignee == nil || !assignee.IsEqual(command.workerID) {
		return ErrTaskWorkerMismatch
	}

	if err = finishingTask.Complete(command.result); err != nil {
		return err
	}

	if err = releaseReservation(ctx, uow.ReservationRepository(), finishingTask.Resource()); err != nil {
		return err
	}

	if err = uow.TaskRepository().Update(ctx, finishingTask); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// releaseReservation drops one in-flight count from the resource's
// reservation, deleting it once idle so the resource becomes routable to
// any worker again. A missing reservation is not an error: the reaper may
// have already cleaned it up.
func releaseReservation(ctx context.Context, repo ports.ReservationRepository, resource *kernel.ResourceName) error {
	if resource == nil {
		return nil
	}

	held, err := repo.Get(ctx, *resource)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}

	if err = held.Release(); err != nil {
		return err
	}

	if held.IsIdle() {
		return repo.Delete(ctx, *resource)
	}
	return repo.Update(ctx, held)
}
