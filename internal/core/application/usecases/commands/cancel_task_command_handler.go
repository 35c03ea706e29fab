package commands

import (
	"context"
	"errors"

	"tasking/internal/core/domain/model/task"
	"tasking/internal/pkg/errs"
)

// CancelTaskCommandHandler cancels a task before a worker starts it.
type CancelTaskCommandHandler struct {
	uowFactory UoWFactory
}

// NewCancelTaskCommandHandler creates a handler for task cancellation.
func NewCancelTaskCommandHandler(uowFactory UoWFactory) CancelTaskCommandHandler {
	return CancelTaskCommandHandler{uowFactory: uowFactory}
}

// Handle processes the cancellation command.
//
// A dispatched task may still be sitting in a worker queue; its envelope
// is left there and the worker acknowledges it once the start report hits
// the Canceled status. Running tasks cannot be canceled.
func (h CancelTaskCommandHandler) Handle(ctx context.Context, command CancelTaskCommand) error {
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

	canceledTask, err := uow.TaskRepository().Get(ctx, command.taskID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	wasDispatched := canceledTask.Status() == task.Dispatched

	if err = canceledTask.Cancel(); err != nil {
		return err
	}

	if wasDispatched {
		if err = releaseReservation(ctx, uow.ReservationRepository(), canceledTask.Resource()); err != nil {
			return err
		}
	}

	if err = uow.TaskRepository().Update(ctx, canceledTask); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
