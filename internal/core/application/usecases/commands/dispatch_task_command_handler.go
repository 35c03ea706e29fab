package commands

import (
	"context"
	"errors"
	"time"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/reservation"
	"tasking/internal/core/domain/model/task"
	"tasking/internal/core/domain/services"
	"tasking/internal/core/ports"
	"tasking/internal/pkg/errs"
)

// DispatchTaskCommandHandler routes a waiting task to a worker and
// publishes it to that worker's queue.
//
// Routing and the reservation bookkeeping happen in one transaction: a
// task touching a reserved resource goes to the reservation holder, any
// other task goes to the least-loaded online worker and, when it names a
// resource, creates a reservation pinning that resource to the chosen
// worker.
type DispatchTaskCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.TaskPublisher
	router     services.TaskRouter
}

// NewDispatchTaskCommandHandler creates a handler for task dispatch.
func NewDispatchTaskCommandHandler(
	uowFactory UoWFactory,
	publisher ports.TaskPublisher,
	router services.TaskRouter,
) DispatchTaskCommandHandler {
	return DispatchTaskCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		router:     router,
	}
}

// Handle processes the dispatch command.
//
// Returns ErrTaskNotFound for unknown tasks and ErrTaskAlreadySettled for
// tasks past their dispatch window, so the consumer can acknowledge stale
// envelopes. Routing errors (services.ErrNoWorkersAvailable,
// services.ErrReservationHolderOffline) are transient; the consumer
// requeues on them.
func (h DispatchTaskCommandHandler) Handle(ctx context.Context, command DispatchTaskCommand) error {
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

	pendingTask, err := uow.TaskRepository().Get(ctx, command.taskID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if pendingTask.Status().IsFinal() {
		return ErrTaskAlreadySettled
	}

	workers, err := uow.WorkerRepository().GetAllOnline(ctx)
	if err != nil {
		return err
	}

	reservations, err := uow.ReservationRepository().GetAll(ctx)
	if err != nil {
		return err
	}

	target, err := h.router.Route(pendingTask, reservations, workers)
	if err != nil {
		return err
	}

	if err = pendingTask.Dispatch(target.ID()); err != nil {
		return err
	}

	if err = h.reserve(ctx, uow, pendingTask, target.ID()); err != nil {
		return err
	}

	if err = uow.TaskRepository().Update(ctx, pendingTask); err != nil {
		return err
	}

	if err = h.publisher.Publish(ctx, target.Queue(), ports.NewTaskEnvelope(pendingTask)); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// reserve records the dispatched task against its resource's reservation,
// creating the reservation when the resource is free. Tasks without a
// resource are not tracked.
func (h DispatchTaskCommandHandler) reserve(
	ctx context.Context,
	uow UoW,
	t *task.Task,
	workerID kernel.UUID,
) error {
	resource := t.Resource()
	if resource == nil {
		return nil
	}

	existing, err := uow.ReservationRepository().Get(ctx, *resource)
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}

		created, newErr := reservation.NewReservation(kernel.NewUUID(), *resource, workerID, time.Now().UTC())
		if newErr != nil {
			return newErr
		}
		return uow.ReservationRepository().Add(ctx, created)
	}

	existing.Acquire()
	return uow.ReservationRepository().Update(ctx, existing)
}
