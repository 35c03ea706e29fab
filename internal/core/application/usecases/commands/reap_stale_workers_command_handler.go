package commands

import (
	"context"
	"fmt"
	"time"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/worker"
	"tasking/internal/core/ports"
)

// ReapStaleWorkersCommandHandler handles the periodic reaping of silent
// workers.
//
// A reaped worker goes offline, its unfinished tasks go back to the
// dispatch queue (or fail when out of retries), and its reservations are
// dropped so other workers can pick up the freed resources. If the worker
// was merely slow and reports progress later, the status state machine
// rejects the stale report.
type ReapStaleWorkersCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.TaskPublisher
}

// NewReapStaleWorkersCommandHandler creates a handler for worker reaping.
func NewReapStaleWorkersCommandHandler(uowFactory UoWFactory, publisher ports.TaskPublisher) ReapStaleWorkersCommandHandler {
	return ReapStaleWorkersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the reaping command.
func (h ReapStaleWorkersCommandHandler) Handle(ctx context.Context, command ReapStaleWorkersCommand) error {
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

	cutoff := time.Now().UTC().Add(-command.timeout)

	staleWorkers, err := uow.WorkerRepository().GetAllStale(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, staleWorker := range staleWorkers {
		if err = h.reap(ctx, uow, staleWorker); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h ReapStaleWorkersCommandHandler) reap(ctx context.Context, uow UoW, staleWorker *worker.Worker) error {
	staleWorker.MarkOffline()
	if err := uow.WorkerRepository().Update(ctx, staleWorker); err != nil {
		return err
	}

	orphanedTasks, err := uow.TaskRepository().GetAllUnfinishedByWorker(ctx, staleWorker.ID())
	if err != nil {
		return err
	}

	reason := fmt.Sprintf("worker %s went offline", staleWorker.Name())
	for _, orphaned := range orphanedTasks {
		if orphaned.CanRetry() {
			if err = orphaned.Requeue(reason); err != nil {
				return err
			}
		} else if err = orphaned.Fail(reason); err != nil {
			return err
		}

		if err = uow.TaskRepository().Update(ctx, orphaned); err != nil {
			return err
		}

		if !orphaned.Status().IsFinal() {
			if err = h.publisher.Publish(ctx, kernel.DispatchQueueName, ports.NewTaskEnvelope(orphaned)); err != nil {
				return err
			}
		}
	}

	heldReservations, err := uow.ReservationRepository().GetAllByWorker(ctx, staleWorker.ID())
	if err != nil {
		return err
	}

	for _, held := range heldReservations {
		if err = uow.ReservationRepository().Delete(ctx, held.Resource()); err != nil {
			return err
		}
	}

	return nil
}
