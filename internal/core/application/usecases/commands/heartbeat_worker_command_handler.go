package commands

import (
	"context"
	"errors"
	"time"

	"tasking/internal/pkg/errs"
)

// HeartbeatWorkerCommandHandler stamps a worker's last heartbeat time.
// A heartbeat from a worker the reaper marked offline brings it back
// online.
type HeartbeatWorkerCommandHandler struct {
	uowFactory WorkerUoWFactory
}

// NewHeartbeatWorkerCommandHandler creates a handler for worker
// heartbeats.
func NewHeartbeatWorkerCommandHandler(uowFactory WorkerUoWFactory) HeartbeatWorkerCommandHandler {
	return HeartbeatWorkerCommandHandler{uowFactory: uowFactory}
}

// Handle processes the heartbeat command.
func (h HeartbeatWorkerCommandHandler) Handle(ctx context.Context, command HeartbeatWorkerCommand) error {
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

	beatingWorker, err := uow.WorkerRepository().Get(ctx, command.workerID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ErrWorkerNotFound
		}
		return err
	}

	beatingWorker.Heartbeat(time.Now().UTC())

	if err = uow.WorkerRepository().Update(ctx, beatingWorker); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
