package commands

import (
	"context"
	"errors"
	"time"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/worker"
	"tasking/internal/pkg/errs"
)

// RegisterWorkerCommandHandler registers a worker replica, reviving the
// existing registration when the name is already known.
type RegisterWorkerCommandHandler struct {
	uowFactory WorkerUoWFactory
}

// NewRegisterWorkerCommandHandler creates a handler for worker
// registration.
func NewRegisterWorkerCommandHandler(uowFactory WorkerUoWFactory) RegisterWorkerCommandHandler {
	return RegisterWorkerCommandHandler{uowFactory: uowFactory}
}

// Handle processes the registration command and returns the effective
// worker identifier: the existing one for a known name, a fresh one
// otherwise. The worker uses it for all subsequent progress reports.
func (h RegisterWorkerCommandHandler) Handle(ctx context.Context, command RegisterWorkerCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()

	existing, err := uow.WorkerRepository().GetByName(ctx, command.name)
	if err == nil {
		existing.Heartbeat(now)
		if err = uow.WorkerRepository().Update(ctx, existing); err != nil {
			return kernel.UUID{}, err
		}
		return existing.ID(), uow.Commit(ctx)
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.UUID{}, err
	}

	registered, err := worker.NewWorker(kernel.NewUUID(), command.name, now)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.WorkerRepository().Add(ctx, registered); err != nil {
		return kernel.UUID{}, err
	}

	return registered.ID(), uow.Commit(ctx)
}
