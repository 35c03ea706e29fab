package workers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tasking/internal/core/application/usecases/commands"
	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/services"
	"tasking/internal/core/ports"
)

// routeRetryDelay backs off the consume loop after a transient routing
// failure so a requeued envelope is not spun through an empty fleet at
// full speed.
const routeRetryDelay = time.Second

// ResourceManager is the singleton routing process. It consumes the
// dispatch queue and assigns every task to a worker, serializing access
// to named resources through reservations.
type ResourceManager struct {
	consumer ports.TaskConsumer
	handler  commands.DispatchTaskCommandHandler
	logger   *slog.Logger
}

// NewResourceManager creates the routing process.
func NewResourceManager(
	consumer ports.TaskConsumer,
	handler commands.DispatchTaskCommandHandler,
	logger *slog.Logger,
) *ResourceManager {
	return &ResourceManager{
		consumer: consumer,
		handler:  handler,
		logger:   logger.With("component", "resource_manager"),
	}
}

// Run consumes the dispatch queue until the context is canceled.
func (m *ResourceManager) Run(ctx context.Context) error {
	m.logger.InfoContext(ctx, "Resource manager started", "queue", string(kernel.DispatchQueueName))

	for {
		msg, err := m.consumer.Consume(ctx, kernel.DispatchQueueName)
		if err != nil {
			if ctx.Err() != nil {
				m.logger.InfoContext(ctx, "Resource manager stopped")
				return ctx.Err()
			}
			return err
		}

		m.dispatch(ctx, msg)
	}
}

// dispatch routes one envelope and settles its delivery.
//
// Stale envelopes (unknown or already-settled tasks) are acknowledged so
// duplicates cannot poison the queue. Transient routing failures requeue
// the envelope after a short delay.
func (m *ResourceManager) dispatch(ctx context.Context, msg ports.TaskMessage) {
	envelope := msg.Envelope()

	taskID, err := envelope.ParseTaskID()
	if err != nil {
		m.logger.ErrorContext(ctx, "Dropping envelope with invalid task id", "task_id", envelope.TaskID, "error", err)
		_ = msg.Nack(false)
		return
	}

	cmd, err := commands.NewDispatchTaskCommand(taskID)
	if err != nil {
		m.logger.ErrorContext(ctx, "Dropping undispatchable envelope", "task_id", envelope.TaskID, "error", err)
		_ = msg.Nack(false)
		return
	}

	switch err = m.handler.Handle(ctx, cmd); {
	case err == nil:
		_ = msg.Ack()

	case errors.Is(err, commands.ErrTaskNotFound), errors.Is(err, commands.ErrTaskAlreadySettled):
		m.logger.InfoContext(ctx, "Acknowledging stale envelope", "task_id", envelope.TaskID, "reason", err.Error())
		_ = msg.Ack()

	case errors.Is(err, services.ErrNoWorkersAvailable), errors.Is(err, services.ErrReservationHolderOffline):
		m.logger.WarnContext(ctx, "No worker for task, requeueing", "task_id", envelope.TaskID, "error", err)
		_ = msg.Nack(true)
		m.pause(ctx)

	default:
		m.logger.ErrorContext(ctx, "Dispatch failed, requeueing", "task_id", envelope.TaskID, "error", err)
		_ = msg.Nack(true)
		m.pause(ctx)
	}
}

func (m *ResourceManager) pause(ctx context.Context) {
	select {
	case <-time.After(routeRetryDelay):
	case <-ctx.Done():
	}
}
