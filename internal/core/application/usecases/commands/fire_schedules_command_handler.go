package commands

import (
	"context"
	"time"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/task"
	"tasking/internal/core/ports"
)

// FireSchedulesCommandHandler turns due schedules into enqueued tasks.
//
// Firing and advancing nextRunAt share a transaction with the task insert
// and its dispatch publication, so a crash between them cannot fire a
// schedule twice or advance it without firing.
type FireSchedulesCommandHandler struct {
	uowFactory ScheduleUoWFactory
	publisher  ports.TaskPublisher
}

// NewFireSchedulesCommandHandler creates a handler for schedule firing.
func NewFireSchedulesCommandHandler(uowFactory ScheduleUoWFactory, publisher ports.TaskPublisher) FireSchedulesCommandHandler {
	return FireSchedulesCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the firing command. Returns ErrNoSchedulesDue when
// nothing had to fire.
func (h FireSchedulesCommandHandler) Handle(ctx context.Context, command FireSchedulesCommand) error {
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

	now := time.Now().UTC()

	dueSchedules, err := uow.ScheduleRepository().GetAllDue(ctx, now)
	if err != nil {
		return err
	}
	if len(dueSchedules) == 0 {
		return ErrNoSchedulesDue
	}

	for _, due := range dueSchedules {
		scheduledTask, taskErr := task.NewTask(
			kernel.NewUUID(),
			due.TaskName(),
			due.Resource(),
			due.Payload(),
			due.MaxRetries(),
		)
		if taskErr != nil {
			return taskErr
		}

		if err = uow.TaskRepository().Add(ctx, scheduledTask); err != nil {
			return err
		}

		if err = h.publisher.Publish(ctx, kernel.DispatchQueueName, ports.NewTaskEnvelope(scheduledTask)); err != nil {
			return err
		}

		due.MarkFired(now)
		if err = uow.ScheduleRepository().Update(ctx, due); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
