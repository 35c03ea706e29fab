package commands

import (
	"context"
	"time"

	"tasking/internal/core/domain/model/schedule"
)

// CreateScheduleCommandHandler persists a new recurring task definition.
type CreateScheduleCommandHandler struct {
	uowFactory ScheduleUoWFactory
}

// NewCreateScheduleCommandHandler creates a handler for schedule creation.
func NewCreateScheduleCommandHandler(uowFactory ScheduleUoWFactory) CreateScheduleCommandHandler {
	return CreateScheduleCommandHandler{uowFactory: uowFactory}
}

// Handle processes the schedule creation command.
func (h CreateScheduleCommandHandler) Handle(ctx context.Context, command CreateScheduleCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	newSchedule, err := schedule.NewSchedule(
		command.scheduleID,
		command.name,
		command.taskName,
		command.resource,
		command.payload,
		command.cronExpr,
		command.maxRetries,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ScheduleRepository().Add(ctx, newSchedule); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
