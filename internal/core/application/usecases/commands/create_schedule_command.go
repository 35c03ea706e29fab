package commands

import (
	"errors"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/pkg/errs"
	"tasking/internal/pkg/guard"
)

var ErrCreateScheduleCommandIsNotConstructed = errors.New(
	"CreateScheduleCommand must be created via NewCreateScheduleCommand constructor",
)

// CreateScheduleCommand registers a recurring task definition. Full
// validation of the cron expression happens in the schedule aggregate
// constructor.
type CreateScheduleCommand struct {
	scheduleID kernel.UUID
	name       string
	taskName   string
	resource   *kernel.ResourceName
	payload    []byte
	cronExpr   string
	maxRetries int

	guard guard.ConstructorGuard
}

// NewCreateScheduleCommand creates a command to register a schedule.
// resource may be nil for tasks that need no mutual exclusion.
func NewCreateScheduleCommand(
	scheduleID kernel.UUID,
	name string,
	taskName string,
	resource *kernel.ResourceName,
	payload []byte,
	cronExpr string,
	maxRetries int,
) (CreateScheduleCommand, error) {
	if err := scheduleID.Validate(); err != nil {
		return CreateScheduleCommand{}, err
	}
	if name == "" {
		return CreateScheduleCommand{}, errs.NewValueIsRequiredError("name")
	}
	if taskName == "" {
		return CreateScheduleCommand{}, errs.NewValueIsRequiredError("taskName")
	}
	if cronExpr == "" {
		return CreateScheduleCommand{}, errs.NewValueIsRequiredError("cronExpr")
	}

	return CreateScheduleCommand{
		scheduleID: scheduleID,
		name:       name,
		taskName:   taskName,
		resource:   resource,
		payload:    payload,
		cronExpr:   cronExpr,
		maxRetries: maxRetries,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// ScheduleID returns the identifier of the schedule to create.
func (c *CreateScheduleCommand) ScheduleID() kernel.UUID {
	return c.scheduleID
}

// Validate ensures the command was created through the constructor.
func (c *CreateScheduleCommand) Validate() error {
	return c.guard.Validate(ErrCreateScheduleCommandIsNotConstructed)
}
