package commands

import (
	"errors"

	"tasking/internal/pkg/guard"
)

var ErrFireSchedulesCommandIsNotConstructed = errors.New(
	"FireSchedulesCommand must be created via NewFireSchedulesCommand constructor",
)

// FireSchedulesCommand enqueues a task for every schedule whose next run
// time has arrived. Issued by the scheduler's cron job.
type FireSchedulesCommand struct {
	guard guard.ConstructorGuard
}

// NewFireSchedulesCommand creates a command to fire all due schedules.
func NewFireSchedulesCommand() (FireSchedulesCommand, error) {
	return FireSchedulesCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c *FireSchedulesCommand) Validate() error {
	return c.guard.Validate(ErrFireSchedulesCommandIsNotConstructed)
}
