package jobs

import (
	"context"
	"errors"
	"log/slog"

	"tasking/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ScheduleFiringJob enqueues tasks for schedules whose next run time has
// passed. Runs every second on the active scheduler so a due schedule
// fires within a second of its cron time.
type ScheduleFiringJob struct {
	handler commands.FireSchedulesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewScheduleFiringJob creates a new job for firing due schedules.
func NewScheduleFiringJob(handler commands.FireSchedulesCommandHandler, logger *slog.Logger) *ScheduleFiringJob {
	return &ScheduleFiringJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "schedule_firing_job"),
	}
}

// Start begins the schedule firing job to run every second.
func (j *ScheduleFiringJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd, cmdErr := commands.NewFireSchedulesCommand()
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Schedule firing job failed", "error", cmdErr)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// Nothing due is the normal case for most ticks
			if !errors.Is(err, commands.ErrNoSchedulesDue) {
				j.logger.ErrorContext(ctx, "Schedule firing job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Schedule firing job started (running every second)")
	return nil
}

// Stop stops the schedule firing job.
func (j *ScheduleFiringJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Schedule firing job stopped")
}
