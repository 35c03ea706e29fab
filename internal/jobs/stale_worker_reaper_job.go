package jobs

import (
	"context"
	"log/slog"
	"time"

	"tasking/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleWorkerReaperJob marks workers offline when their heartbeat goes
// stale, requeues or fails their orphaned tasks, and releases their
// reservations. Runs every ten seconds on the active resource manager.
type StaleWorkerReaperJob struct {
	handler commands.ReapStaleWorkersCommandHandler
	timeout time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStaleWorkerReaperJob creates a new reaper job. A worker is considered
// stale after timeout without a heartbeat; the timeout must comfortably
// exceed the heartbeat interval so a single delayed beat does not reap a
// healthy worker.
func NewStaleWorkerReaperJob(
	handler commands.ReapStaleWorkersCommandHandler,
	timeout time.Duration,
	logger *slog.Logger,
) *StaleWorkerReaperJob {
	return &StaleWorkerReaperJob{
		handler: handler,
		timeout: timeout,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "stale_worker_reaper_job"),
	}
}

// Start begins the reaper job to run every ten seconds.
func (j *StaleWorkerReaperJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()
		cmd, cmdErr := commands.NewReapStaleWorkersCommand(j.timeout)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Stale worker reaper job failed", "error", cmdErr)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Stale worker reaper job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale worker reaper job started (running every ten seconds)")
	return nil
}

// Stop stops the reaper job.
func (j *StaleWorkerReaperJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale worker reaper job stopped")
}
