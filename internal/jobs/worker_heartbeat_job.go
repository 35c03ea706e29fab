package jobs

import (
	"context"
	"log/slog"

	"tasking/internal/core/application/usecases/commands"
	"tasking/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// WorkerHeartbeatJob records liveness for one worker replica. Runs every
// five seconds so the reaper's timeout has several beats of slack.
type WorkerHeartbeatJob struct {
	handler  commands.HeartbeatWorkerCommandHandler
	workerID kernel.UUID
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewWorkerHeartbeatJob creates a heartbeat job for the worker with the
// given registered identifier.
func NewWorkerHeartbeatJob(
	handler commands.HeartbeatWorkerCommandHandler,
	workerID kernel.UUID,
	logger *slog.Logger,
) *WorkerHeartbeatJob {
	return &WorkerHeartbeatJob{
		handler:  handler,
		workerID: workerID,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "worker_heartbeat_job"),
	}
}

// Start begins the heartbeat job to run every five seconds.
func (j *WorkerHeartbeatJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()
		cmd, cmdErr := commands.NewHeartbeatWorkerCommand(j.workerID)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Worker heartbeat job failed", "error", cmdErr)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Worker heartbeat job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Worker heartbeat job started (running every five seconds)")
	return nil
}

// Stop stops the heartbeat job.
func (j *WorkerHeartbeatJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Worker heartbeat job stopped")
}
