package cmd

import (
	"context"
	"log/slog"

	"tasking/internal/adapters/out/postgres"
	"tasking/internal/core/application/usecases/commands"
	"tasking/internal/core/application/usecases/queries"
	"tasking/internal/core/domain/services"
	"tasking/internal/core/ports"
	"tasking/internal/jobs"
	"tasking/internal/workers"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into the command and query handlers each
// process role needs.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	broker     brokerPort
	logger     *slog.Logger
}

// brokerPort is the full broker surface a process may use.
type brokerPort interface {
	ports.TaskPublisher
	ports.TaskConsumer
}

// NewCompositionRoot creates the composition root for one process.
func NewCompositionRoot(config Config, gormDB *gorm.DB, broker brokerPort, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		broker:     broker,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateEnqueueTaskCommandHandler() commands.EnqueueTaskCommandHandler {
	return commands.NewEnqueueTaskCommandHandler(commands.NewTaskUoWFactory(c.uowFactory), c.broker)
}

func (c *CompositionRoot) CreateCancelTaskCommandHandler() commands.CancelTaskCommandHandler {
	return commands.NewCancelTaskCommandHandler(commands.NewUoWFactory(c.uowFactory))
}

func (c *CompositionRoot) CreateCreateScheduleCommandHandler() commands.CreateScheduleCommandHandler {
	return commands.NewCreateScheduleCommandHandler(commands.NewScheduleUoWFactory(c.uowFactory))
}

func (c *CompositionRoot) CreateFireSchedulesCommandHandler() commands.FireSchedulesCommandHandler {
	return commands.NewFireSchedulesCommandHandler(commands.NewScheduleUoWFactory(c.uowFactory), c.broker)
}

func (c *CompositionRoot) CreateReapStaleWorkersCommandHandler() commands.ReapStaleWorkersCommandHandler {
	return commands.NewReapStaleWorkersCommandHandler(commands.NewUoWFactory(c.uowFactory), c.broker)
}

func (c *CompositionRoot) CreateHeartbeatWorkerCommandHandler() commands.HeartbeatWorkerCommandHandler {
	return commands.NewHeartbeatWorkerCommandHandler(commands.NewWorkerUoWFactory(c.uowFactory))
}

func (c *CompositionRoot) CreateGetTaskQueryHandler() queries.GetTaskQueryHandler {
	return queries.NewGetTaskQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnfinishedTasksQueryHandler() queries.GetUnfinishedTasksQueryHandler {
	return queries.NewGetUnfinishedTasksQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllWorkersQueryHandler() queries.GetAllWorkersQueryHandler {
	return queries.NewGetAllWorkersQueryHandler(c.gormDB)
}

// CreateResourceManager wires the routing process.
func (c *CompositionRoot) CreateResourceManager() *workers.ResourceManager {
	dispatchHandler := commands.NewDispatchTaskCommandHandler(
		commands.NewUoWFactory(c.uowFactory),
		c.broker,
		services.NewTaskRouter(),
	)
	return workers.NewResourceManager(c.broker, dispatchHandler, c.logger)
}

// CreateWorker wires one execution replica around the given handler
// registry.
func (c *CompositionRoot) CreateWorker(registry *workers.Registry) *workers.Worker {
	return workers.NewWorker(
		c.config.WorkerName,
		c.broker,
		registry,
		commands.NewRegisterWorkerCommandHandler(commands.NewWorkerUoWFactory(c.uowFactory)),
		commands.NewStartTaskCommandHandler(commands.NewTaskUoWFactory(c.uowFactory)),
		commands.NewCompleteTaskCommandHandler(commands.NewUoWFactory(c.uowFactory)),
		commands.NewFailTaskCommandHandler(commands.NewUoWFactory(c.uowFactory), c.broker),
		queries.NewGetTaskQueryHandler(c.gormDB),
		c.logger,
	)
}

// CreateHandlerRegistry builds the registry of task handlers this worker
// binary ships. Deployments extend it here.
func (c *CompositionRoot) CreateHandlerRegistry() (*workers.Registry, error) {
	registry := workers.NewRegistry()

	if err := registry.Register("echo", func(ctx context.Context, payload []byte) ([]byte, error) {
		return payload, nil
	}); err != nil {
		return nil, err
	}

	return registry, nil
}

// CreateSchedulerJobs builds the job set the active scheduler runs.
func (c *CompositionRoot) CreateSchedulerJobs() []jobs.Job {
	return []jobs.Job{
		jobs.NewScheduleFiringJob(c.CreateFireSchedulesCommandHandler(), c.logger),
	}
}

// CreateResourceManagerJobs builds the job set the active resource manager
// runs alongside its dispatch loop. The reaper lives here because the
// envelopes it requeues land back on the dispatch queue this process
// consumes.
func (c *CompositionRoot) CreateResourceManagerJobs() []jobs.Job {
	return []jobs.Job{
		jobs.NewStaleWorkerReaperJob(c.CreateReapStaleWorkersCommandHandler(), c.config.WorkerTimeout(), c.logger),
	}
}
