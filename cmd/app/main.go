package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tasking/cmd"
	taskinghttp "tasking/internal/adapters/in/http"
	"tasking/internal/adapters/out/membroker"
	"tasking/internal/adapters/out/postgres/reservationrepo"
	"tasking/internal/adapters/out/postgres/schedulerepo"
	"tasking/internal/adapters/out/postgres/taskrepo"
	"tasking/internal/adapters/out/postgres/workerrepo"
	"tasking/internal/adapters/out/rabbit"
	"tasking/internal/adapters/out/redislease"
	"tasking/internal/core/ports"
	"tasking/internal/generated/servers"
	"tasking/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const leaseRetryInterval = 2 * time.Second

func main() {
	_ = godotenv.Load(".env")

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	configs, err := cmd.LoadConfig()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	role := "api"
	if len(os.Args) > 1 {
		role = os.Args[1]
	}
	logger = logger.With("role", role)

	gormDB, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if role == "migrate" {
		if err = runMigrations(gormDB, logger); err != nil {
			logger.Error("Migration failed", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if role == "standalone" {
		if err = runStandalone(ctx, configs, gormDB, logger); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Process failed", "error", err)
			os.Exit(1)
		}
		return
	}

	broker, err := rabbit.Connect(configs.BrokerURL)
	if err != nil {
		logger.Error("Failed to connect to broker", "error", err)
		os.Exit(1)
	}
	defer func() { _ = broker.Close() }()

	root := cmd.NewCompositionRoot(configs, gormDB, broker, logger)

	switch role {
	case "api":
		err = runAPI(ctx, &root, configs, logger)
	case "scheduler":
		err = runScheduler(ctx, &root, configs, logger)
	case "resource-manager":
		err = runResourceManager(ctx, &root, configs, logger)
	case "worker":
		err = runWorker(ctx, &root, logger)
	default:
		err = fmt.Errorf("unknown role %q (expected migrate, api, scheduler, resource-manager, worker, or standalone)", role)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Process failed", "error", err)
		os.Exit(1)
	}
}

// runMigrations creates or updates the database schema and exits.
func runMigrations(gormDB *gorm.DB, logger *slog.Logger) error {
	if err := gormDB.AutoMigrate(
		&taskrepo.TaskDTO{},
		&workerrepo.WorkerDTO{},
		&reservationrepo.ReservationDTO{},
		&schedulerepo.ScheduleDTO{},
	); err != nil {
		return err
	}
	logger.Info("Database schema is up to date")
	return nil
}

// runAPI serves the HTTP API. Any number of API replicas can run at once.
func runAPI(ctx context.Context, root *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) error {
	e := echo.New()
	e.HideBanner = true

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.json", func(c echo.Context) error {
		swagger, err := servers.GetSwagger()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load specification")
		}
		return c.JSON(http.StatusOK, swagger)
	})

	server := taskinghttp.NewServer(
		root.CreateEnqueueTaskCommandHandler(),
		root.CreateCancelTaskCommandHandler(),
		root.CreateCreateScheduleCommandHandler(),
		root.CreateGetTaskQueryHandler(),
		root.CreateGetUnfinishedTasksQueryHandler(),
		root.CreateGetAllWorkersQueryHandler(),
	)
	servers.RegisterHandlers(e, server)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	logger.Info("API listening", "port", configs.HTTPPort)
	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// runScheduler runs the schedule-firing job behind the scheduler lease so
// only one instance enqueues recurring tasks at a time.
func runScheduler(ctx context.Context, root *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) error {
	leases := newLeaseManager(configs)
	holder := leaseHolder()

	renewal, err := acquireLease(ctx, leases, "scheduler", holder, configs.LeaseTTL(), logger)
	if err != nil {
		return err
	}

	manager := jobs.NewJobManager(append([]jobs.Job{renewal}, root.CreateSchedulerJobs()...)...)
	if err := manager.StartAll(); err != nil {
		return err
	}
	defer manager.StopAll()

	logger.Info("Scheduler active", "holder", holder)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-renewal.Lost():
		return errors.New("scheduler lease lost")
	}
}

// runResourceManager routes tasks off the dispatch queue and reaps stale
// workers behind its own lease so reservations and requeues are issued by
// exactly one process.
func runResourceManager(ctx context.Context, root *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) error {
	leases := newLeaseManager(configs)
	holder := leaseHolder()

	renewal, err := acquireLease(ctx, leases, "resource-manager", holder, configs.LeaseTTL(), logger)
	if err != nil {
		return err
	}

	manager := jobs.NewJobManager(append([]jobs.Job{renewal}, root.CreateResourceManagerJobs()...)...)
	if err := manager.StartAll(); err != nil {
		return err
	}
	defer manager.StopAll()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-renewal.Lost():
			cancel()
		case <-runCtx.Done():
		}
	}()

	logger.Info("Resource manager active", "holder", holder)
	return root.CreateResourceManager().Run(runCtx)
}

// runWorker registers this replica, keeps its heartbeat alive, and
// consumes its queue.
func runWorker(ctx context.Context, root *cmd.CompositionRoot, logger *slog.Logger) error {
	registry, err := root.CreateHandlerRegistry()
	if err != nil {
		return err
	}

	replica := root.CreateWorker(registry)
	if err := replica.Register(ctx); err != nil {
		return err
	}

	heartbeat := jobs.NewWorkerHeartbeatJob(root.CreateHeartbeatWorkerCommandHandler(), replica.ID(), logger)
	manager := jobs.NewJobManager(heartbeat)
	if err := manager.StartAll(); err != nil {
		return err
	}
	defer manager.StopAll()

	return replica.Run(ctx)
}

// runStandalone runs the whole topology in one process over the in-memory
// broker: schema migration, scheduler jobs, resource manager, one worker,
// and the HTTP API. Meant for development and demos, not production.
func runStandalone(ctx context.Context, configs cmd.Config, gormDB *gorm.DB, logger *slog.Logger) error {
	if err := runMigrations(gormDB, logger); err != nil {
		return err
	}
	if configs.WorkerName == "" {
		configs.WorkerName = "standalone"
	}

	root := cmd.NewCompositionRoot(configs, gormDB, membroker.New(), logger)

	registry, err := root.CreateHandlerRegistry()
	if err != nil {
		return err
	}
	replica := root.CreateWorker(registry)
	if err := replica.Register(ctx); err != nil {
		return err
	}

	periodicJobs := append(root.CreateSchedulerJobs(), root.CreateResourceManagerJobs()...)
	periodicJobs = append(
		periodicJobs,
		jobs.NewWorkerHeartbeatJob(root.CreateHeartbeatWorkerCommandHandler(), replica.ID(), logger),
	)
	manager := jobs.NewJobManager(periodicJobs...)
	if err := manager.StartAll(); err != nil {
		return err
	}
	defer manager.StopAll()

	go func() { _ = root.CreateResourceManager().Run(ctx) }()
	go func() { _ = replica.Run(ctx) }()

	return runAPI(ctx, &root, configs, logger)
}

func newLeaseManager(configs cmd.Config) ports.LeaseManager {
	return redislease.New(redis.NewClient(&redis.Options{Addr: configs.RedisAddr}))
}

// acquireLease blocks until the named lease is ours, then returns the
// renewal job keeping it alive. Standby instances wait here until the
// active one dies or lets the lease lapse.
func acquireLease(
	ctx context.Context,
	leases ports.LeaseManager,
	name string,
	holder string,
	ttl time.Duration,
	logger *slog.Logger,
) (*jobs.LeaseRenewalJob, error) {
	for {
		err := leases.Acquire(ctx, name, holder, ttl)
		if err == nil {
			return jobs.NewLeaseRenewalJob(leases, name, holder, ttl, logger), nil
		}
		if !errors.Is(err, ports.ErrLeaseHeld) {
			return nil, err
		}

		logger.Info("Lease held elsewhere, standing by", "lease", name)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(leaseRetryInterval):
		}
	}
}

func leaseHolder() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return fmt.Sprintf("%s-%d", hostname, os.Getpid())
}
