// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
//
// Broker publications happen inside the transaction, before Commit. If the
// transaction then fails, consumers receive an envelope for a task that was
// never persisted and acknowledge it as unknown; the reverse, a committed
// task with no envelope, cannot happen.
package commands

import (
	"context"

	"tasking/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. These abstractions ensure data consistency across aggregate
// boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// TaskRepoFactory provides access to the task repository within a
	// transaction.
	TaskRepoFactory interface {
		TaskRepository() ports.TaskRepository
	}

	// WorkerRepoFactory provides access to the worker repository within a
	// transaction.
	WorkerRepoFactory interface {
		WorkerRepository() ports.WorkerRepository
	}

	// ReservationRepoFactory provides access to the reservation repository
	// within a transaction.
	ReservationRepoFactory interface {
		ReservationRepository() ports.ReservationRepository
	}

	// ScheduleRepoFactory provides access to the schedule repository
	// within a transaction.
	ScheduleRepoFactory interface {
		ScheduleRepository() ports.ScheduleRepository
	}

	// TaskUoW manages transactions for task-only operations.
	TaskUoW interface {
		TxManager
		TaskRepoFactory
	}

	// TaskUoWFactory creates new task unit of work instances.
	TaskUoWFactory interface {
		Create() TaskUoW
	}

	// WorkerUoW manages transactions for worker-only operations.
	WorkerUoW interface {
		TxManager
		WorkerRepoFactory
	}

	// WorkerUoWFactory creates new worker unit of work instances.
	WorkerUoWFactory interface {
		Create() WorkerUoW
	}

	// ScheduleUoW manages transactions spanning schedules and the tasks
	// they enqueue.
	ScheduleUoW interface {
		TxManager
		ScheduleRepoFactory
		TaskRepoFactory
	}

	// ScheduleUoWFactory creates new schedule unit of work instances.
	ScheduleUoWFactory interface {
		Create() ScheduleUoW
	}

	// UoW manages transactions across tasks, workers, and reservations.
	// Used by the coordinator-side commands (dispatch, completion, retry,
	// reaping) that touch multiple aggregate types atomically.
	UoW interface {
		TxManager
		TaskRepoFactory
		WorkerRepoFactory
		ReservationRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)
