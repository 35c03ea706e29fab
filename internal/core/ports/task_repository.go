// Package ports defines the contracts between the application core and the
// infrastructure adapters: repositories, the unit of work, the broker
// transport, and the singleton lease. These interfaces enable dependency
// inversion and testability.
package ports

import (
	"context"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/task"
)

// TaskRepository defines the persistence contract for task aggregates.
type TaskRepository interface {
	// Add persists a new task aggregate to storage.
	Add(ctx context.Context, aggregate *task.Task) error

	// Update persists changes to an existing task aggregate.
	Update(ctx context.Context, aggregate *task.Task) error

	// Get retrieves a task aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*task.Task, error)

	// GetAllInStatus retrieves all tasks currently in the given status.
	GetAllInStatus(ctx context.Context, status task.Status) ([]*task.Task, error)

	// GetAllUnfinishedByWorker retrieves the Dispatched and Running tasks
	// assigned to a worker. Used by the reaper to requeue work lost with a
	// stale worker.
	GetAllUnfinishedByWorker(ctx context.Context, workerID kernel.UUID) ([]*task.Task, error)
}
