package ports

import (
	"context"
	"time"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/worker"
)

// WorkerRepository defines the persistence contract for worker aggregates.
// Worker names are unique; registration of a restarting replica updates
// the existing row.
type WorkerRepository interface {
	// Add persists a new worker aggregate to storage.
	Add(ctx context.Context, aggregate *worker.Worker) error

	// Update persists changes to an existing worker aggregate.
	Update(ctx context.Context, aggregate *worker.Worker) error

	// Get retrieves a worker aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error)

	// GetByName retrieves a worker aggregate by its unique replica name.
	GetByName(ctx context.Context, name string) (*worker.Worker, error)

	// GetAllOnline retrieves all workers currently in Online status.
	GetAllOnline(ctx context.Context) ([]*worker.Worker, error)

	// GetAllStale retrieves online workers whose last heartbeat is older
	// than the cutoff. These are candidates for reaping.
	GetAllStale(ctx context.Context, cutoff time.Time) ([]*worker.Worker, error)
}
