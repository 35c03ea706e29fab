package ports

import (
	"context"
	"time"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/schedule"
)

// ScheduleRepository defines the persistence contract for recurring task
// schedules. Schedule names are unique.
type ScheduleRepository interface {
	// Add persists a new schedule.
	Add(ctx context.Context, aggregate *schedule.Schedule) error

	// Update persists changes to an existing schedule.
	Update(ctx context.Context, aggregate *schedule.Schedule) error

	// Get retrieves a schedule by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*schedule.Schedule, error)

	// GetByName retrieves a schedule by its unique name.
	GetByName(ctx context.Context, name string) (*schedule.Schedule, error)

	// GetAllDue retrieves the enabled schedules whose next run is at or
	// before now. Used by the scheduler tick.
	GetAllDue(ctx context.Context, now time.Time) ([]*schedule.Schedule, error)

	// GetAllEnabled retrieves all enabled schedules.
	GetAllEnabled(ctx context.Context) ([]*schedule.Schedule, error)
}
