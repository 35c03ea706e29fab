package ports

import (
	"context"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/reservation"
)

// ReservationRepository defines the persistence contract for resource
// reservations. At most one reservation exists per resource name; the
// adapter enforces this with a uniqueness constraint.
type ReservationRepository interface {
	// Add persists a new reservation.
	Add(ctx context.Context, aggregate *reservation.Reservation) error

	// Update persists changes to an existing reservation.
	Update(ctx context.Context, aggregate *reservation.Reservation) error

	// Get retrieves the reservation for a resource, if any.
	Get(ctx context.Context, resource kernel.ResourceName) (*reservation.Reservation, error)

	// Delete removes the reservation for a resource.
	Delete(ctx context.Context, resource kernel.ResourceName) error

	// GetAll retrieves all current reservations.
	GetAll(ctx context.Context) ([]*reservation.Reservation, error)

	// GetAllByWorker retrieves the reservations held by a worker.
	GetAllByWorker(ctx context.Context, workerID kernel.UUID) ([]*reservation.Reservation, error)
}
