// Package reservation contains the Reservation aggregate: the binding of a
// named resource to the single worker currently allowed to execute that
// resource's tasks.
//
// A reservation is created when the coordinator routes the first task for a
// resource and carries a count of in-flight tasks. While the count is above
// zero every further task for the same resource is routed to the same
// worker; when it drops to zero the reservation is removed and the resource
// may be re-reserved by any worker.
package reservation

import (
	"errors"
	"time"

	"tasking/internal/core/domain/model/kernel"
)

var (
	// ErrReservationIsNotConstructed is returned when a Reservation was not
	// created through NewReservation or RestoreReservation.
	ErrReservationIsNotConstructed = errors.New(
		"Reservation must be created via NewReservation or RestoreReservation constructor")

	// ErrNothingToRelease is returned by Release when no tasks are in
	// flight for the reservation.
	ErrNothingToRelease = errors.New("reservation has no in-flight tasks to release")
)

// Reservation is the aggregate root binding a resource to a worker.
type Reservation struct {
	id         kernel.UUID
	resource   kernel.ResourceName
	workerID   kernel.UUID
	inFlight   int
	reservedAt time.Time

	isConstructed bool
}

// NewReservation reserves a resource for a worker with one in-flight task.
func NewReservation(id kernel.UUID, resource kernel.ResourceName, workerID kernel.UUID, now time.Time) (*Reservation, error) {
	r := &Reservation{
		inFlight:      1,
		reservedAt:    now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		resource.Validate(),
		workerID.Validate(),
	); err != nil {
		return nil, err
	}

	r.id = id
	r.resource = resource
	r.workerID = workerID
	return r, nil
}

// RestoreReservation reconstructs a reservation from persistence.
func RestoreReservation(
	id kernel.UUID,
	resource kernel.ResourceName,
	workerID kernel.UUID,
	inFlight int,
	reservedAt time.Time,
) (*Reservation, error) {
	if err := errors.Join(
		id.Validate(),
		resource.Validate(),
		workerID.Validate(),
	); err != nil {
		return nil, err
	}
	if inFlight < 1 {
		return nil, ErrNothingToRelease
	}

	return &Reservation{
		id:            id,
		resource:      resource,
		workerID:      workerID,
		inFlight:      inFlight,
		reservedAt:    reservedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Reservation was properly constructed.
func (r *Reservation) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReservationIsNotConstructed
	}
	return nil
}

// ID returns the reservation's unique identifier.
func (r *Reservation) ID() kernel.UUID {
	return r.id
}

// Resource returns the reserved resource name.
func (r *Reservation) Resource() kernel.ResourceName {
	return r.resource
}

// Worker returns the ID of the worker holding the reservation.
func (r *Reservation) Worker() kernel.UUID {
	return r.workerID
}

// InFlight returns the number of tasks currently counted against the
// reservation.
func (r *Reservation) InFlight() int {
	return r.inFlight
}

// ReservedAt returns when the reservation was created.
func (r *Reservation) ReservedAt() time.Time {
	return r.reservedAt
}

// Acquire counts one more in-flight task against the reservation.
// Used when another task for the already-reserved resource is routed to
// the holding worker.
func (r *Reservation) Acquire() {
	r.inFlight++
}

// Release counts one task as finished.
// The caller deletes the reservation when IsIdle reports true afterwards.
func (r *Reservation) Release() error {
	if r.inFlight < 1 {
		return ErrNothingToRelease
	}
	r.inFlight--
	return nil
}

// IsIdle reports whether no tasks are in flight for the reservation.
func (r *Reservation) IsIdle() bool {
	return r.inFlight == 0
}
