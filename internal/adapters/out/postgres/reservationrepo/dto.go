// Package reservationrepo provides data transfer objects and mapping
// functions for resource reservation persistence.
package reservationrepo

import (
	"time"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/reservation"

	"github.com/google/uuid"
)

// ReservationDTO represents the database structure for persisting
// reservations. The resource name carries a uniqueness constraint, which
// is what enforces one holder per resource even under concurrent
// dispatchers.
type ReservationDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Resource   string    `gorm:"uniqueIndex;not null"`
	WorkerID   uuid.UUID `gorm:"type:uuid;index"`
	InFlight   int
	ReservedAt time.Time
}

// TableName specifies the database table name for reservation entities.
func (ReservationDTO) TableName() string {
	return "reservations"
}

func fromDomain(aggregate *reservation.Reservation) ReservationDTO {
	return ReservationDTO{
		ID:         aggregate.ID().Bytes(),
		Resource:   aggregate.Resource().String(),
		WorkerID:   aggregate.Worker().Bytes(),
		InFlight:   aggregate.InFlight(),
		ReservedAt: aggregate.ReservedAt(),
	}
}

func toDomain(dto ReservationDTO) (*reservation.Reservation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	resource, err := kernel.ResourceNameFromString(dto.Resource)
	if err != nil {
		return nil, err
	}

	workerID, err := kernel.UUIDFromBytes(dto.WorkerID[:])
	if err != nil {
		return nil, err
	}

	return reservation.RestoreReservation(id, resource, workerID, dto.InFlight, dto.ReservedAt)
}
