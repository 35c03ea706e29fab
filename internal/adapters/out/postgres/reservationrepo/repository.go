package reservationrepo

import (
	"context"
	"errors"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/reservation"
	"tasking/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormReservationRepository implements ReservationRepository using GORM.
type GormReservationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormReservationRepository creates a new GORM reservation repository.
func NewGormReservationRepository(db *gorm.DB, tracker aggregateTracker) *GormReservationRepository {
	return &GormReservationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new reservation to the database.
func (r *GormReservationRepository) Add(ctx context.Context, aggregate *reservation.Reservation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing reservation to the database.
func (r *GormReservationRepository) Update(ctx context.Context, aggregate *reservation.Reservation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ReservationDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves the reservation for a resource.
func (r *GormReservationRepository) Get(ctx context.Context, resource kernel.ResourceName) (*reservation.Reservation, error) {
	if err := resource.Validate(); err != nil {
		return nil, err
	}

	var dto ReservationDTO
	if err := r.db.WithContext(ctx).First(&dto, "resource = ?", resource.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("reservation", resource.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes the reservation for a resource. Deleting a missing
// reservation is not an error.
func (r *GormReservationRepository) Delete(ctx context.Context, resource kernel.ResourceName) error {
	if err := resource.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&ReservationDTO{}, "resource = ?", resource.String()).Error
}

// GetAll retrieves all current reservations.
func (r *GormReservationRepository) GetAll(ctx context.Context) ([]*reservation.Reservation, error) {
	var dtos []ReservationDTO
	if err := r.db.WithContext(ctx).Order("resource").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllByWorker retrieves the reservations held by a worker.
func (r *GormReservationRepository) GetAllByWorker(ctx context.Context, workerID kernel.UUID) ([]*reservation.Reservation, error) {
	if err := workerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ReservationDTO
	if err := r.db.WithContext(ctx).Order("resource").Find(&dtos, "worker_id = ?", workerID.Bytes()).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []ReservationDTO) ([]*reservation.Reservation, error) {
	reservations := make([]*reservation.Reservation, 0, len(dtos))
	for _, dto := range dtos {
		res, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, nil
}
