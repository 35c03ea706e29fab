package schedulerepo

import (
	"context"
	"errors"
	"time"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/schedule"
	"tasking/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormScheduleRepository implements ScheduleRepository using GORM.
type GormScheduleRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormScheduleRepository creates a new GORM schedule repository.
func NewGormScheduleRepository(db *gorm.DB, tracker aggregateTracker) *GormScheduleRepository {
	return &GormScheduleRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new schedule to the database.
func (r *GormScheduleRepository) Add(ctx context.Context, aggregate *schedule.Schedule) error {
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

// Update saves an existing schedule to the database.
func (r *GormScheduleRepository) Update(ctx context.Context, aggregate *schedule.Schedule) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ScheduleDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a schedule by ID.
func (r *GormScheduleRepository) Get(ctx context.Context, id kernel.UUID) (*schedule.Schedule, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ScheduleDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("schedule", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByName retrieves a schedule by its unique name.
func (r *GormScheduleRepository) GetByName(ctx context.Context, name string) (*schedule.Schedule, error) {
	var dto ScheduleDTO
	if err := r.db.WithContext(ctx).First(&dto, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("schedule", name)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllDue retrieves the enabled schedules whose next run time has
// passed, ordered so the longest-overdue fires first.
func (r *GormScheduleRepository) GetAllDue(ctx context.Context, now time.Time) ([]*schedule.Schedule, error) {
	var dtos []ScheduleDTO
	err := r.db.WithContext(ctx).
		Order("next_run_at").
		Find(&dtos, "enabled = ? AND next_run_at <= ?", true, now).
		Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllEnabled retrieves all enabled schedules.
func (r *GormScheduleRepository) GetAllEnabled(ctx context.Context) ([]*schedule.Schedule, error) {
	var dtos []ScheduleDTO
	if err := r.db.WithContext(ctx).Order("name").Find(&dtos, "enabled = ?", true).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []ScheduleDTO) ([]*schedule.Schedule, error) {
	schedules := make([]*schedule.Schedule, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, nil
}
