package workerrepo

import (
	"context"
	"errors"
	"time"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/worker"
	"tasking/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormWorkerRepository implements WorkerRepository using GORM.
type GormWorkerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWorkerRepository creates a new GORM worker repository.
func NewGormWorkerRepository(db *gorm.DB, tracker aggregateTracker) *GormWorkerRepository {
	return &GormWorkerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new worker to the database.
func (r *GormWorkerRepository) Add(ctx context.Context, aggregate *worker.Worker) error {
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

// Update saves an existing worker to the database.
func (r *GormWorkerRepository) Update(ctx context.Context, aggregate *worker.Worker) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&WorkerDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a worker by ID.
func (r *GormWorkerRepository) Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WorkerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("worker", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByName retrieves a worker by its unique replica name.
func (r *GormWorkerRepository) GetByName(ctx context.Context, name string) (*worker.Worker, error) {
	var dto WorkerDTO
	if err := r.db.WithContext(ctx).First(&dto, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("worker", name)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllOnline retrieves all workers in Online status.
func (r *GormWorkerRepository) GetAllOnline(ctx context.Context) ([]*worker.Worker, error) {
	var dtos []WorkerDTO
	if err := r.db.WithContext(ctx).Order("name").Find(&dtos, "status = ?", int(worker.Online)).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllStale retrieves online workers whose last heartbeat is older than
// the cutoff.
func (r *GormWorkerRepository) GetAllStale(ctx context.Context, cutoff time.Time) ([]*worker.Worker, error) {
	var dtos []WorkerDTO
	err := r.db.WithContext(ctx).
		Order("name").
		Find(&dtos, "status = ? AND last_heartbeat < ?", int(worker.Online), cutoff).
		Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []WorkerDTO) ([]*worker.Worker, error) {
	workers := make([]*worker.Worker, 0, len(dtos))
	for _, dto := range dtos {
		w, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		workers = append(workers, w)
	}
	return workers, nil
}
