package taskrepo

import (
	"context"
	"errors"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/task"
	"tasking/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTaskRepository implements TaskRepository using GORM.
type GormTaskRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTaskRepository creates a new GORM task repository.
func NewGormTaskRepository(db *gorm.DB, tracker aggregateTracker) *GormTaskRepository {
	return &GormTaskRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new task to the database.
func (r *GormTaskRepository) Add(ctx context.Context, aggregate *task.Task) error {
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

// Update saves an existing task to the database. All columns are written
// so that cleared fields, like the worker of a requeued task, become NULL.
func (r *GormTaskRepository) Update(ctx context.Context, aggregate *task.Task) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TaskDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a task by ID.
func (r *GormTaskRepository) Get(ctx context.Context, id kernel.UUID) (*task.Task, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TaskDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("task", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInStatus retrieves all tasks in the given status, oldest first.
func (r *GormTaskRepository) GetAllInStatus(ctx context.Context, status task.Status) ([]*task.Task, error) {
	var dtos []TaskDTO
	if err := r.db.WithContext(ctx).Order("enqueued_at").Find(&dtos, "status = ?", int(status)).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllUnfinishedByWorker retrieves the Dispatched and Running tasks
// assigned to a worker.
func (r *GormTaskRepository) GetAllUnfinishedByWorker(ctx context.Context, workerID kernel.UUID) ([]*task.Task, error) {
	if err := workerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TaskDTO
	err := r.db.WithContext(ctx).
		Order("enqueued_at").
		Find(&dtos, "worker_id = ? AND status IN (?, ?)", workerID.Bytes(), int(task.Dispatched), int(task.Running)).
		Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []TaskDTO) ([]*task.Task, error) {
	tasks := make([]*task.Task, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
