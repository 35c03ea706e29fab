// Package taskrepo provides data transfer objects and mapping functions
// for task persistence. It implements the repository pattern for the task
// aggregate, converting between domain entities and database rows.
package taskrepo

import (
	"time"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/task"

	"github.com/google/uuid"
)

// TaskDTO represents the database structure for persisting task
// aggregates. Indexed by status and worker for the dispatch and reaping
// queries.
type TaskDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name       string     `gorm:"not null"`
	Resource   *string    `gorm:"index"`
	Payload    []byte     `gorm:"type:bytea"`
	Status     int        `gorm:"index"`
	WorkerID   *uuid.UUID `gorm:"type:uuid;index"`
	Attempts   int
	MaxRetries int
	Result     []byte `gorm:"type:bytea"`
	Failure    string
	EnqueuedAt time.Time `gorm:"index"`
	StartedAt  *time.Time
	FinishedAt *time.Time
}

// TableName specifies the database table name for task entities.
func (TaskDTO) TableName() string {
	return "tasks"
}

func fromDomain(aggregate *task.Task) TaskDTO {
	var resource *string
	if r := aggregate.Resource(); r != nil {
		s := r.String()
		resource = &s
	}

	var workerID *uuid.UUID
	if id := aggregate.Worker(); id != nil {
		raw := id.Bytes()
		workerID = &raw
	}

	return TaskDTO{
		ID:         aggregate.ID().Bytes(),
		Name:       aggregate.Name(),
		Resource:   resource,
		Payload:    aggregate.Payload(),
		Status:     int(aggregate.Status()),
		WorkerID:   workerID,
		Attempts:   aggregate.Attempts(),
		MaxRetries: aggregate.MaxRetries(),
		Result:     aggregate.Result(),
		Failure:    aggregate.Failure(),
		EnqueuedAt: aggregate.EnqueuedAt(),
		StartedAt:  aggregate.StartedAt(),
		FinishedAt: aggregate.FinishedAt(),
	}
}

func toDomain(dto TaskDTO) (*task.Task, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var resource *kernel.ResourceName
	if dto.Resource != nil {
		r, resourceErr := kernel.ResourceNameFromString(*dto.Resource)
		if resourceErr != nil {
			return nil, resourceErr
		}
		resource = &r
	}

	var workerID *kernel.UUID
	if dto.WorkerID != nil {
		wID, workerErr := kernel.UUIDFromBytes((*dto.WorkerID)[:])
		if workerErr != nil {
			return nil, workerErr
		}
		workerID = &wID
	}

	return task.RestoreTask(
		id,
		dto.Name,
		resource,
		dto.Payload,
		task.Status(dto.Status),
		workerID,
		dto.Attempts,
		dto.MaxRetries,
		dto.Result,
		dto.Failure,
		dto.EnqueuedAt,
		dto.StartedAt,
		dto.FinishedAt,
	)
}
