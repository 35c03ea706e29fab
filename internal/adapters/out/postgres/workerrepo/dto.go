// Package workerrepo provides data transfer objects and mapping functions
// for worker persistence.
package workerrepo

import (
	"time"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/worker"

	"github.com/google/uuid"
)

// WorkerDTO represents the database structure for persisting worker
// aggregates. The replica name carries a uniqueness constraint so a
// restarting replica reclaims its row.
type WorkerDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"uniqueIndex;not null"`
	Status        int       `gorm:"index"`
	LastHeartbeat time.Time `gorm:"index"`
}

// TableName specifies the database table name for worker entities.
func (WorkerDTO) TableName() string {
	return "workers"
}

func fromDomain(aggregate *worker.Worker) WorkerDTO {
	return WorkerDTO{
		ID:            aggregate.ID().Bytes(),
		Name:          aggregate.Name(),
		Status:        int(aggregate.Status()),
		LastHeartbeat: aggregate.LastHeartbeat(),
	}
}

func toDomain(dto WorkerDTO) (*worker.Worker, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return worker.RestoreWorker(id, dto.Name, worker.Status(dto.Status), dto.LastHeartbeat)
}
