// Package schedulerepo provides data transfer objects and mapping
// functions for schedule persistence.
package schedulerepo

import (
	"time"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/schedule"

	"github.com/google/uuid"
)

// ScheduleDTO represents the database structure for persisting recurring
// task schedules. next_run_at is indexed for the due-schedule sweep.
type ScheduleDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"uniqueIndex;not null"`
	TaskName   string    `gorm:"not null"`
	Resource   *string
	Payload    []byte `gorm:"type:bytea"`
	CronExpr   string `gorm:"not null"`
	MaxRetries int
	Enabled    bool `gorm:"index"`
	LastRunAt  *time.Time
	NextRunAt  time.Time `gorm:"index"`
}

// TableName specifies the database table name for schedule entities.
func (ScheduleDTO) TableName() string {
	return "schedules"
}

func fromDomain(aggregate *schedule.Schedule) ScheduleDTO {
	var resource *string
	if r := aggregate.Resource(); r != nil {
		s := r.String()
		resource = &s
	}

	return ScheduleDTO{
		ID:         aggregate.ID().Bytes(),
		Name:       aggregate.Name(),
		TaskName:   aggregate.TaskName(),
		Resource:   resource,
		Payload:    aggregate.Payload(),
		CronExpr:   aggregate.CronExpr(),
		MaxRetries: aggregate.MaxRetries(),
		Enabled:    aggregate.Enabled(),
		LastRunAt:  aggregate.LastRunAt(),
		NextRunAt:  aggregate.NextRunAt(),
	}
}

func toDomain(dto ScheduleDTO) (*schedule.Schedule, error) {
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

	return schedule.RestoreSchedule(
		id,
		dto.Name,
		dto.TaskName,
		resource,
		dto.Payload,
		dto.CronExpr,
		dto.MaxRetries,
		dto.Enabled,
		dto.LastRunAt,
		dto.NextRunAt,
	)
}
