package queries

import (
	"errors"
	"time"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/pkg/guard"
)

var ErrGetUnfinishedTasksQueryIsNotConstructed = errors.New(
	"GetUnfinishedTasksQuery must be created via NewGetUnfinishedTasksQuery constructor",
)

// GetUnfinishedTasksQuery retrieves all tasks that have not reached a
// final status. Used by operators to inspect the current workload.
type GetUnfinishedTasksQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUnfinishedTasksQuery creates a query for the unfinished workload.
func NewGetUnfinishedTasksQuery() GetUnfinishedTasksQuery {
	return GetUnfinishedTasksQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUnfinishedTasksQuery) Validate() error {
	return q.guard.Validate(ErrGetUnfinishedTasksQueryIsNotConstructed)
}

// GetUnfinishedTasksQueryResponse is the read model for one unfinished
// task.
type GetUnfinishedTasksQueryResponse struct {
	ID         kernel.UUID
	Name       string
	Resource   string
	Status     string
	WorkerID   *kernel.UUID
	Attempts   int
	MaxRetries int
	EnqueuedAt time.Time
}
