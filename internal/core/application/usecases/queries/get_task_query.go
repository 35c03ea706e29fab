// Package queries contains read-only operations implementing the query
// side of the CQRS architecture. Query handlers bypass the domain model
// and read the database directly for performance.
package queries

import (
	"errors"
	"time"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/pkg/guard"
)

var ErrGetTaskQueryIsNotConstructed = errors.New(
	"GetTaskQuery must be created via NewGetTaskQuery constructor",
)

// GetTaskQuery retrieves the full state of a single task. Clients poll it
// with the identifier returned at submission to track progress and fetch
// the result.
//
// Example:
//
//	query, err := NewGetTaskQuery(taskID)
//	if err != nil {
//	    return err
//	}
//
//	status, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get task: %w", err)
//	}
//
//	fmt.Printf("Task %s is %s\n", status.ID, status.Status)
type GetTaskQuery struct {
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTaskQuery creates a query for the given task.
func NewGetTaskQuery(taskID kernel.UUID) (GetTaskQuery, error) {
	if err := taskID.Validate(); err != nil {
		return GetTaskQuery{}, err
	}

	return GetTaskQuery{
		taskID: taskID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// TaskID returns the identifier of the task being queried.
func (q GetTaskQuery) TaskID() kernel.UUID {
	return q.taskID
}

// Validate ensures the query was created through the constructor.
func (q GetTaskQuery) Validate() error {
	return q.guard.Validate(ErrGetTaskQueryIsNotConstructed)
}

// GetTaskQueryResponse is the read model for a single task.
type GetTaskQueryResponse struct {
	ID         kernel.UUID
	Name       string
	Resource   string
	Status     string
	WorkerID   *kernel.UUID
	Attempts   int
	MaxRetries int
	Payload    []byte
	Result     []byte
	Failure    string
	EnqueuedAt time.Time
	StartedAt  *time.Time
	FinishedAt *time.Time
}
