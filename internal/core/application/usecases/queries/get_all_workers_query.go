package queries

import (
	"errors"
	"time"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/pkg/guard"
)

var ErrGetAllWorkersQueryIsNotConstructed = errors.New(
	"GetAllWorkersQuery must be created via NewGetAllWorkersQuery constructor",
)

// GetAllWorkersQuery retrieves every registered worker replica together
// with its liveness state.
type GetAllWorkersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllWorkersQuery creates a query for the worker fleet.
func NewGetAllWorkersQuery() GetAllWorkersQuery {
	return GetAllWorkersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllWorkersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllWorkersQueryIsNotConstructed)
}

// GetAllWorkersQueryResponse is the read model for one worker replica.
type GetAllWorkersQueryResponse struct {
	ID            kernel.UUID
	Name          string
	Status        string
	LastHeartbeat time.Time
}
