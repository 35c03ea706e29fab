package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and repository instances bound to the
// current transaction. Client code must explicitly manage the transaction
// lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// TaskRepository returns a TaskRepository bound to the current
	// transaction.
	TaskRepository() TaskRepository

	// WorkerRepository returns a WorkerRepository bound to the current
	// transaction.
	WorkerRepository() WorkerRepository

	// ReservationRepository returns a ReservationRepository bound to the
	// current transaction.
	ReservationRepository() ReservationRepository

	// ScheduleRepository returns a ScheduleRepository bound to the current
	// transaction.
	ScheduleRepository() ScheduleRepository
}
