package commands

import (
	"errors"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/pkg/guard"
)

var ErrHeartbeatWorkerCommandIsNotConstructed = errors.New(
	"HeartbeatWorkerCommand must be created via NewHeartbeatWorkerCommand constructor",
)

// HeartbeatWorkerCommand refreshes a worker's liveness timestamp.
type HeartbeatWorkerCommand struct {
	workerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewHeartbeatWorkerCommand creates a heartbeat command for the given
// worker.
func NewHeartbeatWorkerCommand(workerID kernel.UUID) (HeartbeatWorkerCommand, error) {
	if err := workerID.Validate(); err != nil {
		return HeartbeatWorkerCommand{}, err
	}

	return HeartbeatWorkerCommand{
		workerID: workerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// WorkerID returns the identifier of the worker sending the heartbeat.
func (c *HeartbeatWorkerCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// Validate ensures the command was created through the constructor.
func (c *HeartbeatWorkerCommand) Validate() error {
	return c.guard.Validate(ErrHeartbeatWorkerCommandIsNotConstructed)
}
