package commands

import (
	"errors"
	"strings"

	"tasking/internal/pkg/errs"
	"tasking/internal/pkg/guard"
)

var ErrRegisterWorkerCommandIsNotConstructed = errors.New(
	"RegisterWorkerCommand must be created via NewRegisterWorkerCommand constructor",
)

// RegisterWorkerCommand announces a worker replica to the system. Sent on
// worker startup; a replica restarting under the same name reclaims its
// existing registration and queue.
type RegisterWorkerCommand struct {
	name string

	guard guard.ConstructorGuard
}

// NewRegisterWorkerCommand creates a command to register the named worker
// replica.
func NewRegisterWorkerCommand(name string) (RegisterWorkerCommand, error) {
	if name == "" {
		return RegisterWorkerCommand{}, errs.NewValueIsRequiredError("name")
	}
	if strings.ContainsAny(name, " \t\n") {
		return RegisterWorkerCommand{}, errs.NewValueIsInvalidError("name")
	}

	return RegisterWorkerCommand{
		name:  name,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Name returns the worker replica name.
func (c *RegisterWorkerCommand) Name() string {
	return c.name
}

// Validate ensures the command was created through the constructor.
func (c *RegisterWorkerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterWorkerCommandIsNotConstructed)
}
