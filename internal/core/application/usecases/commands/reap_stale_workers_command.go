package commands

import (
	"errors"
	"time"

	"tasking/internal/pkg/errs"
	"tasking/internal/pkg/guard"
)

var ErrReapStaleWorkersCommandIsNotConstructed = errors.New(
	"ReapStaleWorkersCommand must be created via NewReapStaleWorkersCommand constructor",
)

// ReapStaleWorkersCommand takes workers whose heartbeat went silent
// offline and salvages the work assigned to them.
type ReapStaleWorkersCommand struct {
	timeout time.Duration

	guard guard.ConstructorGuard
}

// NewReapStaleWorkersCommand creates a reaping command with the given
// heartbeat timeout.
func NewReapStaleWorkersCommand(timeout time.Duration) (ReapStaleWorkersCommand, error) {
	if timeout <= 0 {
		return ReapStaleWorkersCommand{}, errs.NewValueIsInvalidError("timeout")
	}

	return ReapStaleWorkersCommand{
		timeout: timeout,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Timeout returns the heartbeat age beyond which a worker counts as stale.
func (c *ReapStaleWorkersCommand) Timeout() time.Duration {
	return c.timeout
}

// Validate ensures the command was created through the constructor.
func (c *ReapStaleWorkersCommand) Validate() error {
	return c.guard.Validate(ErrReapStaleWorkersCommandIsNotConstructed)
}
