package ports

import (
	"context"
	"errors"
	"time"
)

// ErrLeaseHeld is returned by Acquire when another holder owns the lease.
var ErrLeaseHeld = errors.New("lease is held by another process")

// ErrLeaseLost is returned by Renew or Release when the caller no longer
// owns the lease (it expired and may have been acquired by someone else).
var ErrLeaseLost = errors.New("lease is no longer held")

// LeaseManager provides expiring distributed mutual exclusion for the
// singleton processes of the topology: exactly one scheduler and exactly
// one resource manager may be active at a time, even when systemd restarts
// them on several hosts.
//
// A lease is owned by a (name, holder) pair. Holders renew well before the
// TTL elapses; a crashed holder's lease simply expires, letting a standby
// take over.
type LeaseManager interface {
	// Acquire takes the named lease for holder with the given TTL.
	// Returns ErrLeaseHeld if a different holder owns it.
	Acquire(ctx context.Context, name, holder string, ttl time.Duration) error

	// Renew extends the named lease. Returns ErrLeaseLost if the lease
	// expired or is owned by a different holder.
	Renew(ctx context.Context, name, holder string, ttl time.Duration) error

	// Release gives the lease up early. Returns ErrLeaseLost if the lease
	// is not owned by holder.
	Release(ctx context.Context, name, holder string) error
}
