package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"tasking/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// LeaseRenewalJob keeps a singleton process's lease alive. Runs every five
// seconds; the lease TTL must be a multiple of that so a missed renewal or
// two does not forfeit the lease.
//
// When renewal reports the lease lost, the job stops renewing and closes
// the Lost channel. The process must exit at that point: another instance
// may already hold the lease.
type LeaseRenewalJob struct {
	leases   ports.LeaseManager
	name     string
	holder   string
	ttl      time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
	lost     chan struct{}
	lostOnce sync.Once
}

// NewLeaseRenewalJob creates a renewal job for the named lease owned by
// holder.
func NewLeaseRenewalJob(
	leases ports.LeaseManager,
	name string,
	holder string,
	ttl time.Duration,
	logger *slog.Logger,
) *LeaseRenewalJob {
	return &LeaseRenewalJob{
		leases: leases,
		name:   name,
		holder: holder,
		ttl:    ttl,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "lease_renewal_job", "lease", name),
		lost:   make(chan struct{}),
	}
}

// Lost is closed when the lease could not be renewed and the process no
// longer holds exclusivity.
func (j *LeaseRenewalJob) Lost() <-chan struct{} {
	return j.lost
}

// Start begins the renewal job to run every five seconds.
func (j *LeaseRenewalJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()

		renewErr := j.leases.Renew(ctx, j.name, j.holder, j.ttl)
		switch {
		case renewErr == nil:
		case errors.Is(renewErr, ports.ErrLeaseLost):
			j.logger.ErrorContext(ctx, "Lease lost, stopping renewal")
			j.cron.Stop()
			j.lostOnce.Do(func() { close(j.lost) })
		default:
			// Transient renewal errors are survivable while the TTL lasts
			j.logger.WarnContext(ctx, "Lease renewal failed", "error", renewErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Lease renewal job started (running every five seconds)")
	return nil
}

// Stop stops the renewal job and releases the lease so a standby can take
// over immediately instead of waiting out the TTL.
func (j *LeaseRenewalJob) Stop() {
	j.cron.Stop()

	select {
	case <-j.lost:
		// Nothing to release
	default:
		if err := j.leases.Release(context.Background(), j.name, j.holder); err != nil {
			j.logger.Warn("Lease release failed", "error", err)
		}
	}

	j.logger.Info("Lease renewal job stopped")
}
