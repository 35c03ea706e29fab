// Package memlease provides an in-memory LeaseManager for single-process
// deployments and tests. It honors the same expiry semantics as the
// Redis-backed implementation, scoped to one process.
package memlease

import (
	"context"
	"sync"
	"time"

	"tasking/internal/core/ports"
)

type lease struct {
	holder    string
	expiresAt time.Time
}

// LeaseManager keeps leases in a process-local map.
type LeaseManager struct {
	mu     sync.Mutex
	leases map[string]lease
	now    func() time.Time
}

// New creates an in-memory lease manager.
func New() *LeaseManager {
	return &LeaseManager{
		leases: make(map[string]lease),
		now:    time.Now,
	}
}

// Acquire takes the named lease for holder with the given TTL. Returns
// ports.ErrLeaseHeld if a different holder owns an unexpired lease.
func (m *LeaseManager) Acquire(_ context.Context, name, holder string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.leases[name]
	if ok && current.holder != holder && m.now().Before(current.expiresAt) {
		return ports.ErrLeaseHeld
	}

	m.leases[name] = lease{holder: holder, expiresAt: m.now().Add(ttl)}
	return nil
}

// Renew extends the named lease. Returns ports.ErrLeaseLost if the lease
// expired or is owned by a different holder.
func (m *LeaseManager) Renew(_ context.Context, name, holder string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.leases[name]
	if !ok || current.holder != holder || !m.now().Before(current.expiresAt) {
		return ports.ErrLeaseLost
	}

	m.leases[name] = lease{holder: holder, expiresAt: m.now().Add(ttl)}
	return nil
}

// Release gives the lease up early. Returns ports.ErrLeaseLost if the
// lease is not owned by holder.
func (m *LeaseManager) Release(_ context.Context, name, holder string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.leases[name]
	if !ok || current.holder != holder {
		return ports.ErrLeaseLost
	}

	delete(m.leases, name)
	return nil
}
