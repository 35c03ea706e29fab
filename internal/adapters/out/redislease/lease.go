// Package redislease implements the LeaseManager port on Redis. A lease
// is a key holding the holder's identity with a TTL; SET NX gives mutual
// exclusion, and Lua scripts make renew and release atomic
// check-then-act operations.
package redislease

import (
	"context"
	"errors"
	"time"

	"tasking/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "tasking:lease:"

// renewScript extends the TTL only while the caller still holds the key.
var renewScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// releaseScript deletes the key only while the caller still holds it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LeaseManager provides distributed leases backed by Redis keys.
type LeaseManager struct {
	client *redis.Client
}

// New creates a lease manager on the given Redis client.
func New(client *redis.Client) *LeaseManager {
	return &LeaseManager{client: client}
}

func leaseKey(name string) string {
	return keyPrefix + name
}

// Acquire takes the named lease for holder with the given TTL. Returns
// ports.ErrLeaseHeld if a different holder owns it. Re-acquiring an
// already-held lease refreshes its TTL.
func (m *LeaseManager) Acquire(ctx context.Context, name, holder string, ttl time.Duration) error {
	ok, err := m.client.SetNX(ctx, leaseKey(name), holder, ttl).Result()
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	// The key exists; it may be our own from a previous run.
	owner, err := m.client.Get(ctx, leaseKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Expired between SETNX and GET; next attempt will win.
			return ports.ErrLeaseHeld
		}
		return err
	}
	if owner != holder {
		return ports.ErrLeaseHeld
	}

	return m.Renew(ctx, name, holder, ttl)
}

// Renew extends the named lease. Returns ports.ErrLeaseLost if the lease
// expired or is owned by a different holder.
func (m *LeaseManager) Renew(ctx context.Context, name, holder string, ttl time.Duration) error {
	extended, err := renewScript.Run(ctx, m.client, []string{leaseKey(name)}, holder, ttl.Milliseconds()).Int()
	if err != nil {
		return err
	}
	if extended == 0 {
		return ports.ErrLeaseLost
	}
	return nil
}

// Release gives the lease up early. Returns ports.ErrLeaseLost if the
// lease is not owned by holder.
func (m *LeaseManager) Release(ctx context.Context, name, holder string) error {
	deleted, err := releaseScript.Run(ctx, m.client, []string{leaseKey(name)}, holder).Int()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ports.ErrLeaseLost
	}
	return nil
}
