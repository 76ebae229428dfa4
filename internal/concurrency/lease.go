// Package concurrency provides per-key lease locks. A lease is a mutual
// exclusion grant that expires on its own: a holder that crashes or forgets
// to release never wedges the key, which is the failure mode the legacy
// advisory busy flags suffered from.
package concurrency

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultLeaseTTL bounds how long a multi-step action may hold a player
// before the lease becomes claimable by someone else.
const DefaultLeaseTTL = 2 * time.Minute

// pollInterval is how often a blocked Acquire re-checks a held lease.
const pollInterval = 25 * time.Millisecond

// Lease is a held lock. Release it exactly once; releasing an expired or
// superseded lease is a no-op.
type Lease struct {
	Key       int64
	Token     string
	ExpiresAt time.Time
}

// LeaseManager hands out per-key leases. Leases for different keys never
// contend with each other.
type LeaseManager struct {
	mu     sync.Mutex
	leases map[int64]*Lease
	ttl    time.Duration
	now    func() time.Time
}

// NewLeaseManager creates a manager with the given TTL; ttl <= 0 selects
// DefaultLeaseTTL.
func NewLeaseManager(ttl time.Duration) *LeaseManager {
	if ttl <= 0 {
		ttl = DefaultLeaseTTL
	}
	return &LeaseManager{
		leases: make(map[int64]*Lease),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TryAcquire attempts to take the lease without blocking. Expired leases are
// claimable immediately.
func (m *LeaseManager) TryAcquire(key int64) (*Lease, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if held, ok := m.leases[key]; ok && held.ExpiresAt.After(m.now()) {
		return nil, false
	}
	lease := &Lease{
		Key:       key,
		Token:     uuid.NewString(),
		ExpiresAt: m.now().Add(m.ttl),
	}
	m.leases[key] = lease
	return lease, true
}

// Acquire blocks until the lease is taken or the context ends.
func (m *LeaseManager) Acquire(ctx context.Context, key int64) (*Lease, error) {
	for {
		if lease, ok := m.TryAcquire(key); ok {
			return lease, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// Release frees the lease if it is still the current holder. Stale releases
// (expired and re-claimed leases) are ignored, so a slow holder cannot free
// somebody else's lease.
func (m *LeaseManager) Release(lease *Lease) {
	if lease == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if held, ok := m.leases[lease.Key]; ok && held.Token == lease.Token {
		delete(m.leases, lease.Key)
	}
}

// Held reports whether an unexpired lease exists for the key.
func (m *LeaseManager) Held(key int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	held, ok := m.leases[key]
	return ok && held.ExpiresAt.After(m.now())
}

// SweepExpired drops expired leases and returns how many were removed. The
// maintenance worker calls this periodically; it is bookkeeping only, since
// expired leases are already claimable.
func (m *LeaseManager) SweepExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	now := m.now()
	for key, held := range m.leases {
		if !held.ExpiresAt.After(now) {
			delete(m.leases, key)
			removed++
		}
	}
	return removed
}
