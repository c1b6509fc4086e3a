// Package registry owns the set of leases and drives every ledger
// adjustment through lease state transitions. A lease is created Active by
// Reserve and reaches exactly one terminal state (Confirmed, Cancelled or
// Expired) via exactly one transition; racing callers observe the lease
// already terminal and get a not-found error instead of a second transition.
package registry

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	reserrors "stockhold/internal/reservations/errors"
	"stockhold/internal/reservations/ledger"
	"stockhold/pkg/clock"
	"stockhold/pkg/model"
)

const DefaultLeaseDuration = 5 * time.Minute

type Registry struct {
	mu       sync.Mutex
	ledger   *ledger.Ledger
	clock    clock.Clock
	duration time.Duration

	// byKey maps "sku/requester" to that pair's latest lease; the entry is
	// the idempotency key and is replaced when a new lease is issued after
	// the prior one went terminal.
	byKey map[string]*model.Lease

	// byID is the lease log consulted by confirm/cancel/sweep/status.
	// Terminal leases stay for status lookups; the core is non-persistent
	// so growth is bounded by lease churn within a process lifetime.
	byID map[string]*model.Lease
}

type Option func(*Registry)

// WithLeaseDuration overrides how long a new lease stays reservable.
func WithLeaseDuration(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.duration = d
		}
	}
}

func New(l *ledger.Ledger, clk clock.Clock, opts ...Option) *Registry {
	r := &Registry{
		ledger:   l,
		clock:    clk,
		duration: DefaultLeaseDuration,
		byKey:    make(map[string]*model.Lease),
		byID:     make(map[string]*model.Lease),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func leaseKey(sku, requesterID string) string {
	return sku + "/" + requesterID
}

// Reserve places a hold of qty units of sku for requesterID. Retried calls
// while the prior lease is live return that same lease without touching the
// ledger. The idempotency check and the stock decrement are one atomic unit
// with respect to other reserves for the same key.
func (r *Registry) Reserve(sku string, qty int, requesterID string) (model.Lease, error) {
	if qty <= 0 {
		return model.Lease{}, reserrors.ErrInvalidQuantity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	key := leaseKey(sku, requesterID)

	if existing, ok := r.byKey[key]; ok && existing.Status == model.LeaseStatusActive {
		if !existing.ExpiredAt(now) {
			return *existing, nil
		}
		// The pair's prior lease lapsed but the sweeper has not run yet.
		// Reclaim it here so the pair never holds two Active leases.
		if err := r.transitionLocked(existing, model.LeaseStatusExpired); err != nil {
			return model.Lease{}, err
		}
	}

	if err := r.ledger.Decrement(sku, qty); err != nil {
		return model.Lease{}, err
	}

	lease := &model.Lease{
		ID:          uuid.NewString(),
		SKU:         sku,
		RequesterID: requesterID,
		Quantity:    qty,
		Status:      model.LeaseStatusActive,
		CreatedAt:   now,
		ExpiresAt:   now.Add(r.duration),
	}
	r.byKey[key] = lease
	r.byID[lease.ID] = lease

	return *lease, nil
}

// Confirm converts an Active, unexpired lease into a permanent deduction.
// A lease whose expiry has passed fails here even if the sweeper has not
// reclaimed it yet: expiry is effective at the timestamp. Stock is not
// restored on confirm.
func (r *Registry) Confirm(id string) (model.Lease, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lease, ok := r.byID[id]
	if !ok || lease.Status != model.LeaseStatusActive || lease.ExpiredAt(r.clock.Now()) {
		return model.Lease{}, reserrors.ErrLeaseNotFoundOrExpired
	}

	lease.Status = model.LeaseStatusConfirmed
	r.clearKeyLocked(lease)
	return *lease, nil
}

// Release moves an Active lease to the given terminal state and returns its
// quantity to the ledger. Expiry state is irrelevant: an explicit cancel is
// honored even when the lease technically lapsed before the sweeper ran.
func (r *Registry) Release(id string, reason model.LeaseStatus) (model.Lease, error) {
	if reason != model.LeaseStatusCancelled && reason != model.LeaseStatusExpired {
		return model.Lease{}, reserrors.ErrLeaseNotFoundOrProcessed
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	lease, ok := r.byID[id]
	if !ok || lease.Status != model.LeaseStatusActive {
		return model.Lease{}, reserrors.ErrLeaseNotFoundOrProcessed
	}

	err := r.transitionLocked(lease, reason)
	return *lease, err
}

// SweepExpired reclaims every Active lease whose expiry has passed and
// returns the reclaimed leases. Each reclaim is independently atomic: the
// scan snapshots candidates, then claims them one at a time so a lease
// confirmed or cancelled in between is simply skipped. Ledger
// inconsistencies found while restocking are joined into the returned
// error; the affected leases still go terminal.
func (r *Registry) SweepExpired(now time.Time) ([]model.Lease, error) {
	r.mu.Lock()
	var candidates []string
	for id, lease := range r.byID {
		if lease.Status == model.LeaseStatusActive && lease.ExpiredAt(now) {
			candidates = append(candidates, id)
		}
	}
	r.mu.Unlock()

	var swept []model.Lease
	var sweepErr error
	for _, id := range candidates {
		r.mu.Lock()
		lease, ok := r.byID[id]
		if ok && lease.Status == model.LeaseStatusActive && lease.ExpiredAt(now) {
			if err := r.transitionLocked(lease, model.LeaseStatusExpired); err != nil {
				sweepErr = errors.Join(sweepErr, err)
			}
			swept = append(swept, *lease)
		}
		r.mu.Unlock()
	}
	return swept, sweepErr
}

// Status returns the lease by id. An Active lease whose expiry has passed
// is reported as Expired without mutating state; reclamation stays with
// the sweeper.
func (r *Registry) Status(id string) (model.Lease, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lease, ok := r.byID[id]
	if !ok {
		return model.Lease{}, reserrors.ErrLeaseNotFound
	}

	view := *lease
	if view.Status == model.LeaseStatusActive && view.ExpiredAt(r.clock.Now()) {
		view.Status = model.LeaseStatusExpired
	}
	return view, nil
}

// ActiveQuantity sums the quantities held by Active leases for a sku.
func (r *Registry) ActiveQuantity(sku string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for _, lease := range r.byID {
		if lease.SKU == sku && lease.Status == model.LeaseStatusActive {
			total += lease.Quantity
		}
	}
	return total
}

// transitionLocked moves an Active lease to a restocking terminal state.
// The lease is marked terminal even when the restock reports an
// inconsistency; leaving it Active would hand the stock back a second time
// on the next sweep.
func (r *Registry) transitionLocked(lease *model.Lease, reason model.LeaseStatus) error {
	lease.Status = reason
	r.clearKeyLocked(lease)
	return r.ledger.Increment(lease.SKU, lease.Quantity)
}

// clearKeyLocked frees the (sku, requester) idempotency slot, but only when
// it still points at this lease; a newer lease may have taken the slot
// after this one lapsed.
func (r *Registry) clearKeyLocked(lease *model.Lease) {
	key := leaseKey(lease.SKU, lease.RequesterID)
	if current, ok := r.byKey[key]; ok && current == lease {
		delete(r.byKey, key)
	}
}
