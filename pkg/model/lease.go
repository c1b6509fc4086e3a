package model

import "time"

type LeaseStatus string

const (
	LeaseStatusActive    LeaseStatus = "active"
	LeaseStatusConfirmed LeaseStatus = "confirmed"
	LeaseStatusCancelled LeaseStatus = "cancelled"
	LeaseStatusExpired   LeaseStatus = "expired"
)

// Terminal reports whether a lease in this status accepts no further transition.
func (s LeaseStatus) Terminal() bool {
	return s == LeaseStatusConfirmed || s == LeaseStatusCancelled || s == LeaseStatusExpired
}

// Lease is a time-bounded claim on a quantity of an item. It is created
// Active and reaches exactly one terminal state via exactly one transition.
type Lease struct {
	ID          string      `json:"reservation_id"`
	SKU         string      `json:"sku"`
	RequesterID string      `json:"user_id"`
	Quantity    int         `json:"quantity"`
	Status      LeaseStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	ExpiresAt   time.Time   `json:"expires_at"`
}

// ExpiredAt reports whether the lease's expiry has passed at the given
// instant. Expiry is effective at the timestamp regardless of whether the
// sweeper has reclaimed the lease yet.
func (l Lease) ExpiredAt(now time.Time) bool {
	return !l.ExpiresAt.After(now)
}
