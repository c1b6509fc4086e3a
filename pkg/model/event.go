package model

import "time"

// Lease lifecycle event types published to the event bus.
const (
	EventLeaseReserved  = "lease.reserved"
	EventLeaseConfirmed = "lease.confirmed"
	EventLeaseCancelled = "lease.cancelled"
	EventLeaseExpired   = "lease.expired"
)

// LeaseEvent is the wire form of a lease state change. Keyed by SKU on the
// bus so per-item event order is stable.
type LeaseEvent struct {
	Type          string    `json:"type"`
	ReservationID string    `json:"reservation_id"`
	SKU           string    `json:"sku"`
	UserID        string    `json:"user_id"`
	Quantity      int       `json:"quantity"`
	Status        string    `json:"status"`
	ExpiresAt     time.Time `json:"expires_at"`
	OccurredAt    time.Time `json:"occurred_at"`
}
