package model

// ReserveRequest is the payload for placing a hold on inventory.
// Quantity defaults to 1 when omitted, matching the public API contract.
type ReserveRequest struct {
	SKU      string `json:"sku" validate:"required,sku"`
	Quantity int    `json:"quantity" validate:"omitempty,gt=0,max=1000"`
	UserID   string `json:"user_id" validate:"required,min=1,max=100"`
}

// CheckoutRequest targets an existing reservation by id.
type CheckoutRequest struct {
	ReservationID string `json:"reservation_id" validate:"required"`
}
