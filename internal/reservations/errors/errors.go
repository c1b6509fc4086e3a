package errors

import "errors"

var (
	ErrItemNotFound = errors.New("item not found")

	ErrInvalidQuantity = errors.New("quantity must be greater than zero")

	ErrInsufficientStock = errors.New("insufficient stock available")

	ErrLeaseNotFound = errors.New("reservation not found")

	ErrLeaseNotFoundOrExpired = errors.New("reservation not found or expired")

	ErrLeaseNotFoundOrProcessed = errors.New("reservation not found or already processed")

	// ErrInternalInconsistency signals a ledger invariant violation
	// (available exceeding total). It indicates a registry/ledger bug and
	// must be surfaced loudly, never masked.
	ErrInternalInconsistency = errors.New("inventory internal inconsistency")
)
