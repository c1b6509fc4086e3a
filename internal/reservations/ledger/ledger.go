// Package ledger owns the authoritative total/available quantity counters
// per item. All mutation goes through Decrement and Increment; both are
// indivisible with respect to concurrent callers.
package ledger

import (
	"fmt"
	"sync"

	reserrors "stockhold/internal/reservations/errors"
	"stockhold/pkg/model"
)

type Ledger struct {
	mu    sync.Mutex
	items map[string]*model.Item
	order []string
}

// New builds a ledger from the loaded catalog. Items with a duplicate SKU
// replace the earlier entry; insertion order is preserved for ListAll.
func New(items []model.Item) *Ledger {
	l := &Ledger{
		items: make(map[string]*model.Item, len(items)),
	}
	for i := range items {
		item := items[i]
		if _, exists := l.items[item.SKU]; !exists {
			l.order = append(l.order, item.SKU)
		}
		l.items[item.SKU] = &item
	}
	return l
}

// Get returns a copy of the item for the given SKU.
func (l *Ledger) Get(sku string) (model.Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	item, ok := l.items[sku]
	if !ok {
		return model.Item{}, reserrors.ErrItemNotFound
	}
	return *item, nil
}

// ListAll returns a snapshot of every item in catalog insertion order.
// The snapshot is a copy, not a live view.
func (l *Ledger) ListAll() []model.Item {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]model.Item, 0, len(l.order))
	for _, sku := range l.order {
		items = append(items, *l.items[sku])
	}
	return items
}

// Decrement atomically subtracts qty from the item's available quantity.
// The availability check and the subtraction happen as one step.
func (l *Ledger) Decrement(sku string, qty int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	item, ok := l.items[sku]
	if !ok {
		return reserrors.ErrItemNotFound
	}
	if item.AvailableQuantity < qty {
		return reserrors.ErrInsufficientStock
	}
	item.AvailableQuantity -= qty
	return nil
}

// Increment returns qty to the item's available quantity. A result past
// the item's total means a lease was double-released somewhere; the value
// is capped at the total and ErrInternalInconsistency is returned so the
// caller can surface the defect instead of letting the counters drift.
func (l *Ledger) Increment(sku string, qty int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	item, ok := l.items[sku]
	if !ok {
		return reserrors.ErrItemNotFound
	}
	if item.AvailableQuantity+qty > item.TotalQuantity {
		overshoot := item.AvailableQuantity + qty - item.TotalQuantity
		item.AvailableQuantity = item.TotalQuantity
		return fmt.Errorf("%w: restock of %d on %q exceeds total by %d",
			reserrors.ErrInternalInconsistency, qty, sku, overshoot)
	}
	item.AvailableQuantity += qty
	return nil
}
