package model

// Item is a catalog entry plus the ledger-owned quantity counters.
// Name, Category and Price are carried from the catalog for display;
// only the ledger mutates AvailableQuantity.
type Item struct {
	SKU               string  `json:"sku" validate:"required,sku"`
	Name              string  `json:"name" validate:"required,min=2,max=100"`
	Category          string  `json:"category" validate:"required,min=2,max=50"`
	Price             float64 `json:"price" validate:"gte=0"`
	TotalQuantity     int     `json:"total_quantity" validate:"gte=0"`
	AvailableQuantity int     `json:"available_quantity" validate:"gte=0,ltefield=TotalQuantity"`
}

// ReservedQuantity is derived, never stored.
func (i Item) ReservedQuantity() int {
	return i.TotalQuantity - i.AvailableQuantity
}
