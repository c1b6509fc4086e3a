// Package catalog supplies the items the ledger is loaded with. The
// catalog itself is owned by an external collaborator; this package only
// reads it (from a JSON file when configured, otherwise the built-in seed).
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"stockhold/pkg/model"
)

// Load reads the catalog from path, or returns the seed catalog when path
// is empty.
func Load(path string) ([]model.Item, error) {
	if path == "" {
		return Seed(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var items []model.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}

	for _, item := range items {
		if item.SKU == "" {
			return nil, fmt.Errorf("catalog item with empty sku")
		}
		if item.TotalQuantity < 0 || item.AvailableQuantity < 0 || item.AvailableQuantity > item.TotalQuantity {
			return nil, fmt.Errorf("catalog item %q has invalid quantities (available=%d, total=%d)",
				item.SKU, item.AvailableQuantity, item.TotalQuantity)
		}
	}
	return items, nil
}

// Seed returns the built-in demo catalog.
func Seed() []model.Item {
	return []model.Item{
		{SKU: "LAPTOP-001", Name: "Gaming Laptop Pro", Category: "Electronics", Price: 1299.99, TotalQuantity: 5, AvailableQuantity: 3},
		{SKU: "PHONE-001", Name: "iPhone 15 Pro", Category: "Electronics", Price: 999.99, TotalQuantity: 15, AvailableQuantity: 2},
		{SKU: "TABLET-001", Name: "iPad Air", Category: "Electronics", Price: 599.99, TotalQuantity: 8, AvailableQuantity: 1},
		{SKU: "HEADPHONES-001", Name: "AirPods Pro", Category: "Audio", Price: 249.99, TotalQuantity: 20, AvailableQuantity: 0},
		{SKU: "WATCH-001", Name: "Apple Watch Series 9", Category: "Wearables", Price: 399.99, TotalQuantity: 12, AvailableQuantity: 4},
		{SKU: "CAMERA-001", Name: "Canon EOS R5", Category: "Photography", Price: 3899.99, TotalQuantity: 3, AvailableQuantity: 1},
		{SKU: "KEYBOARD-001", Name: "Mechanical Gaming Keyboard", Category: "Accessories", Price: 149.99, TotalQuantity: 25, AvailableQuantity: 8},
		{SKU: "MOUSE-001", Name: "Wireless Gaming Mouse", Category: "Accessories", Price: 79.99, TotalQuantity: 30, AvailableQuantity: 12},
		{SKU: "MONITOR-001", Name: "4K Gaming Monitor 27\"", Category: "Displays", Price: 549.99, TotalQuantity: 6, AvailableQuantity: 2},
		{SKU: "SPEAKER-001", Name: "Bluetooth Speaker", Category: "Audio", Price: 129.99, TotalQuantity: 18, AvailableQuantity: 6},
		{SKU: "CONSOLE-001", Name: "PlayStation 5", Category: "Gaming", Price: 499.99, TotalQuantity: 4, AvailableQuantity: 1},
		{SKU: "CONTROLLER-001", Name: "Wireless Game Controller", Category: "Gaming", Price: 69.99, TotalQuantity: 15, AvailableQuantity: 5},
	}
}
