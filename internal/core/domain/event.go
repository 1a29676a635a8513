package domain

import "time"

const (
	EventProductSearched = "product_searched"
	EventCartItemAdded   = "cart_item_added"
	EventCartItemUpdated = "cart_item_updated"
	EventCartItemRemoved = "cart_item_removed"
)

// A ShoppingEvent describes one user interaction with the storefront.
// Emitted best-effort for analytics, never part of the cart contract.
type ShoppingEvent struct {
	EventID    string
	Action     string
	ProductID  int
	Quantity   int
	Category   string
	SearchTerm string
	OccurredAt time.Time
}
