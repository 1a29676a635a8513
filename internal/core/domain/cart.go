package domain

// A CartChange reports which branch a cart mutation took,
// so callers can surface confirmations without inspecting state.
type CartChange int

const (
	CartUnchanged CartChange = iota
	CartItemInserted
	CartItemIncremented
	CartItemUpdated
	CartItemRemoved
)

func (c CartChange) String() string {
	switch c {
	case CartItemInserted:
		return "inserted"
	case CartItemIncremented:
		return "incremented"
	case CartItemUpdated:
		return "updated"
	case CartItemRemoved:
		return "removed"
	default:
		return "unchanged"
	}
}

type CartItem struct {
	Product  Product
	Quantity int
}

// A Cart is an insertion-ordered mapping from product id to [CartItem].
//
// Invariants: at most one item per product id, every item has quantity >= 1.
// Quantity reaching zero removes the item.
type Cart struct {
	order []int
	items map[int]*CartItem
}

func NewCart() *Cart {
	return &Cart{items: make(map[int]*CartItem)}
}

// Add increments the quantity of an existing item
// or appends a new one with quantity 1.
func (c *Cart) Add(p Product) CartChange {
	if item, ok := c.items[p.ID]; ok {
		item.Quantity++
		return CartItemIncremented
	}
	c.items[p.ID] = &CartItem{Product: p, Quantity: 1}
	c.order = append(c.order, p.ID)
	return CartItemInserted
}

// Remove deletes the item for productID. Unknown ids are a no-op.
func (c *Cart) Remove(productID int) CartChange {
	if _, ok := c.items[productID]; !ok {
		return CartUnchanged
	}
	delete(c.items, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return CartItemRemoved
}

// SetQuantity replaces the quantity of the item for productID.
// A quantity <= 0 behaves exactly as [Cart.Remove].
// Unknown ids are a no-op.
func (c *Cart) SetQuantity(productID, quantity int) CartChange {
	if quantity <= 0 {
		return c.Remove(productID)
	}
	item, ok := c.items[productID]
	if !ok {
		return CartUnchanged
	}
	item.Quantity = quantity
	return CartItemUpdated
}

func (c *Cart) Len() int {
	return len(c.order)
}

// Items returns a copy of the cart contents in insertion order.
func (c *Cart) Items() []CartItem {
	items := make([]CartItem, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, *c.items[id])
	}
	return items
}

type CartMetrics struct {
	TotalPrice                 float64
	TotalCarbonFootprint       float64
	CarbonSaved                float64
	AverageSustainabilityScore float64
	TotalItems                 int
}

// Metrics derives the cart-wide totals from one pass over the cart.
//
// CarbonSaved is relative to the given per-unit baseline footprint and
// may be negative for high-footprint items. AverageSustainabilityScore
// is quantity-weighted and 0 for the empty cart.
func (c *Cart) Metrics(carbonBaseline float64) CartMetrics {
	var m CartMetrics
	var weightedScore float64
	for _, id := range c.order {
		item := c.items[id]
		qty := float64(item.Quantity)
		m.TotalPrice += item.Product.Price * qty
		m.TotalCarbonFootprint += item.Product.CarbonFootprint * qty
		m.CarbonSaved += (carbonBaseline - item.Product.CarbonFootprint) * qty
		weightedScore += item.Product.SustainabilityScore * qty
		m.TotalItems += item.Quantity
	}
	if m.TotalItems > 0 {
		m.AverageSustainabilityScore = weightedScore / float64(m.TotalItems)
	}
	return m
}

// A CartSnapshot is one atomic read of the cart: items and metrics
// derived from the same state, plus the change the producing
// operation made (CartUnchanged for plain reads).
type CartSnapshot struct {
	Items   []CartItem
	Metrics CartMetrics
	Change  CartChange
}
