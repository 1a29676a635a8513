package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCarbonBaseline = 5.0

func testProduct(id int, price, score, footprint float64) Product {
	return Product{
		ID:                  id,
		Name:                "testProduct",
		Category:            "testCategory",
		Price:               price,
		SustainabilityScore: score,
		CarbonFootprint:     footprint,
	}
}

func TestCartAdd(t *testing.T) {
	t.Run("InsertNew", func(t *testing.T) {
		cart := NewCart()

		change := cart.Add(testProduct(1, 10, 9, 2))
		assert.Equal(t, CartItemInserted, change)

		items := cart.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 1, items[0].Product.ID)
		assert.Equal(t, 1, items[0].Quantity)
	})

	t.Run("IncrementExisting", func(t *testing.T) {
		cart := NewCart()
		p := testProduct(1, 10, 9, 2)

		cart.Add(p)
		change := cart.Add(p)
		assert.Equal(t, CartItemIncremented, change)

		items := cart.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("KeepsInsertionOrder", func(t *testing.T) {
		cart := NewCart()
		cart.Add(testProduct(3, 10, 9, 2))
		cart.Add(testProduct(1, 10, 9, 2))
		cart.Add(testProduct(2, 10, 9, 2))
		cart.Add(testProduct(1, 10, 9, 2))

		items := cart.Items()
		require.Len(t, items, 3)
		assert.Equal(t, 3, items[0].Product.ID)
		assert.Equal(t, 1, items[1].Product.ID)
		assert.Equal(t, 2, items[2].Product.ID)
	})
}

func TestCartRemove(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		cart := NewCart()
		cart.Add(testProduct(1, 10, 9, 2))
		cart.Add(testProduct(2, 10, 9, 2))

		change := cart.Remove(1)
		assert.Equal(t, CartItemRemoved, change)

		items := cart.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Product.ID)
	})

	t.Run("UnknownIDNoOp", func(t *testing.T) {
		cart := NewCart()
		cart.Add(testProduct(1, 10, 9, 2))

		change := cart.Remove(42)
		assert.Equal(t, CartUnchanged, change)
		assert.Equal(t, 1, cart.Len())
	})
}

func TestCartSetQuantity(t *testing.T) {
	t.Run("Replace", func(t *testing.T) {
		cart := NewCart()
		cart.Add(testProduct(1, 10, 9, 2))

		change := cart.SetQuantity(1, 5)
		assert.Equal(t, CartItemUpdated, change)
		assert.Equal(t, 5, cart.Items()[0].Quantity)
	})

	t.Run("ZeroRemoves", func(t *testing.T) {
		cart := NewCart()
		cart.Add(testProduct(1, 10, 9, 2))

		change := cart.SetQuantity(1, 0)
		assert.Equal(t, CartItemRemoved, change)
		assert.Equal(t, 0, cart.Len())
	})

	t.Run("NegativeRemoves", func(t *testing.T) {
		cart := NewCart()
		cart.Add(testProduct(1, 10, 9, 2))

		change := cart.SetQuantity(1, -3)
		assert.Equal(t, CartItemRemoved, change)
		assert.Equal(t, 0, cart.Len())
	})

	t.Run("UnknownIDNoOp", func(t *testing.T) {
		cart := NewCart()
		cart.Add(testProduct(1, 10, 9, 2))

		change := cart.SetQuantity(42, 7)
		assert.Equal(t, CartUnchanged, change)
		assert.Equal(t, 1, cart.Items()[0].Quantity)
	})
}

func TestCartMetrics(t *testing.T) {
	t.Run("EmptyCart", func(t *testing.T) {
		m := NewCart().Metrics(testCarbonBaseline)

		assert.Zero(t, m.TotalPrice)
		assert.Zero(t, m.TotalCarbonFootprint)
		assert.Zero(t, m.CarbonSaved)
		assert.Zero(t, m.AverageSustainabilityScore)
		assert.Zero(t, m.TotalItems)
	})

	t.Run("QuantityWeighted", func(t *testing.T) {
		cart := NewCart()
		a := testProduct(1, 29.99, 9.2, 2.1)
		b := testProduct(2, 24.99, 8.8, 1.5)

		cart.Add(a)
		cart.Add(a)
		cart.Add(b)

		m := cart.Metrics(testCarbonBaseline)

		assert.InDelta(t, 29.99*2+24.99, m.TotalPrice, 1e-9)
		assert.InDelta(t, 2.1*2+1.5, m.TotalCarbonFootprint, 1e-9)
		assert.InDelta(t, (5-2.1)*2+(5-1.5), m.CarbonSaved, 1e-9)
		assert.InDelta(t, (9.2*2+8.8)/3, m.AverageSustainabilityScore, 1e-9)
		assert.Equal(t, 3, m.TotalItems)
	})

	t.Run("NegativeCarbonSaved", func(t *testing.T) {
		cart := NewCart()
		cart.Add(testProduct(1, 100, 8.2, 7.5))

		m := cart.Metrics(testCarbonBaseline)
		assert.InDelta(t, 5-7.5, m.CarbonSaved, 1e-9)
	})

	t.Run("CustomBaseline", func(t *testing.T) {
		cart := NewCart()
		cart.Add(testProduct(1, 100, 8.2, 2))

		m := cart.Metrics(10)
		assert.InDelta(t, 8.0, m.CarbonSaved, 1e-9)
	})
}

func TestCartItemsIsCopy(t *testing.T) {
	cart := NewCart()
	cart.Add(testProduct(1, 10, 9, 2))

	items := cart.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, cart.Items()[0].Quantity)
}

func TestCartChangeString(t *testing.T) {
	assert.Equal(t, "inserted", CartItemInserted.String())
	assert.Equal(t, "incremented", CartItemIncremented.String())
	assert.Equal(t, "updated", CartItemUpdated.String())
	assert.Equal(t, "removed", CartItemRemoved.String())
	assert.Equal(t, "unchanged", CartUnchanged.String())
}
