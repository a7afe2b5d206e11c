package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductFilterNormalize(t *testing.T) {
	f := ProductFilter{
		Query: "  shirt ",
		Attributes: map[string][]string{
			"color": {"red", " blue", "red", ""},
			"size":  {"", " "},
		},
		Sort:  "bogus",
		Page:  0,
		Limit: 500,
	}

	f.Normalize()

	assert.Equal(t, "shirt", f.Query)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, MaxPageSize, f.Limit)
	assert.Equal(t, SortNewest, f.Sort)
	assert.Equal(t, []string{"blue", "red"}, f.Attributes["color"])
	_, hasSize := f.Attributes["size"]
	assert.False(t, hasSize)
}

func TestProductFilterCacheKeyIsCanonical(t *testing.T) {
	a := ProductFilter{
		CategorySlug: "apparel",
		Attributes: map[string][]string{
			"size":  {"m", "l"},
			"color": {"red"},
		},
	}
	b := ProductFilter{
		CategorySlug: "apparel",
		Attributes: map[string][]string{
			"color": {"red", "red"},
			"size":  {"l", "m"},
		},
	}
	a.Normalize()
	b.Normalize()

	require.Equal(t, a.CacheKey(), b.CacheKey())

	minPrice := int64(100)
	b.MinPrice = &minPrice
	assert.NotEqual(t, a.CacheKey(), b.CacheKey())
}

func TestProductFilterScopeDropsNarrowing(t *testing.T) {
	minPrice := int64(5)
	f := ProductFilter{
		Query:        "tee",
		CategorySlug: "men",
		MinPrice:     &minPrice,
		InStock:      true,
		Attributes:   map[string][]string{"color": {"red"}},
		Page:         3,
	}

	scope := f.Scope()

	assert.Equal(t, "tee", scope.Query)
	assert.Equal(t, "men", scope.CategorySlug)
	assert.Nil(t, scope.MinPrice)
	assert.False(t, scope.InStock)
	assert.Empty(t, scope.Attributes)
	assert.Equal(t, 1, scope.Page)
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{OrderPending, OrderPaid, true},
		{OrderPending, OrderCancelled, true},
		{OrderPaid, OrderShipped, true},
		{OrderPaid, OrderCancelled, true},
		{OrderShipped, OrderDelivered, true},
		{OrderShipped, OrderCancelled, false},
		{OrderDelivered, OrderPending, false},
		{OrderCancelled, OrderPaid, false},
		{OrderPending, OrderDelivered, false},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestCartRecalculate(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{VariantID: 1, UnitPrice: 1250, Quantity: 2},
		{VariantID: 2, UnitPrice: 999, Quantity: 1},
	}}

	cart.Recalculate()

	assert.Equal(t, 3, cart.ItemCount)
	assert.Equal(t, int64(3499), cart.Subtotal)
	assert.Equal(t, int64(2500), cart.Items[0].LineTotal)

	item, ok := cart.Item(2)
	require.True(t, ok)
	assert.Equal(t, 1, item.Quantity)
}

func TestPriceRange(t *testing.T) {
	variants := []Variant{
		{Price: 1500, Stock: 0, IsActive: true},
		{Price: 900, Stock: 0, IsActive: false},
		{Price: 2000, Stock: 3, IsActive: true},
	}

	minPrice, maxPrice, inStock := PriceRange(variants)

	assert.Equal(t, int64(1500), minPrice)
	assert.Equal(t, int64(2000), maxPrice)
	assert.True(t, inStock)
}
