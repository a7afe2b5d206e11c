package models

import "time"

const (
	CartActive    = "active"
	CartConverted = "converted"
)

type Cart struct {
	ID           string     `json:"id"`
	UserID       *int64     `json:"user_id,omitempty"`
	SessionToken *string    `json:"-"`
	Status       string     `json:"status"`
	Items        []CartItem `json:"items"`
	ItemCount    int        `json:"item_count"`
	Subtotal     int64      `json:"subtotal"`
	Currency     string     `json:"currency"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID          int64  `json:"id"`
	CartID      string `json:"cart_id"`
	VariantID   int64  `json:"variant_id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	ProductSlug string `json:"product_slug"`
	VariantName string `json:"variant_name"`
	SKU         string `json:"sku"`
	ImageURL    string `json:"image_url"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	Stock       int    `json:"stock"`
	Available   bool   `json:"available"`
	LineTotal   int64  `json:"line_total"`
}

// Recalculate fills line totals, item count and subtotal from the items.
func (c *Cart) Recalculate() {
	c.ItemCount = 0
	c.Subtotal = 0
	for i := range c.Items {
		item := &c.Items[i]
		item.LineTotal = item.UnitPrice * int64(item.Quantity)
		c.ItemCount += item.Quantity
		c.Subtotal += item.LineTotal
	}
}

func (c *Cart) Item(variantID int64) (CartItem, bool) {
	for _, item := range c.Items {
		if item.VariantID == variantID {
			return item, true
		}
	}
	return CartItem{}, false
}
