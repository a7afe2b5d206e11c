package models

import "time"

type Product struct {
	ID            int64           `json:"id"`
	ProductTypeID int64           `json:"product_type_id"`
	CategoryID    int64           `json:"category_id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	Description   string          `json:"description"`
	BasePrice     int64           `json:"base_price"`
	ImageURL      string          `json:"image_url"`
	ImagePublicID string          `json:"-"`
	IsActive      bool            `json:"is_active"`
	Attributes    []SelectedValue `json:"attributes"`
	Variants      []Variant       `json:"variants"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductDetail is the storefront view of a single product.
type ProductDetail struct {
	Product
	Category    Category   `json:"category"`
	Breadcrumbs []Category `json:"breadcrumbs"`
	MinPrice    int64      `json:"min_price"`
	MaxPrice    int64      `json:"max_price"`
	InStock     bool       `json:"in_stock"`
}

// ProductListItem is one row of a filtered listing.
type ProductListItem struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	ImageURL   string    `json:"image_url"`
	CategoryID int64     `json:"category_id"`
	MinPrice   int64     `json:"min_price"`
	MaxPrice   int64     `json:"max_price"`
	InStock    bool      `json:"in_stock"`
	CreatedAt  time.Time `json:"created_at"`
}

type Variant struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"product_id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Price           int64           `json:"price"`
	Stock           int             `json:"stock"`
	IsActive        bool            `json:"is_active"`
	AttributeValues []SelectedValue `json:"attribute_values"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	ProductName   string `json:"-"`
	ProductSlug   string `json:"-"`
	ProductActive bool   `json:"-"`
}

func (v Variant) ValueIDs() []int64 {
	ids := make([]int64, 0, len(v.AttributeValues))
	for _, av := range v.AttributeValues {
		ids = append(ids, av.ValueID)
	}
	return ids
}

// PriceRange returns the lowest and highest active variant price and whether
// any active variant is in stock.
func PriceRange(variants []Variant) (minPrice, maxPrice int64, inStock bool) {
	first := true
	for _, v := range variants {
		if !v.IsActive {
			continue
		}
		if first || v.Price < minPrice {
			minPrice = v.Price
		}
		if first || v.Price > maxPrice {
			maxPrice = v.Price
		}
		first = false
		if v.Stock > 0 {
			inStock = true
		}
	}
	return minPrice, maxPrice, inStock
}
