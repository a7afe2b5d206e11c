package models

import "time"

type Collection struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	IsPublished bool      `json:"is_published"`
	ProductIDs  []int64   `json:"product_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CollectionDetail is a published collection with one page of its products.
type CollectionDetail struct {
	Collection
	Products ProductPage `json:"products"`
}
