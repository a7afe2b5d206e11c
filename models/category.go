package models

import "time"

type Category struct {
	ID          int64       `json:"id"`
	ParentID    *int64      `json:"parent_id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Description string      `json:"description"`
	SortOrder   int         `json:"sort_order"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Children    []*Category `json:"children,omitempty"`
}

// CategoryDetail is a category together with its position in the tree.
type CategoryDetail struct {
	Category
	Breadcrumbs   []Category `json:"breadcrumbs"`
	Subcategories []Category `json:"subcategories"`
}
