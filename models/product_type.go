package models

import "time"

const (
	AttributeKindProduct = "product"
	AttributeKindVariant = "variant"
)

type ProductType struct {
	ID                int64       `json:"id"`
	Name              string      `json:"name"`
	Slug              string      `json:"slug"`
	HasVariants       bool        `json:"has_variants"`
	ProductAttributes []Attribute `json:"product_attributes"`
	VariantAttributes []Attribute `json:"variant_attributes"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

func (pt ProductType) ProductAttribute(id int64) (Attribute, bool) {
	return findAttribute(pt.ProductAttributes, id)
}

func (pt ProductType) VariantAttribute(id int64) (Attribute, bool) {
	return findAttribute(pt.VariantAttributes, id)
}

func findAttribute(attrs []Attribute, id int64) (Attribute, bool) {
	for _, a := range attrs {
		if a.ID == id {
			return a, true
		}
	}
	return Attribute{}, false
}
