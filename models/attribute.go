package models

import "time"

const (
	InputDropdown = "dropdown"
	InputSwatch   = "swatch"
	InputText     = "text"
)

type Attribute struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Slug      string           `json:"slug"`
	InputType string           `json:"input_type"`
	Values    []AttributeValue `json:"values"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type AttributeValue struct {
	ID          int64  `json:"id"`
	AttributeID int64  `json:"attribute_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Value       string `json:"value,omitempty"`
	SortOrder   int    `json:"sort_order"`
}

// HasValue reports whether valueID belongs to the attribute.
func (a Attribute) HasValue(valueID int64) bool {
	for _, v := range a.Values {
		if v.ID == valueID {
			return true
		}
	}
	return false
}

func (a Attribute) Value(valueID int64) (AttributeValue, bool) {
	for _, v := range a.Values {
		if v.ID == valueID {
			return v, true
		}
	}
	return AttributeValue{}, false
}

// SelectedValue is an attribute value resolved together with its attribute,
// the shape used on products and variants.
type SelectedValue struct {
	AttributeID   int64  `json:"attribute_id"`
	AttributeName string `json:"attribute_name"`
	AttributeSlug string `json:"attribute_slug"`
	ValueID       int64  `json:"value_id"`
	ValueName     string `json:"value_name"`
	ValueSlug     string `json:"value_slug"`
	Value         string `json:"value,omitempty"`
}
