package services

import "storefront/models"

func int64Ptr(v int64) *int64 { return &v }

func colorAttr() models.Attribute {
	return models.Attribute{ID: 1, Name: "Color", Slug: "color", InputType: models.InputSwatch, Values: []models.AttributeValue{
		{ID: 11, AttributeID: 1, Name: "Red", Slug: "red", Value: "#ff0000", SortOrder: 1},
		{ID: 12, AttributeID: 1, Name: "Blue", Slug: "blue", Value: "#0000ff", SortOrder: 2},
	}}
}

func sizeAttr() models.Attribute {
	return models.Attribute{ID: 2, Name: "Size", Slug: "size", InputType: models.InputDropdown, Values: []models.AttributeValue{
		{ID: 21, AttributeID: 2, Name: "S", Slug: "s", SortOrder: 1},
		{ID: 22, AttributeID: 2, Name: "M", Slug: "m", SortOrder: 2},
		{ID: 23, AttributeID: 2, Name: "L", Slug: "l", SortOrder: 3},
	}}
}

func materialAttr() models.Attribute {
	return models.Attribute{ID: 3, Name: "Material", Slug: "material", Values: []models.AttributeValue{
		{ID: 31, AttributeID: 3, Name: "Cotton", Slug: "cotton"},
		{ID: 32, AttributeID: 3, Name: "Linen", Slug: "linen"},
	}}
}

func apparelType() *models.ProductType {
	return &models.ProductType{
		ID:                1,
		Name:              "Apparel",
		Slug:              "apparel",
		HasVariants:       true,
		ProductAttributes: []models.Attribute{materialAttr()},
		VariantAttributes: []models.Attribute{colorAttr(), sizeAttr()},
	}
}

func teeProduct() models.Product {
	return models.Product{ID: 7, ProductTypeID: 1, CategoryID: 2, Name: "Basic Tee", Slug: "basic-tee", BasePrice: 1500, IsActive: true}
}

func teeVariant(id int64, sku string, price int64, stock int, values ...models.SelectedValue) models.Variant {
	return models.Variant{
		ID:              id,
		ProductID:       7,
		SKU:             sku,
		Name:            sku,
		Price:           price,
		Stock:           stock,
		IsActive:        true,
		AttributeValues: values,
		ProductName:     "Basic Tee",
		ProductSlug:     "basic-tee",
		ProductActive:   true,
	}
}

func sv(attrID, valueID int64) models.SelectedValue {
	return models.SelectedValue{AttributeID: attrID, ValueID: valueID}
}

// categoryFixture is Clothing > Men > Shirts plus a separate Home root.
func categoryFixture() []models.Category {
	return []models.Category{
		{ID: 1, Name: "Clothing", Slug: "clothing", IsActive: true, SortOrder: 1},
		{ID: 2, ParentID: int64Ptr(1), Name: "Men", Slug: "men", IsActive: true, SortOrder: 1},
		{ID: 3, ParentID: int64Ptr(2), Name: "Shirts", Slug: "shirts", IsActive: true},
		{ID: 4, ParentID: int64Ptr(1), Name: "Women", Slug: "women", IsActive: true, SortOrder: 0},
		{ID: 5, Name: "Home", Slug: "home", IsActive: true, SortOrder: 0},
	}
}
