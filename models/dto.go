package models

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required,min=2"`
	Phone    string `json:"phone" binding:"omitempty,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" binding:"omitempty,min=2"`
	Phone    string `json:"phone" binding:"omitempty,max=50"`
	Address  string `json:"address"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=customer admin"`
}

type CategoryRequest struct {
	ParentID    *int64 `json:"parent_id"`
	Name        string `json:"name" binding:"required,min=2"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

type AttributeRequest struct {
	Name      string `json:"name" binding:"required"`
	Slug      string `json:"slug"`
	InputType string `json:"input_type" binding:"omitempty,oneof=dropdown swatch text"`
}

type AttributeValueRequest struct {
	Name      string `json:"name" binding:"required"`
	Slug      string `json:"slug"`
	Value     string `json:"value"`
	SortOrder int    `json:"sort_order"`
}

type ProductTypeRequest struct {
	Name                string  `json:"name" binding:"required"`
	Slug                string  `json:"slug"`
	HasVariants         *bool   `json:"has_variants"`
	ProductAttributeIDs []int64 `json:"product_attribute_ids"`
	VariantAttributeIDs []int64 `json:"variant_attribute_ids"`
}

type CreateProductRequest struct {
	ProductTypeID int64   `json:"product_type_id" binding:"required"`
	CategoryID    int64   `json:"category_id" binding:"required"`
	Name          string  `json:"name" binding:"required,min=3"`
	Slug          string  `json:"slug"`
	Description   string  `json:"description"`
	BasePrice     int64   `json:"base_price" binding:"min=0"`
	IsActive      *bool   `json:"is_active"`
	AttributeIDs  []int64 `json:"attribute_value_ids"`
	// Stock seeds the default variant of a product type without variants.
	Stock int `json:"stock" binding:"min=0"`
}

type UpdateProductRequest struct {
	CategoryID  *int64  `json:"category_id"`
	Name        *string `json:"name" binding:"omitempty,min=3"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	BasePrice   *int64  `json:"base_price" binding:"omitempty,min=0"`
	IsActive    *bool   `json:"is_active"`
}

type ProductAttributesRequest struct {
	ValueIDs []int64 `json:"attribute_value_ids"`
}

type VariantRequest struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Price    *int64  `json:"price" binding:"omitempty,min=0"`
	Stock    int     `json:"stock" binding:"min=0"`
	IsActive *bool   `json:"is_active"`
	ValueIDs []int64 `json:"attribute_value_ids"`
}

type UpdateVariantRequest struct {
	SKU      *string `json:"sku"`
	Name     *string `json:"name"`
	Price    *int64  `json:"price" binding:"omitempty,min=0"`
	Stock    *int    `json:"stock" binding:"omitempty,min=0"`
	IsActive *bool   `json:"is_active"`
}

type AttributeSelection struct {
	AttributeID int64   `json:"attribute_id" binding:"required"`
	ValueIDs    []int64 `json:"value_ids" binding:"required,min=1"`
}

type GenerateVariantsRequest struct {
	Selections []AttributeSelection `json:"selections" binding:"required,min=1,dive"`
	Price      *int64               `json:"price" binding:"omitempty,min=0"`
	Stock      int                  `json:"stock" binding:"min=0"`
}

type GenerateVariantsResult struct {
	Created []Variant `json:"created"`
	Skipped int       `json:"skipped"`
}

type VariantStockPrice struct {
	ID    int64  `json:"id" binding:"required"`
	Price *int64 `json:"price" binding:"omitempty,min=0"`
	Stock *int   `json:"stock" binding:"omitempty,min=0"`
}

type BulkVariantRequest struct {
	Variants []VariantStockPrice `json:"variants" binding:"required,min=1,dive"`
}

type CollectionRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	IsPublished bool   `json:"is_published"`
}

type CollectionProductsRequest struct {
	ProductIDs []int64 `json:"product_ids" binding:"required,min=1"`
}

type AddCartItemRequest struct {
	VariantID int64 `json:"variant_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

type CheckoutRequest struct {
	Email          string `json:"email" binding:"required,email"`
	FullName       string `json:"full_name" binding:"required"`
	Address        string `json:"address" binding:"required"`
	ShippingMethod string `json:"shipping_method" binding:"required,oneof=standard express"`
	PaymentMethod  string `json:"payment_method" binding:"required,oneof=cod bank_transfer"`
	Notes          string `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending paid shipped delivered cancelled"`
}

type OrderLookupRequest struct {
	OrderNumber string `json:"order_number" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
}
