package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"storefront/models"
	"storefront/repositories"
)

type VariantService struct {
	variants repositories.VariantRepositoryInterface
	products repositories.ProductRepositoryInterface
	types    repositories.ProductTypeRepositoryInterface
	notify   CatalogNotifier
}

func NewVariantService(
	variants repositories.VariantRepositoryInterface,
	products repositories.ProductRepositoryInterface,
	types repositories.ProductTypeRepositoryInterface,
	notify CatalogNotifier,
) *VariantService {
	return &VariantService{variants: variants, products: products, types: types, notify: notify}
}

func (s *VariantService) productAndType(ctx context.Context, productID int64) (*models.Product, *models.ProductType, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	pt, err := s.types.FindByID(ctx, product.ProductTypeID)
	if err != nil {
		return nil, nil, err
	}
	return product, pt, nil
}

func (s *VariantService) List(ctx context.Context, productID int64) ([]models.Variant, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.variants.ListByProduct(ctx, productID)
}

func (s *VariantService) Get(ctx context.Context, id int64) (*models.Variant, error) {
	return s.variants.FindByID(ctx, id)
}

// Create adds one variant. Its values must pick exactly one value of each
// variant attribute and the combination must be new for the product.
func (s *VariantService) Create(ctx context.Context, productID int64, req models.VariantRequest) (*models.Variant, error) {
	product, pt, err := s.productAndType(ctx, productID)
	if err != nil {
		return nil, err
	}
	values, err := ResolveVariantValues(pt.VariantAttributes, req.ValueIDs)
	if err != nil {
		return nil, err
	}

	existing := product.Variants
	key := combinationKey(req.ValueIDs)
	for _, v := range existing {
		if combinationKey(v.ValueIDs()) == key {
			return nil, fmt.Errorf("variant %s already has this combination: %w", v.SKU, models.ErrConflict)
		}
	}

	sku, name := variantLabel(product.Slug, values)
	if req.SKU != "" {
		sku = req.SKU
	}
	if req.Name != "" {
		name = req.Name
	}
	price := product.BasePrice
	if req.Price != nil {
		price = *req.Price
	}

	batch := []models.Variant{{
		ProductID:       product.ID,
		SKU:             sku,
		Name:            name,
		Price:           price,
		Stock:           req.Stock,
		IsActive:        req.IsActive == nil || *req.IsActive,
		AttributeValues: values,
	}}
	if err := s.variants.CreateMany(ctx, batch); err != nil {
		return nil, err
	}
	s.notify.changed(ctx, "variant", batch[0].ID, "created")
	return &batch[0], nil
}

func (s *VariantService) Update(ctx context.Context, id int64, req models.UpdateVariantRequest) (*models.Variant, error) {
	v, err := s.variants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.SKU != nil {
		v.SKU = *req.SKU
	}
	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.Price != nil {
		v.Price = *req.Price
	}
	if req.Stock != nil {
		v.Stock = *req.Stock
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
	if v.SKU == "" {
		return nil, fmt.Errorf("sku cannot be empty: %w", models.ErrInvalidInput)
	}

	if err := s.variants.Update(ctx, v); err != nil {
		return nil, err
	}
	s.notify.changed(ctx, "variant", v.ID, "updated")
	return v, nil
}

func (s *VariantService) Delete(ctx context.Context, id int64) error {
	if err := s.variants.Delete(ctx, id); err != nil {
		return err
	}
	s.notify.changed(ctx, "variant", id, "deleted")
	return nil
}

// Generate creates the missing variants for every combination of the
// selected values.
func (s *VariantService) Generate(ctx context.Context, productID int64, req models.GenerateVariantsRequest) (*models.GenerateVariantsResult, error) {
	product, pt, err := s.productAndType(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !pt.HasVariants {
		return nil, fmt.Errorf("product type %s does not use variants: %w", pt.Name, models.ErrInvalidInput)
	}

	price := product.BasePrice
	if req.Price != nil {
		price = *req.Price
	}
	created, skipped, err := BuildVariantMatrix(product, pt.VariantAttributes, req.Selections, product.Variants, price, req.Stock)
	if err != nil {
		return nil, err
	}

	if len(created) > 0 {
		if err := s.variants.CreateMany(ctx, created); err != nil {
			return nil, err
		}
		s.notify.changed(ctx, "product", product.ID, "variants_generated")
	}
	s.notify.log.Info("variants generated",
		zap.Int64("product_id", product.ID), zap.Int("created", len(created)), zap.Int("skipped", skipped))
	return &models.GenerateVariantsResult{Created: created, Skipped: skipped}, nil
}

func (s *VariantService) BulkUpdate(ctx context.Context, req models.BulkVariantRequest) error {
	if err := s.variants.BulkUpdate(ctx, req.Variants); err != nil {
		return err
	}
	s.notify.changed(ctx, "variant", 0, "bulk_updated")
	return nil
}
