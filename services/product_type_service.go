package services

import (
	"context"
	"fmt"

	"storefront/models"
	"storefront/repositories"
)

type ProductTypeService struct {
	repo   repositories.ProductTypeRepositoryInterface
	attrs  repositories.AttributeRepositoryInterface
	notify CatalogNotifier
}

func NewProductTypeService(repo repositories.ProductTypeRepositoryInterface, attrs repositories.AttributeRepositoryInterface, notify CatalogNotifier) *ProductTypeService {
	return &ProductTypeService{repo: repo, attrs: attrs, notify: notify}
}

func (s *ProductTypeService) List(ctx context.Context) ([]models.ProductType, error) {
	return s.repo.List(ctx)
}

func (s *ProductTypeService) Get(ctx context.Context, id int64) (*models.ProductType, error) {
	return s.repo.FindByID(ctx, id)
}

// validateAssignment checks that every attribute exists and that none is
// listed twice or on both sides.
func (s *ProductTypeService) validateAssignment(ctx context.Context, productAttrIDs, variantAttrIDs []int64) error {
	seen := map[int64]bool{}
	for _, id := range append(append([]int64{}, productAttrIDs...), variantAttrIDs...) {
		if seen[id] {
			return fmt.Errorf("attribute %d is assigned more than once: %w", id, models.ErrInvalidInput)
		}
		seen[id] = true
		if _, err := s.attrs.FindByID(ctx, id); err != nil {
			return fmt.Errorf("attribute %d: %w", id, err)
		}
	}
	return nil
}

func (s *ProductTypeService) Create(ctx context.Context, req models.ProductTypeRequest) (*models.ProductType, error) {
	if err := s.validateAssignment(ctx, req.ProductAttributeIDs, req.VariantAttributeIDs); err != nil {
		return nil, err
	}
	pt := &models.ProductType{
		Name:        req.Name,
		Slug:        slugOrName(req.Slug, req.Name),
		HasVariants: req.HasVariants == nil || *req.HasVariants,
	}
	if err := s.repo.Create(ctx, pt, req.ProductAttributeIDs, req.VariantAttributeIDs); err != nil {
		return nil, err
	}
	s.notify.changed(ctx, "product_type", pt.ID, "created")
	return s.repo.FindByID(ctx, pt.ID)
}

// Update replaces both attribute lists. Removing a variant attribute from a
// type that already has products is refused, since it would orphan values on
// existing variants.
func (s *ProductTypeService) Update(ctx context.Context, id int64, req models.ProductTypeRequest) (*models.ProductType, error) {
	pt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateAssignment(ctx, req.ProductAttributeIDs, req.VariantAttributeIDs); err != nil {
		return nil, err
	}

	used, err := s.repo.IsInUse(ctx, id)
	if err != nil {
		return nil, err
	}
	if used && !sameIDs(attributeIDs(pt.VariantAttributes), req.VariantAttributeIDs) {
		return nil, fmt.Errorf("variant attributes of a type with products cannot change: %w", models.ErrConflict)
	}

	pt.Name = req.Name
	pt.Slug = slugOrName(req.Slug, req.Name)
	if req.HasVariants != nil {
		pt.HasVariants = *req.HasVariants
	}
	if err := s.repo.Update(ctx, pt, req.ProductAttributeIDs, req.VariantAttributeIDs); err != nil {
		return nil, err
	}
	s.notify.changed(ctx, "product_type", pt.ID, "updated")
	return s.repo.FindByID(ctx, pt.ID)
}

func (s *ProductTypeService) Delete(ctx context.Context, id int64) error {
	used, err := s.repo.IsInUse(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return fmt.Errorf("product type has products: %w", models.ErrConflict)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notify.changed(ctx, "product_type", id, "deleted")
	return nil
}

func attributeIDs(attrs []models.Attribute) []int64 {
	ids := make([]int64, len(attrs))
	for i, a := range attrs {
		ids[i] = a.ID
	}
	return ids
}

func sameIDs(a, b []int64) bool {
	return combinationKey(a) == combinationKey(b)
}
