package services

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"storefront/libs"
	"storefront/models"
	"storefront/repositories"
)

type ProductService struct {
	products   repositories.ProductRepositoryInterface
	types      repositories.ProductTypeRepositoryInterface
	categories *CategoryService
	images     libs.ImageStore
	notify     CatalogNotifier
}

func NewProductService(
	products repositories.ProductRepositoryInterface,
	types repositories.ProductTypeRepositoryInterface,
	categories *CategoryService,
	images libs.ImageStore,
	notify CatalogNotifier,
) *ProductService {
	return &ProductService{
		products:   products,
		types:      types,
		categories: categories,
		images:     images,
		notify:     notify,
	}
}

// List returns one page of active products matching f, served from the cache
// when the same canonical query was answered before.
func (s *ProductService) List(ctx context.Context, f models.ProductFilter) (*models.ProductPage, error) {
	f.Normalize()
	key := listCachePrefix + f.CacheKey()

	var page models.ProductPage
	if s.notify.cache.Get(ctx, key, &page) {
		return &page, nil
	}

	items, total, err := s.products.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	page = models.ProductPage{
		Items: items,
		Meta:  models.NewPaginationMeta(f.Page, f.Limit, total),
	}
	s.notify.cache.Set(ctx, key, page)
	return &page, nil
}

// Facets describes the products in f's scope, ignoring attribute, price and
// stock selections so every option stays visible.
func (s *ProductService) Facets(ctx context.Context, f models.ProductFilter) (*models.Facets, error) {
	f.Normalize()
	scope := f.Scope()
	key := facetCachePrefix + scope.CacheKey()

	var facets models.Facets
	if s.notify.cache.Get(ctx, key, &facets) {
		return &facets, nil
	}

	computed, err := s.products.Facets(ctx, scope)
	if err != nil {
		return nil, err
	}
	computed.Categories, err = s.categories.Subtree(ctx, scope.CategorySlug)
	if err != nil {
		return nil, err
	}
	s.notify.cache.Set(ctx, key, computed)
	return computed, nil
}

// GetBySlug returns an active product with its active variants only.
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*models.ProductDetail, error) {
	product, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, fmt.Errorf("product %q: %w", slug, models.ErrNotFound)
	}

	active := []models.Variant{}
	for _, v := range product.Variants {
		if v.IsActive {
			active = append(active, v)
		}
	}
	product.Variants = active

	categories, err := s.categories.List(ctx, true)
	if err != nil {
		return nil, err
	}
	detail := &models.ProductDetail{
		Product:     *product,
		Breadcrumbs: Breadcrumbs(categories, product.CategoryID),
	}
	if n := len(detail.Breadcrumbs); n > 0 {
		detail.Category = detail.Breadcrumbs[n-1]
	}
	detail.MinPrice, detail.MaxPrice, detail.InStock = models.PriceRange(active)
	return detail, nil
}

func (s *ProductService) AdminList(ctx context.Context, search string, page, limit int) ([]models.Product, models.PaginationMeta, error) {
	page, limit = clampPage(page, limit)
	products, total, err := s.products.AdminList(ctx, search, page, limit)
	if err != nil {
		return nil, models.PaginationMeta{}, err
	}
	return products, models.NewPaginationMeta(page, limit, total), nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	return s.products.FindByID(ctx, id)
}

// ResolveProductValues checks that every value belongs to one of the type's
// product-level attributes. An attribute may carry several values.
func ResolveProductValues(attrs []models.Attribute, valueIDs []int64) ([]models.SelectedValue, error) {
	out := make([]models.SelectedValue, 0, len(valueIDs))
	seen := map[int64]bool{}
	for _, id := range valueIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		found := false
		for _, a := range attrs {
			if v, ok := a.Value(id); ok {
				out = append(out, selectedValue(a, v))
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("value %d is not a product attribute value of this product type: %w", id, models.ErrInvalidInput)
		}
	}
	return out, nil
}

func (s *ProductService) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	pt, err := s.types.FindByID(ctx, req.ProductTypeID)
	if err != nil {
		return nil, fmt.Errorf("product type: %w", err)
	}
	if _, err := s.categories.Get(ctx, req.CategoryID); err != nil {
		return nil, fmt.Errorf("category: %w", err)
	}
	values, err := ResolveProductValues(pt.ProductAttributes, req.AttributeIDs)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		ProductTypeID: pt.ID,
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Slug:          slugOrName(req.Slug, req.Name),
		Description:   req.Description,
		BasePrice:     req.BasePrice,
		IsActive:      req.IsActive == nil || *req.IsActive,
		Attributes:    values,
	}
	if !pt.HasVariants {
		product.Variants = []models.Variant{defaultVariant(product, req.Stock)}
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	s.notify.changed(ctx, "product", product.ID, "created")
	return s.products.FindByID(ctx, product.ID)
}

// defaultVariant is the single sellable unit of a product whose type has no
// variant attributes.
func defaultVariant(p *models.Product, stock int) models.Variant {
	sku, _ := variantLabel(p.Slug, nil)
	return models.Variant{
		SKU:      sku,
		Name:     p.Name,
		Price:    p.BasePrice,
		Stock:    stock,
		IsActive: true,
	}
}

func (s *ProductService) Update(ctx context.Context, id int64, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categories.Get(ctx, *req.CategoryID); err != nil {
			return nil, fmt.Errorf("category: %w", err)
		}
		product.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Slug != nil {
		product.Slug = slugOrName(*req.Slug, product.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.BasePrice != nil {
		product.BasePrice = *req.BasePrice
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	s.notify.changed(ctx, "product", product.ID, "updated")
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.dropImage(ctx, product.ImagePublicID)
	s.notify.changed(ctx, "product", id, "deleted")
	return nil
}

func (s *ProductService) SetAttributeValues(ctx context.Context, id int64, valueIDs []int64) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pt, err := s.types.FindByID(ctx, product.ProductTypeID)
	if err != nil {
		return nil, err
	}
	values, err := ResolveProductValues(pt.ProductAttributes, valueIDs)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(values))
	for i, v := range values {
		ids[i] = v.ValueID
	}
	if err := s.products.SetAttributeValues(ctx, id, ids); err != nil {
		return nil, err
	}
	s.notify.changed(ctx, "product", id, "updated")
	product.Attributes = values
	return product, nil
}

// UploadImage stores file as the product image and drops the previous one.
func (s *ProductService) UploadImage(ctx context.Context, id int64, file io.Reader, filename string) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, publicID, err := s.images.Upload(ctx, file, filename, "products")
	if err != nil {
		return nil, err
	}
	if err := s.products.UpdateImage(ctx, id, url, publicID); err != nil {
		s.dropImage(ctx, publicID)
		return nil, err
	}

	s.dropImage(ctx, product.ImagePublicID)
	product.ImageURL = url
	product.ImagePublicID = publicID
	s.notify.changed(ctx, "product", id, "updated")
	return product, nil
}

func (s *ProductService) dropImage(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	if err := s.images.Delete(ctx, publicID); err != nil {
		s.notify.log.Warn("failed to delete product image", zap.String("public_id", publicID), zap.Error(err))
	}
}
