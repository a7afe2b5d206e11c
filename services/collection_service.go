package services

import (
	"context"
	"fmt"

	"storefront/models"
	"storefront/repositories"
)

type CollectionService struct {
	repo     repositories.CollectionRepositoryInterface
	products *ProductService
	notify   CatalogNotifier
}

func NewCollectionService(repo repositories.CollectionRepositoryInterface, products *ProductService, notify CatalogNotifier) *CollectionService {
	return &CollectionService{repo: repo, products: products, notify: notify}
}

func (s *CollectionService) ListPublished(ctx context.Context) ([]models.Collection, error) {
	return s.repo.List(ctx, true)
}

func (s *CollectionService) ListAll(ctx context.Context) ([]models.Collection, error) {
	return s.repo.List(ctx, false)
}

// GetBySlug returns a published collection and the page of its products
// selected by f.
func (s *CollectionService) GetBySlug(ctx context.Context, slug string, f models.ProductFilter) (*models.CollectionDetail, error) {
	collection, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !collection.IsPublished {
		return nil, fmt.Errorf("collection %q: %w", slug, models.ErrNotFound)
	}

	f.CollectionSlug = collection.Slug
	page, err := s.products.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &models.CollectionDetail{Collection: *collection, Products: *page}, nil
}

func (s *CollectionService) Get(ctx context.Context, id int64) (*models.Collection, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CollectionService) Create(ctx context.Context, req models.CollectionRequest) (*models.Collection, error) {
	collection := &models.Collection{
		Name:        req.Name,
		Slug:        slugOrName(req.Slug, req.Name),
		Description: req.Description,
		IsPublished: req.IsPublished,
	}
	if err := s.repo.Create(ctx, collection); err != nil {
		return nil, err
	}
	s.notify.changed(ctx, "collection", collection.ID, "created")
	return collection, nil
}

func (s *CollectionService) Update(ctx context.Context, id int64, req models.CollectionRequest) (*models.Collection, error) {
	collection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	collection.Name = req.Name
	collection.Slug = slugOrName(req.Slug, req.Name)
	collection.Description = req.Description
	collection.IsPublished = req.IsPublished

	if err := s.repo.Update(ctx, collection); err != nil {
		return nil, err
	}
	s.notify.changed(ctx, "collection", id, "updated")
	return collection, nil
}

func (s *CollectionService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notify.changed(ctx, "collection", id, "deleted")
	return nil
}

func (s *CollectionService) AddProducts(ctx context.Context, id int64, productIDs []int64) (*models.Collection, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	for _, pid := range productIDs {
		if _, err := s.products.Get(ctx, pid); err != nil {
			return nil, fmt.Errorf("product %d: %w", pid, err)
		}
	}
	if err := s.repo.AddProducts(ctx, id, productIDs); err != nil {
		return nil, err
	}
	s.notify.changed(ctx, "collection", id, "updated")
	return s.repo.FindByID(ctx, id)
}

func (s *CollectionService) RemoveProduct(ctx context.Context, id, productID int64) (*models.Collection, error) {
	if err := s.repo.RemoveProduct(ctx, id, productID); err != nil {
		return nil, err
	}
	s.notify.changed(ctx, "collection", id, "updated")
	return s.repo.FindByID(ctx, id)
}
