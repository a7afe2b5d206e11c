package services

import (
	"context"
	"fmt"

	"storefront/models"
	"storefront/repositories"
)

type CategoryService struct {
	repo   repositories.CategoryRepositoryInterface
	notify CatalogNotifier
}

func NewCategoryService(repo repositories.CategoryRepositoryInterface, notify CatalogNotifier) *CategoryService {
	return &CategoryService{repo: repo, notify: notify}
}

func (s *CategoryService) List(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	return s.repo.List(ctx, includeInactive)
}

// Tree returns the active categories nested under their parents.
func (s *CategoryService) Tree(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	return BuildTree(categories), nil
}

// Subtree returns the tree rooted at slug, or the whole tree when slug is empty.
func (s *CategoryService) Subtree(ctx context.Context, slug string) ([]*models.Category, error) {
	categories, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	roots := BuildTree(categories)
	if slug == "" {
		return roots, nil
	}
	for _, c := range categories {
		if c.Slug == slug {
			if node := FindInTree(roots, c.ID); node != nil {
				return []*models.Category{node}, nil
			}
		}
	}
	return []*models.Category{}, nil
}

func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*models.CategoryDetail, error) {
	categories, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if c.Slug == slug {
			return &models.CategoryDetail{
				Category:      c,
				Breadcrumbs:   Breadcrumbs(categories, c.ID),
				Subcategories: DirectChildren(categories, c.ID),
			}, nil
		}
	}
	return nil, fmt.Errorf("category %q: %w", slug, models.ErrNotFound)
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*models.Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	if req.ParentID != nil {
		if _, err := s.repo.FindByID(ctx, *req.ParentID); err != nil {
			return nil, fmt.Errorf("parent category: %w", err)
		}
	}

	category := &models.Category{
		ParentID:    req.ParentID,
		Name:        req.Name,
		Slug:        slugOrName(req.Slug, req.Name),
		Description: req.Description,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	s.notify.changed(ctx, "category", category.ID, "created")
	return category, nil
}

// Update rejects moving a category under itself or one of its descendants.
func (s *CategoryService) Update(ctx context.Context, id int64, req models.CategoryRequest) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		all, err := s.repo.List(ctx, true)
		if err != nil {
			return nil, err
		}
		if _, err := s.repo.FindByID(ctx, *req.ParentID); err != nil {
			return nil, fmt.Errorf("parent category: %w", err)
		}
		if IsDescendant(all, id, *req.ParentID) {
			return nil, fmt.Errorf("a category cannot be moved under itself or its descendants: %w", models.ErrInvalidInput)
		}
	}

	category.ParentID = req.ParentID
	category.Name = req.Name
	category.Slug = slugOrName(req.Slug, req.Name)
	category.Description = req.Description
	category.SortOrder = req.SortOrder
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	s.notify.changed(ctx, "category", category.ID, "updated")
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	children, err := s.repo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return fmt.Errorf("category has %d subcategories: %w", children, models.ErrConflict)
	}
	products, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if products > 0 {
		return fmt.Errorf("category has %d products: %w", products, models.ErrConflict)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notify.changed(ctx, "category", id, "deleted")
	return nil
}
