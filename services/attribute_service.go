package services

import (
	"context"
	"fmt"

	"storefront/models"
	"storefront/repositories"
)

type AttributeService struct {
	repo   repositories.AttributeRepositoryInterface
	notify CatalogNotifier
}

func NewAttributeService(repo repositories.AttributeRepositoryInterface, notify CatalogNotifier) *AttributeService {
	return &AttributeService{repo: repo, notify: notify}
}

func (s *AttributeService) List(ctx context.Context) ([]models.Attribute, error) {
	return s.repo.List(ctx)
}

func (s *AttributeService) Get(ctx context.Context, id int64) (*models.Attribute, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AttributeService) Create(ctx context.Context, req models.AttributeRequest) (*models.Attribute, error) {
	attr := &models.Attribute{
		Name:      req.Name,
		Slug:      slugOrName(req.Slug, req.Name),
		InputType: inputTypeOrDefault(req.InputType),
	}
	if err := s.repo.Create(ctx, attr); err != nil {
		return nil, err
	}
	s.notify.changed(ctx, "attribute", attr.ID, "created")
	return attr, nil
}

func (s *AttributeService) Update(ctx context.Context, id int64, req models.AttributeRequest) (*models.Attribute, error) {
	attr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	attr.Name = req.Name
	attr.Slug = slugOrName(req.Slug, req.Name)
	if req.InputType != "" {
		attr.InputType = inputTypeOrDefault(req.InputType)
	}

	if err := s.repo.Update(ctx, attr); err != nil {
		return nil, err
	}
	s.notify.changed(ctx, "attribute", attr.ID, "updated")
	return attr, nil
}

func (s *AttributeService) Delete(ctx context.Context, id int64) error {
	used, err := s.repo.IsInUse(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return fmt.Errorf("attribute is assigned to a product type: %w", models.ErrConflict)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notify.changed(ctx, "attribute", id, "deleted")
	return nil
}

func (s *AttributeService) AddValue(ctx context.Context, attributeID int64, req models.AttributeValueRequest) (*models.AttributeValue, error) {
	if _, err := s.repo.FindByID(ctx, attributeID); err != nil {
		return nil, err
	}
	value := &models.AttributeValue{
		AttributeID: attributeID,
		Name:        req.Name,
		Slug:        slugOrName(req.Slug, req.Name),
		Value:       req.Value,
		SortOrder:   req.SortOrder,
	}
	if err := s.repo.CreateValue(ctx, value); err != nil {
		return nil, err
	}
	s.notify.changed(ctx, "attribute", attributeID, "updated")
	return value, nil
}

func (s *AttributeService) UpdateValue(ctx context.Context, attributeID, valueID int64, req models.AttributeValueRequest) (*models.AttributeValue, error) {
	value := &models.AttributeValue{
		ID:          valueID,
		AttributeID: attributeID,
		Name:        req.Name,
		Slug:        slugOrName(req.Slug, req.Name),
		Value:       req.Value,
		SortOrder:   req.SortOrder,
	}
	if err := s.repo.UpdateValue(ctx, value); err != nil {
		return nil, err
	}
	s.notify.changed(ctx, "attribute", attributeID, "updated")
	return value, nil
}

func (s *AttributeService) DeleteValue(ctx context.Context, attributeID, valueID int64) error {
	if err := s.repo.DeleteValue(ctx, attributeID, valueID); err != nil {
		return err
	}
	s.notify.changed(ctx, "attribute", attributeID, "updated")
	return nil
}

func inputTypeOrDefault(t string) string {
	switch t {
	case models.InputSwatch, models.InputText:
		return t
	default:
		return models.InputDropdown
	}
}
