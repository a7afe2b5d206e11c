package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"storefront/models"
	"storefront/repositories"
)

type UserService struct {
	users repositories.UserRepositoryInterface
	log   *zap.Logger
}

func NewUserService(users repositories.UserRepositoryInterface, log *zap.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) List(ctx context.Context, search string, page, limit int) ([]models.User, models.PaginationMeta, error) {
	page, limit = clampPage(page, limit)
	users, total, err := s.users.List(ctx, search, page, limit)
	if err != nil {
		return nil, models.PaginationMeta{}, err
	}
	return users, models.NewPaginationMeta(page, limit, total), nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateRole refuses to let an admin change their own role.
func (s *UserService) UpdateRole(ctx context.Context, actorID, id int64, role string) (*models.User, error) {
	if actorID == id {
		return nil, fmt.Errorf("cannot change your own role: %w", models.ErrForbidden)
	}
	if role != models.RoleCustomer && role != models.RoleAdmin {
		return nil, fmt.Errorf("unknown role %q: %w", role, models.ErrInvalidInput)
	}
	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	s.log.Info("user role changed", zap.Int64("user_id", id), zap.String("role", role), zap.Int64("by", actorID))
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return fmt.Errorf("cannot delete your own account: %w", models.ErrForbidden)
	}
	return s.users.Delete(ctx, id)
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > models.MaxPageSize {
		limit = models.MaxPageSize
	}
	return page, limit
}
