package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"storefront/models"
	"storefront/repositories"
	"storefront/utils"
)

type AuthService struct {
	users  repositories.UserRepositoryInterface
	carts  *CartService
	tokens *utils.TokenIssuer
	log    *zap.Logger
}

func NewAuthService(users repositories.UserRepositoryInterface, carts *CartService, tokens *utils.TokenIssuer, log *zap.Logger) *AuthService {
	return &AuthService{users: users, carts: carts, tokens: tokens, log: log}
}

// Register creates a customer account. A guest cart behind guestToken is
// adopted by the new account.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest, guestToken string) (*models.LoginResponse, error) {
	email := normalizeEmail(req.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered: %w", models.ErrConflict)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Password: hashedPassword,
		FullName: req.FullName,
		Phone:    req.Phone,
		Role:     models.RoleCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.mergeGuestCart(ctx, user.ID, guestToken)
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest, guestToken string) (*models.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("invalid email or password: %w", models.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}

	valid, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !valid {
		return nil, fmt.Errorf("invalid email or password: %w", models.ErrUnauthorized)
	}

	s.mergeGuestCart(ctx, user.ID, guestToken)
	return s.issue(user)
}

// mergeGuestCart never fails the sign-in; the guest cart stays in place.
func (s *AuthService) mergeGuestCart(ctx context.Context, userID int64, guestToken string) {
	if err := s.carts.Merge(ctx, userID, guestToken); err != nil {
		s.log.Warn("failed to merge guest cart", zap.Int64("user_id", userID), zap.Error(err))
	}
}

func (s *AuthService) issue(user *models.User) (*models.LoginResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &models.LoginResponse{Token: token, User: *user}, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Address != "" {
		user.Address = req.Address
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	valid, err := utils.VerifyPassword(user.Password, req.OldPassword)
	if err != nil || !valid {
		return fmt.Errorf("invalid old password: %w", models.ErrInvalidInput)
	}

	user.Password, err = utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.users.UpdateProfile(ctx, user)
}
