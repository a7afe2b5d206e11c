package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/models"
	"storefront/repositories"
)

// CartOwner identifies whose cart a request operates on. A signed-in user
// wins over the guest session token.
type CartOwner struct {
	UserID       *int64
	SessionToken string
}

func (o CartOwner) valid() bool {
	return o.UserID != nil || o.SessionToken != ""
}

type CartService struct {
	carts    repositories.CartRepositoryInterface
	variants repositories.VariantRepositoryInterface
	currency string
	log      *zap.Logger
}

func NewCartService(carts repositories.CartRepositoryInterface, variants repositories.VariantRepositoryInterface, currency string, log *zap.Logger) *CartService {
	return &CartService{carts: carts, variants: variants, currency: currency, log: log}
}

func (s *CartService) find(ctx context.Context, owner CartOwner) (*models.Cart, error) {
	switch {
	case owner.UserID != nil:
		return s.carts.FindActiveByUser(ctx, *owner.UserID)
	case owner.SessionToken != "":
		return s.carts.FindActiveBySession(ctx, owner.SessionToken)
	default:
		return nil, fmt.Errorf("no cart session: %w", models.ErrNotFound)
	}
}

func (s *CartService) findOrCreate(ctx context.Context, owner CartOwner) (*models.Cart, error) {
	if !owner.valid() {
		return nil, fmt.Errorf("no cart session: %w", models.ErrInvalidInput)
	}
	cart, err := s.find(ctx, owner)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	cart = &models.Cart{ID: uuid.NewString(), Status: models.CartActive, UserID: owner.UserID}
	if owner.UserID == nil {
		token := owner.SessionToken
		cart.SessionToken = &token
	}
	if err := s.carts.Create(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) load(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	items, err := s.carts.Items(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Items = items
	cart.Currency = s.currency
	cart.Recalculate()
	return cart, nil
}

// Get returns the owner's cart, or an empty unsaved cart when none exists yet.
func (s *CartService) Get(ctx context.Context, owner CartOwner) (*models.Cart, error) {
	cart, err := s.find(ctx, owner)
	if errors.Is(err, models.ErrNotFound) {
		return &models.Cart{Status: models.CartActive, Items: []models.CartItem{}, Currency: s.currency}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.load(ctx, cart)
}

// AddItem merges quantity into an existing line for the same variant.
func (s *CartService) AddItem(ctx context.Context, owner CartOwner, req models.AddCartItemRequest) (*models.Cart, error) {
	if req.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", models.ErrInvalidInput)
	}
	variant, err := s.variants.FindByID(ctx, req.VariantID)
	if err != nil {
		return nil, err
	}
	if !variant.IsActive || !variant.ProductActive {
		return nil, fmt.Errorf("variant %d is not available: %w", variant.ID, models.ErrInvalidInput)
	}

	cart, err := s.findOrCreate(ctx, owner)
	if err != nil {
		return nil, err
	}
	cart, err = s.load(ctx, cart)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if line, ok := cart.Item(variant.ID); ok {
		quantity += line.Quantity
	}
	if quantity > variant.Stock {
		return nil, fmt.Errorf("only %d of %s left: %w", variant.Stock, variant.SKU, models.ErrOutOfStock)
	}

	if err := s.carts.SetItemQuantity(ctx, cart.ID, variant.ID, quantity); err != nil {
		return nil, err
	}
	return s.load(ctx, cart)
}

// UpdateItem sets a line's quantity; zero removes the line.
func (s *CartService) UpdateItem(ctx context.Context, owner CartOwner, itemID int64, quantity int) (*models.Cart, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative: %w", models.ErrInvalidInput)
	}
	cart, err := s.find(ctx, owner)
	if err != nil {
		return nil, err
	}
	cart, err = s.load(ctx, cart)
	if err != nil {
		return nil, err
	}

	var line *models.CartItem
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			line = &cart.Items[i]
			break
		}
	}
	if line == nil {
		return nil, fmt.Errorf("cart item %d: %w", itemID, models.ErrNotFound)
	}

	if quantity == 0 {
		if err := s.carts.DeleteItem(ctx, cart.ID, itemID); err != nil {
			return nil, err
		}
		return s.load(ctx, cart)
	}
	if quantity > line.Stock {
		return nil, fmt.Errorf("only %d of %s left: %w", line.Stock, line.SKU, models.ErrOutOfStock)
	}
	if err := s.carts.SetItemQuantity(ctx, cart.ID, line.VariantID, quantity); err != nil {
		return nil, err
	}
	return s.load(ctx, cart)
}

func (s *CartService) RemoveItem(ctx context.Context, owner CartOwner, itemID int64) (*models.Cart, error) {
	cart, err := s.find(ctx, owner)
	if err != nil {
		return nil, err
	}
	if err := s.carts.DeleteItem(ctx, cart.ID, itemID); err != nil {
		return nil, err
	}
	return s.load(ctx, cart)
}

func (s *CartService) Clear(ctx context.Context, owner CartOwner) (*models.Cart, error) {
	cart, err := s.find(ctx, owner)
	if errors.Is(err, models.ErrNotFound) {
		return s.Get(ctx, owner)
	}
	if err != nil {
		return nil, err
	}
	if err := s.carts.Clear(ctx, cart.ID); err != nil {
		return nil, err
	}
	return s.load(ctx, cart)
}

// Merge moves the guest cart behind token into the user's cart. Quantities
// of the same variant are added and capped at the current stock.
func (s *CartService) Merge(ctx context.Context, userID int64, token string) error {
	if token == "" {
		return nil
	}
	guest, err := s.carts.FindActiveBySession(ctx, token)
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	userCart, err := s.carts.FindActiveByUser(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		return s.carts.AssignUser(ctx, guest.ID, userID)
	}
	if err != nil {
		return err
	}

	guestItems, err := s.carts.Items(ctx, guest.ID)
	if err != nil {
		return err
	}
	userCart, err = s.load(ctx, userCart)
	if err != nil {
		return err
	}

	for _, item := range guestItems {
		quantity := item.Quantity
		if line, ok := userCart.Item(item.VariantID); ok {
			quantity += line.Quantity
		}
		if quantity > item.Stock {
			quantity = item.Stock
		}
		if quantity < 1 || !item.Available {
			continue
		}
		if err := s.carts.SetItemQuantity(ctx, userCart.ID, item.VariantID, quantity); err != nil {
			return err
		}
	}

	s.log.Info("merged guest cart", zap.String("guest_cart", guest.ID), zap.String("cart", userCart.ID), zap.Int64("user_id", userID))
	return s.carts.Discard(ctx, guest.ID)
}
