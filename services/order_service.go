package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/libs"
	"storefront/models"
	"storefront/repositories"
)

// LowStockThreshold is the stock level at or below which a variant counts as
// low on the dashboard.
const LowStockThreshold = 5

type ShippingRates struct {
	Standard      int64
	Express       int64
	FreeThreshold int64
}

// Fee returns the shipping charge. Standard shipping is free once the
// subtotal reaches FreeThreshold; a zero threshold disables that.
func (r ShippingRates) Fee(method string, subtotal int64) int64 {
	switch method {
	case models.ShippingExpress:
		return r.Express
	default:
		if r.FreeThreshold > 0 && subtotal >= r.FreeThreshold {
			return 0
		}
		return r.Standard
	}
}

// OrderStatusChange is the payload of EventOrderStatusChanged.
type OrderStatusChange struct {
	OrderID     int64  `json:"order_id"`
	OrderNumber string `json:"order_number"`
	From        string `json:"from"`
	To          string `json:"to"`
}

type OrderService struct {
	orders   repositories.OrderRepositoryInterface
	carts    *CartService
	mailer   libs.Mailer
	notify   CatalogNotifier
	rates    ShippingRates
	currency string
	now      func() time.Time
}

func NewOrderService(
	orders repositories.OrderRepositoryInterface,
	carts *CartService,
	mailer libs.Mailer,
	notify CatalogNotifier,
	rates ShippingRates,
	currency string,
) *OrderService {
	return &OrderService{
		orders:   orders,
		carts:    carts,
		mailer:   mailer,
		notify:   notify,
		rates:    rates,
		currency: currency,
		now:      time.Now,
	}
}

func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "ORD-" + now.UTC().Format("20060102") + "-" + suffix
}

// Checkout turns the owner's cart into a pending order. Stock is reserved in
// the same transaction that stores the order; the confirmation mail and the
// order event follow and never fail the checkout.
func (s *OrderService) Checkout(ctx context.Context, owner CartOwner, req models.CheckoutRequest) (*models.Order, error) {
	cart, err := s.carts.find(ctx, owner)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("cart is empty: %w", models.ErrInvalidInput)
	}
	if err != nil {
		return nil, err
	}
	cart, err = s.carts.load(ctx, cart)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, fmt.Errorf("cart is empty: %w", models.ErrInvalidInput)
	}

	order := &models.Order{
		OrderNumber:    newOrderNumber(s.now()),
		UserID:         owner.UserID,
		CartID:         cart.ID,
		Email:          normalizeEmail(req.Email),
		FullName:       req.FullName,
		Address:        req.Address,
		ShippingMethod: req.ShippingMethod,
		PaymentMethod:  req.PaymentMethod,
		Notes:          req.Notes,
		Status:         models.OrderPending,
		Currency:       s.currency,
	}
	for _, item := range cart.Items {
		if !item.Available {
			return nil, fmt.Errorf("%s is no longer available: %w", item.SKU, models.ErrOutOfStock)
		}
		if item.Quantity > item.Stock {
			return nil, fmt.Errorf("only %d of %s left: %w", item.Stock, item.SKU, models.ErrOutOfStock)
		}
		order.Items = append(order.Items, models.OrderItem{
			VariantID:   item.VariantID,
			ProductName: item.ProductName,
			VariantName: item.VariantName,
			SKU:         item.SKU,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal,
		})
	}
	order.Subtotal = cart.Subtotal
	order.ShippingFee = s.rates.Fee(order.ShippingMethod, order.Subtotal)
	order.Total = order.Subtotal + order.ShippingFee

	if err := s.orders.Place(ctx, order); err != nil {
		return nil, err
	}

	log := s.notify.log.With(zap.String("order_number", order.OrderNumber))
	log.Info("order placed", zap.Int64("total", order.Total), zap.Int("lines", len(order.Items)))

	if err := s.mailer.SendOrderConfirmation(order); err != nil {
		log.Warn("failed to send order confirmation", zap.Error(err))
	}
	s.publish(ctx, libs.Event{Type: libs.EventOrderPlaced, Key: order.OrderNumber, Payload: order})
	s.notify.cache.InvalidatePrefix(ctx, productCachePrefix)
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, ev libs.Event) {
	if err := s.notify.publish(ctx, ev); err != nil {
		s.notify.log.Warn("failed to publish order event", zap.String("type", ev.Type), zap.String("key", ev.Key), zap.Error(err))
	}
}

func (s *OrderService) ListMine(ctx context.Context, userID int64, page, limit int) ([]models.Order, models.PaginationMeta, error) {
	page, limit = clampPage(page, limit)
	orders, total, err := s.orders.ListByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, models.PaginationMeta{}, err
	}
	return orders, models.NewPaginationMeta(page, limit, total), nil
}

// GetMine hides orders of other customers behind ErrNotFound.
func (s *OrderService) GetMine(ctx context.Context, userID int64, number string) (*models.Order, error) {
	order, err := s.orders.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if order.UserID == nil || *order.UserID != userID {
		return nil, fmt.Errorf("order %s: %w", number, models.ErrNotFound)
	}
	return order, nil
}

// Lookup lets a guest find an order by number and the email it was placed with.
func (s *OrderService) Lookup(ctx context.Context, number, email string) (*models.Order, error) {
	order, err := s.orders.FindByNumber(ctx, strings.TrimSpace(number))
	if err != nil {
		return nil, err
	}
	if order.Email != normalizeEmail(email) {
		return nil, fmt.Errorf("order %s: %w", number, models.ErrNotFound)
	}
	return order, nil
}

func (s *OrderService) AdminList(ctx context.Context, status, search string, page, limit int) ([]models.Order, models.PaginationMeta, error) {
	if status != "" && !models.IsOrderStatus(status) {
		return nil, models.PaginationMeta{}, fmt.Errorf("unknown status %q: %w", status, models.ErrInvalidInput)
	}
	page, limit = clampPage(page, limit)
	orders, total, err := s.orders.List(ctx, status, search, page, limit)
	if err != nil {
		return nil, models.PaginationMeta{}, err
	}
	return orders, models.NewPaginationMeta(page, limit, total), nil
}

func (s *OrderService) AdminGet(ctx context.Context, id int64) (*models.Order, error) {
	return s.orders.FindByID(ctx, id)
}

// UpdateStatus applies one lifecycle step. Cancelling restocks the ordered
// variants.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(order.Status, status) {
		return nil, fmt.Errorf("%s -> %s: %w", order.Status, status, models.ErrInvalidTransition)
	}

	from := order.Status
	if err := s.orders.UpdateStatus(ctx, id, from, status); err != nil {
		return nil, err
	}

	s.notify.log.Info("order status changed",
		zap.String("order_number", order.OrderNumber), zap.String("from", from), zap.String("to", status))
	s.publish(ctx, libs.Event{
		Type:    libs.EventOrderStatusChanged,
		Key:     order.OrderNumber,
		Payload: OrderStatusChange{OrderID: order.ID, OrderNumber: order.OrderNumber, From: from, To: status},
	})
	if status == models.OrderCancelled {
		s.notify.cache.InvalidatePrefix(ctx, productCachePrefix)
	}
	return s.orders.FindByID(ctx, id)
}

func (s *OrderService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	return s.orders.Stats(ctx, LowStockThreshold)
}
