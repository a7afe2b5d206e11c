package models

import "time"

const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

const (
	ShippingStandard = "standard"
	ShippingExpress  = "express"

	PaymentCOD          = "cod"
	PaymentBankTransfer = "bank_transfer"
)

var orderTransitions = map[string][]string{
	OrderPending: {OrderPaid, OrderCancelled},
	OrderPaid:    {OrderShipped, OrderCancelled},
	OrderShipped: {OrderDelivered},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsOrderStatus(status string) bool {
	switch status {
	case OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type Order struct {
	ID             int64       `json:"id"`
	OrderNumber    string      `json:"order_number"`
	UserID         *int64      `json:"user_id,omitempty"`
	CartID         string      `json:"-"`
	Email          string      `json:"email"`
	FullName       string      `json:"full_name"`
	Address        string      `json:"address"`
	ShippingMethod string      `json:"shipping_method"`
	PaymentMethod  string      `json:"payment_method"`
	Notes          string      `json:"notes"`
	Status         string      `json:"status"`
	Currency       string      `json:"currency"`
	Subtotal       int64       `json:"subtotal"`
	ShippingFee    int64       `json:"shipping_fee"`
	Total          int64       `json:"total"`
	Items          []OrderItem `json:"items,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID          int64  `json:"id"`
	OrderID     int64  `json:"order_id"`
	VariantID   int64  `json:"variant_id"`
	ProductName string `json:"product_name"`
	VariantName string `json:"variant_name"`
	SKU         string `json:"sku"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	LineTotal   int64  `json:"line_total"`
}

type DashboardStats struct {
	OrdersByStatus   map[string]int `json:"orders_by_status"`
	TotalOrders      int            `json:"total_orders"`
	Revenue          int64          `json:"revenue"`
	ActiveProducts   int            `json:"active_products"`
	LowStockVariants int            `json:"low_stock_variants"`
}
