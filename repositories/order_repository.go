package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"storefront/models"
)

type OrderRepository struct {
	db TxBeginner
}

var _ OrderRepositoryInterface = (*OrderRepository)(nil)

func NewOrderRepository(db TxBeginner) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, order_number, user_id, COALESCE(cart_id::text, ''), email, full_name, address,
	shipping_method, payment_method, notes, status, currency, subtotal, shipping_fee, total, created_at, updated_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	o := &models.Order{}
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.CartID, &o.Email, &o.FullName, &o.Address,
		&o.ShippingMethod, &o.PaymentMethod, &o.Notes, &o.Status, &o.Currency,
		&o.Subtotal, &o.ShippingFee, &o.Total, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// lockedVariant is a variant row read under FOR UPDATE during checkout.
type lockedVariant struct {
	ID          int64
	ProductName string
	Name        string
	SKU         string
	Price       int64
	Stock       int
	Available   bool
}

// checkLines verifies every order line against the locked variant rows and
// fills the line snapshots. A line whose price no longer matches fails with
// ErrConflict so the buyer can review the cart.
func checkLines(items []models.OrderItem, locked map[int64]lockedVariant) error {
	for i := range items {
		it := &items[i]
		v, ok := locked[it.VariantID]
		if !ok || !v.Available {
			return fmt.Errorf("variant %d is no longer available: %w", it.VariantID, models.ErrOutOfStock)
		}
		if v.Stock < it.Quantity {
			return fmt.Errorf("%s has %d in stock, %d requested: %w", v.SKU, v.Stock, it.Quantity, models.ErrOutOfStock)
		}
		if v.Price != it.UnitPrice {
			return fmt.Errorf("price of %s changed: %w", v.SKU, models.ErrConflict)
		}
		it.ProductName = v.ProductName
		it.VariantName = v.Name
		it.SKU = v.SKU
		it.LineTotal = it.UnitPrice * int64(it.Quantity)
	}
	return nil
}

// Place locks the ordered variants, checks and decrements stock, stores the
// order with its lines and converts the source cart, all in one transaction.
func (r *OrderRepository) Place(ctx context.Context, o *models.Order) error {
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		ids := make([]int64, 0, len(o.Items))
		for _, it := range o.Items {
			ids = append(ids, it.VariantID)
		}

		rows, err := tx.Query(ctx, `
			SELECT v.id, p.name, v.name, v.sku, v.price, v.stock, (v.is_active AND p.is_active)
			FROM variants v
			JOIN products p ON p.id = v.product_id
			WHERE v.id = ANY($1)
			ORDER BY v.id
			FOR UPDATE OF v`, ids)
		if err != nil {
			return err
		}
		locked := make(map[int64]lockedVariant, len(ids))
		for rows.Next() {
			var v lockedVariant
			if err := rows.Scan(&v.ID, &v.ProductName, &v.Name, &v.SKU, &v.Price, &v.Stock, &v.Available); err != nil {
				rows.Close()
				return err
			}
			locked[v.ID] = v
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		if err := checkLines(o.Items, locked); err != nil {
			return err
		}

		for _, it := range o.Items {
			if _, err := tx.Exec(ctx,
				`UPDATE variants SET stock = stock - $1, updated_at = NOW() WHERE id = $2`,
				it.Quantity, it.VariantID); err != nil {
				return err
			}
		}

		var cartID *string
		if o.CartID != "" {
			cartID = &o.CartID
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO orders (order_number, user_id, cart_id, email, full_name, address, shipping_method,
				payment_method, notes, status, currency, subtotal, shipping_fee, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING id, created_at, updated_at`,
			o.OrderNumber, o.UserID, cartID, o.Email, o.FullName, o.Address, o.ShippingMethod,
			o.PaymentMethod, o.Notes, o.Status, o.Currency, o.Subtotal, o.ShippingFee, o.Total,
		).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return err
		}

		for i := range o.Items {
			it := &o.Items[i]
			it.OrderID = o.ID
			err := tx.QueryRow(ctx, `
				INSERT INTO order_items (order_id, variant_id, product_name, variant_name, sku, unit_price, quantity, line_total)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				RETURNING id`,
				it.OrderID, it.VariantID, it.ProductName, it.VariantName, it.SKU, it.UnitPrice, it.Quantity, it.LineTotal,
			).Scan(&it.ID)
			if err != nil {
				return err
			}
		}

		if cartID != nil {
			tag, err := tx.Exec(ctx,
				`UPDATE carts SET status = 'converted', updated_at = NOW() WHERE id = $1 AND status = 'active'`, *cartID)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("cart already checked out: %w", models.ErrConflict)
			}
		}
		return nil
	})
	return dbErr("OrderRepository.Place", err)
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, dbErr("OrderRepository.FindByID", err)
	}
	if o.Items, err = r.items(ctx, o.ID); err != nil {
		return nil, dbErr("OrderRepository.FindByID", err)
	}
	return o, nil
}

func (r *OrderRepository) FindByNumber(ctx context.Context, number string) (*models.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, number))
	if err != nil {
		return nil, dbErr("OrderRepository.FindByNumber", err)
	}
	if o.Items, err = r.items(ctx, o.ID); err != nil {
		return nil, dbErr("OrderRepository.FindByNumber", err)
	}
	return o, nil
}

func (r *OrderRepository) items(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, COALESCE(variant_id, 0), product_name, variant_name, sku, unit_price, quantity, line_total
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var it models.OrderItem
		err := rows.Scan(&it.ID, &it.OrderID, &it.VariantID, &it.ProductName, &it.VariantName,
			&it.SKU, &it.UnitPrice, &it.Quantity, &it.LineTotal)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int64, page, limit int) ([]models.Order, int, error) {
	const op = "OrderRepository.ListByUser"
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, dbErr(op, err)
	}

	orders, err := r.list(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, dbErr(op, err)
	}
	return orders, total, nil
}

// List filters by status and by a search term over order number and email.
func (r *OrderRepository) List(ctx context.Context, status, search string, page, limit int) ([]models.Order, int, error) {
	const op = "OrderRepository.List"
	whereConditions := []string{}
	args := []any{}
	argIndex := 1

	if status != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, status)
		argIndex++
	}
	if search != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("(order_number ILIKE $%d OR email ILIKE $%d)", argIndex, argIndex))
		args = append(args, containsPattern(search))
		argIndex++
	}

	where := ""
	if len(whereConditions) > 0 {
		where = " WHERE " + strings.Join(whereConditions, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, dbErr(op, err)
	}

	query := `SELECT ` + orderColumns + ` FROM orders` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, (page-1)*limit)

	orders, err := r.list(ctx, query, args...)
	if err != nil {
		return nil, 0, dbErr(op, err)
	}
	return orders, total, nil
}

func (r *OrderRepository) list(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// UpdateStatus moves the order from one status to another under a row lock.
// Cancelling returns the ordered quantities to stock in the same transaction.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, from, to string) error {
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		var current string
		if err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&current); err != nil {
			return err
		}
		if current != from {
			return fmt.Errorf("order is %s, not %s: %w", current, from, models.ErrInvalidTransition)
		}

		if _, err := tx.Exec(ctx, `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`, to, id); err != nil {
			return err
		}

		if to == models.OrderCancelled {
			_, err := tx.Exec(ctx, `
				UPDATE variants v
				SET stock = v.stock + oi.quantity, updated_at = NOW()
				FROM order_items oi
				WHERE oi.order_id = $1 AND oi.variant_id = v.id`, id)
			return err
		}
		return nil
	})
	return dbErr("OrderRepository.UpdateStatus", err)
}

func (r *OrderRepository) Stats(ctx context.Context, lowStockThreshold int) (*models.DashboardStats, error) {
	const op = "OrderRepository.Stats"
	stats := &models.DashboardStats{OrdersByStatus: map[string]int{}}

	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, dbErr(op, err)
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			rows.Close()
			return nil, dbErr(op, err)
		}
		stats.OrdersByStatus[status] = n
		stats.TotalOrders += n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, dbErr(op, err)
	}

	err = r.db.QueryRow(ctx, `
		SELECT
			(SELECT COALESCE(SUM(total), 0)::BIGINT FROM orders WHERE status <> 'cancelled'),
			(SELECT COUNT(*) FROM products WHERE is_active = TRUE),
			(SELECT COUNT(*) FROM variants WHERE is_active = TRUE AND stock <= $1)`, lowStockThreshold,
	).Scan(&stats.Revenue, &stats.ActiveProducts, &stats.LowStockVariants)
	if err != nil {
		return nil, dbErr(op, err)
	}
	return stats, nil
}
