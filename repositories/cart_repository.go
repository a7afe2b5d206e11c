package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"storefront/models"
)

type CartRepository struct {
	db DBTX
}

var _ CartRepositoryInterface = (*CartRepository)(nil)

func NewCartRepository(db DBTX) *CartRepository {
	return &CartRepository{db: db}
}

const cartColumns = `id::text, user_id, session_token, status, created_at, updated_at`

func scanCart(row pgx.Row) (*models.Cart, error) {
	c := &models.Cart{}
	if err := row.Scan(&c.ID, &c.UserID, &c.SessionToken, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Items = []models.CartItem{}
	return c, nil
}

func (r *CartRepository) FindActiveByUser(ctx context.Context, userID int64) (*models.Cart, error) {
	c, err := scanCart(r.db.QueryRow(ctx,
		`SELECT `+cartColumns+` FROM carts WHERE user_id = $1 AND status = 'active'`, userID))
	if err != nil {
		return nil, dbErr("CartRepository.FindActiveByUser", err)
	}
	return c, nil
}

func (r *CartRepository) FindActiveBySession(ctx context.Context, token string) (*models.Cart, error) {
	c, err := scanCart(r.db.QueryRow(ctx,
		`SELECT `+cartColumns+` FROM carts WHERE session_token = $1 AND user_id IS NULL AND status = 'active'`, token))
	if err != nil {
		return nil, dbErr("CartRepository.FindActiveBySession", err)
	}
	return c, nil
}

func (r *CartRepository) Create(ctx context.Context, c *models.Cart) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO carts (id, user_id, session_token, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		c.ID, c.UserID, c.SessionToken, c.Status,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if c.Items == nil {
		c.Items = []models.CartItem{}
	}
	return dbErr("CartRepository.Create", err)
}

// Items returns the cart lines priced at the current variant price.
func (r *CartRepository) Items(ctx context.Context, cartID string) ([]models.CartItem, error) {
	const op = "CartRepository.Items"
	rows, err := r.db.Query(ctx, `
		SELECT ci.id, ci.cart_id::text, ci.variant_id, p.id, p.name, p.slug, v.name, v.sku, p.image_url,
			v.price, ci.quantity, v.stock, (v.is_active AND p.is_active)
		FROM cart_items ci
		JOIN variants v ON v.id = ci.variant_id
		JOIN products p ON p.id = v.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at, ci.id`, cartID)
	if err != nil {
		return nil, dbErr(op, err)
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		var it models.CartItem
		err := rows.Scan(&it.ID, &it.CartID, &it.VariantID, &it.ProductID, &it.ProductName, &it.ProductSlug,
			&it.VariantName, &it.SKU, &it.ImageURL, &it.UnitPrice, &it.Quantity, &it.Stock, &it.Available)
		if err != nil {
			return nil, dbErr(op, err)
		}
		items = append(items, it)
	}
	return items, dbErr(op, rows.Err())
}

// SetItemQuantity stores quantity as the line's absolute quantity.
func (r *CartRepository) SetItemQuantity(ctx context.Context, cartID string, variantID int64, quantity int) error {
	const op = "CartRepository.SetItemQuantity"
	_, err := r.db.Exec(ctx, `
		INSERT INTO cart_items (cart_id, variant_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, variant_id) DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()`,
		cartID, variantID, quantity)
	if err != nil {
		return dbErr(op, err)
	}
	return r.touch(ctx, op, cartID)
}

func (r *CartRepository) DeleteItem(ctx context.Context, cartID string, itemID int64) error {
	const op = "CartRepository.DeleteItem"
	tag, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`, itemID, cartID)
	if err := expectOne(op, tag, err); err != nil {
		return err
	}
	return r.touch(ctx, op, cartID)
}

func (r *CartRepository) Clear(ctx context.Context, cartID string) error {
	const op = "CartRepository.Clear"
	if _, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return dbErr(op, err)
	}
	return r.touch(ctx, op, cartID)
}

// AssignUser turns a guest cart into the user's cart.
func (r *CartRepository) AssignUser(ctx context.Context, cartID string, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE carts SET user_id = $1, session_token = NULL, updated_at = NOW() WHERE id = $2`, userID, cartID)
	return expectOne("CartRepository.AssignUser", tag, err)
}

// Discard removes a cart whose lines were merged elsewhere.
func (r *CartRepository) Discard(ctx context.Context, cartID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM carts WHERE id = $1`, cartID)
	return expectOne("CartRepository.Discard", tag, err)
}

func (r *CartRepository) touch(ctx context.Context, op, cartID string) error {
	_, err := r.db.Exec(ctx, `UPDATE carts SET updated_at = NOW() WHERE id = $1`, cartID)
	return dbErr(op, err)
}
