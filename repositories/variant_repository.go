package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"storefront/models"
)

type VariantRepository struct {
	db TxBeginner
}

var _ VariantRepositoryInterface = (*VariantRepository)(nil)

func NewVariantRepository(db TxBeginner) *VariantRepository {
	return &VariantRepository{db: db}
}

func (r *VariantRepository) ListByProduct(ctx context.Context, productID int64) ([]models.Variant, error) {
	variants, err := listVariants(ctx, r.db, productID)
	return variants, dbErr("VariantRepository.ListByProduct", err)
}

func listVariants(ctx context.Context, db DBTX, productID int64) ([]models.Variant, error) {
	rows, err := db.Query(ctx, `
		SELECT id, product_id, sku, name, price, stock, is_active, created_at, updated_at
		FROM variants
		WHERE product_id = $1
		ORDER BY id`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	variants := []models.Variant{}
	var ids []int64
	for rows.Next() {
		var v models.Variant
		err := rows.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Name, &v.Price, &v.Stock, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
		ids = append(ids, v.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	values, err := selectedValues(ctx, db, variantValuesSQL, ids)
	if err != nil {
		return nil, err
	}
	for i := range variants {
		variants[i].AttributeValues = values[variants[i].ID]
	}
	return variants, nil
}

func (r *VariantRepository) FindByID(ctx context.Context, id int64) (*models.Variant, error) {
	const op = "VariantRepository.FindByID"
	v := &models.Variant{}
	err := r.db.QueryRow(ctx, `
		SELECT v.id, v.product_id, v.sku, v.name, v.price, v.stock, v.is_active, v.created_at, v.updated_at,
			p.name, p.slug, p.is_active
		FROM variants v
		JOIN products p ON p.id = v.product_id
		WHERE v.id = $1`, id,
	).Scan(&v.ID, &v.ProductID, &v.SKU, &v.Name, &v.Price, &v.Stock, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
		&v.ProductName, &v.ProductSlug, &v.ProductActive)
	if err != nil {
		return nil, dbErr(op, err)
	}

	values, err := selectedValues(ctx, r.db, variantValuesSQL, []int64{id})
	if err != nil {
		return nil, dbErr(op, err)
	}
	v.AttributeValues = values[id]
	return v, nil
}

// CreateMany inserts all variants and their attribute values in one
// transaction; a duplicate SKU rolls back the whole set.
func (r *VariantRepository) CreateMany(ctx context.Context, variants []models.Variant) error {
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		return insertVariants(ctx, tx, variants)
	})
	return dbErr("VariantRepository.CreateMany", err)
}

func insertVariants(ctx context.Context, tx pgx.Tx, variants []models.Variant) error {
	for i := range variants {
		v := &variants[i]
		err := tx.QueryRow(ctx, `
			INSERT INTO variants (product_id, sku, name, price, stock, is_active)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, updated_at`,
			v.ProductID, v.SKU, v.Name, v.Price, v.Stock, v.IsActive,
		).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return err
		}
		if err := replaceVariantValues(ctx, tx, v.ID, v.ValueIDs()); err != nil {
			return err
		}
	}
	return nil
}

func (r *VariantRepository) Update(ctx context.Context, v *models.Variant) error {
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE variants SET sku = $1, name = $2, price = $3, stock = $4, is_active = $5, updated_at = NOW()
			WHERE id = $6
			RETURNING updated_at`,
			v.SKU, v.Name, v.Price, v.Stock, v.IsActive, v.ID,
		).Scan(&v.UpdatedAt)
		if err != nil {
			return err
		}
		return replaceVariantValues(ctx, tx, v.ID, v.ValueIDs())
	})
	return dbErr("VariantRepository.Update", err)
}

func replaceVariantValues(ctx context.Context, tx pgx.Tx, variantID int64, valueIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM variant_attribute_values WHERE variant_id = $1`, variantID); err != nil {
		return err
	}
	if len(valueIDs) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO variant_attribute_values (variant_id, attribute_value_id)
		SELECT $1, UNNEST($2::BIGINT[])`, variantID, valueIDs)
	return err
}

func (r *VariantRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM variants WHERE id = $1`, id)
	return expectOne("VariantRepository.Delete", tag, err)
}

// BulkUpdate applies price and stock changes; nil fields are left as they are.
func (r *VariantRepository) BulkUpdate(ctx context.Context, updates []models.VariantStockPrice) error {
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		for _, u := range updates {
			tag, err := tx.Exec(ctx, `
				UPDATE variants
				SET price = COALESCE($1, price), stock = COALESCE($2, stock), updated_at = NOW()
				WHERE id = $3`, u.Price, u.Stock, u.ID)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("variant %d: %w", u.ID, models.ErrNotFound)
			}
		}
		return nil
	})
	return dbErr("VariantRepository.BulkUpdate", err)
}
