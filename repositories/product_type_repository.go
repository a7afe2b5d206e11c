package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"storefront/models"
)

type ProductTypeRepository struct {
	db TxBeginner
}

var _ ProductTypeRepositoryInterface = (*ProductTypeRepository)(nil)

func NewProductTypeRepository(db TxBeginner) *ProductTypeRepository {
	return &ProductTypeRepository{db: db}
}

func (r *ProductTypeRepository) List(ctx context.Context) ([]models.ProductType, error) {
	const op = "ProductTypeRepository.List"
	rows, err := r.db.Query(ctx, `SELECT id, name, slug, has_variants, created_at, updated_at FROM product_types ORDER BY name`)
	if err != nil {
		return nil, dbErr(op, err)
	}
	defer rows.Close()

	types := []models.ProductType{}
	for rows.Next() {
		var pt models.ProductType
		if err := rows.Scan(&pt.ID, &pt.Name, &pt.Slug, &pt.HasVariants, &pt.CreatedAt, &pt.UpdatedAt); err != nil {
			return nil, dbErr(op, err)
		}
		types = append(types, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr(op, err)
	}

	for i := range types {
		if err := r.loadAttributes(ctx, &types[i]); err != nil {
			return nil, dbErr(op, err)
		}
	}
	return types, nil
}

func (r *ProductTypeRepository) FindByID(ctx context.Context, id int64) (*models.ProductType, error) {
	const op = "ProductTypeRepository.FindByID"
	pt := &models.ProductType{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name, slug, has_variants, created_at, updated_at FROM product_types WHERE id = $1`, id,
	).Scan(&pt.ID, &pt.Name, &pt.Slug, &pt.HasVariants, &pt.CreatedAt, &pt.UpdatedAt)
	if err != nil {
		return nil, dbErr(op, err)
	}
	if err := r.loadAttributes(ctx, pt); err != nil {
		return nil, dbErr(op, err)
	}
	return pt, nil
}

func (r *ProductTypeRepository) loadAttributes(ctx context.Context, pt *models.ProductType) error {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.name, a.slug, a.input_type, a.created_at, a.updated_at, pta.kind
		FROM product_type_attributes pta
		JOIN attributes a ON a.id = pta.attribute_id
		WHERE pta.product_type_id = $1
		ORDER BY pta.position, a.name`, pt.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	pt.ProductAttributes = []models.Attribute{}
	pt.VariantAttributes = []models.Attribute{}
	var ids []int64
	type assigned struct {
		attr models.Attribute
		kind string
	}
	var all []assigned
	for rows.Next() {
		var a assigned
		if err := rows.Scan(&a.attr.ID, &a.attr.Name, &a.attr.Slug, &a.attr.InputType,
			&a.attr.CreatedAt, &a.attr.UpdatedAt, &a.kind); err != nil {
			return err
		}
		all = append(all, a)
		ids = append(ids, a.attr.ID)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	values, err := attributeValues(ctx, r.db, ids)
	if err != nil {
		return err
	}
	for _, a := range all {
		a.attr.Values = values[a.attr.ID]
		if a.kind == models.AttributeKindVariant {
			pt.VariantAttributes = append(pt.VariantAttributes, a.attr)
		} else {
			pt.ProductAttributes = append(pt.ProductAttributes, a.attr)
		}
	}
	return nil
}

func (r *ProductTypeRepository) Create(ctx context.Context, pt *models.ProductType, productAttrIDs, variantAttrIDs []int64) error {
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO product_types (name, slug, has_variants) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`,
			pt.Name, pt.Slug, pt.HasVariants,
		).Scan(&pt.ID, &pt.CreatedAt, &pt.UpdatedAt)
		if err != nil {
			return err
		}
		return assignAttributes(ctx, tx, pt.ID, productAttrIDs, variantAttrIDs)
	})
	return dbErr("ProductTypeRepository.Create", err)
}

// Update replaces both attribute lists atomically with the type's fields.
func (r *ProductTypeRepository) Update(ctx context.Context, pt *models.ProductType, productAttrIDs, variantAttrIDs []int64) error {
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE product_types SET name = $1, slug = $2, has_variants = $3, updated_at = NOW()
			WHERE id = $4 RETURNING updated_at`,
			pt.Name, pt.Slug, pt.HasVariants, pt.ID,
		).Scan(&pt.UpdatedAt)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM product_type_attributes WHERE product_type_id = $1`, pt.ID); err != nil {
			return err
		}
		return assignAttributes(ctx, tx, pt.ID, productAttrIDs, variantAttrIDs)
	})
	return dbErr("ProductTypeRepository.Update", err)
}

func assignAttributes(ctx context.Context, tx pgx.Tx, typeID int64, productAttrIDs, variantAttrIDs []int64) error {
	batch := &pgx.Batch{}
	const insert = `INSERT INTO product_type_attributes (product_type_id, attribute_id, kind, position) VALUES ($1, $2, $3, $4)`
	for i, id := range productAttrIDs {
		batch.Queue(insert, typeID, id, models.AttributeKindProduct, i)
	}
	for i, id := range variantAttrIDs {
		batch.Queue(insert, typeID, id, models.AttributeKindVariant, i)
	}
	if batch.Len() == 0 {
		return nil
	}
	return tx.SendBatch(ctx, batch).Close()
}

func (r *ProductTypeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM product_types WHERE id = $1`, id)
	return expectOne("ProductTypeRepository.Delete", tag, err)
}

func (r *ProductTypeRepository) IsInUse(ctx context.Context, id int64) (bool, error) {
	var used bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE product_type_id = $1)`, id).Scan(&used)
	return used, dbErr("ProductTypeRepository.IsInUse", err)
}
