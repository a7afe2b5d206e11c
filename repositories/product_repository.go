package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"storefront/models"
)

type ProductRepository struct {
	db TxBeginner
}

var _ ProductRepositoryInterface = (*ProductRepository)(nil)

func NewProductRepository(db TxBeginner) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `p.id, p.product_type_id, p.category_id, p.name, p.slug, p.description,
	p.base_price, p.image_url, p.image_public_id, p.is_active, p.created_at, p.updated_at`

func scanProduct(row pgx.Row) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(
		&p.ID, &p.ProductTypeID, &p.CategoryID, &p.Name, &p.Slug, &p.Description,
		&p.BasePrice, &p.ImageURL, &p.ImagePublicID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Search returns one page of the storefront listing and the total match count.
func (r *ProductRepository) Search(ctx context.Context, f models.ProductFilter) ([]models.ProductListItem, int, error) {
	const op = "ProductRepository.Search"
	listSQL, listArgs, countSQL, countArgs := searchQueries(f)

	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, dbErr(op, err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, dbErr(op, err)
	}
	defer rows.Close()

	items := []models.ProductListItem{}
	for rows.Next() {
		var it models.ProductListItem
		err := rows.Scan(&it.ID, &it.Name, &it.Slug, &it.ImageURL, &it.CategoryID, &it.CreatedAt,
			&it.MinPrice, &it.MaxPrice, &it.InStock)
		if err != nil {
			return nil, 0, dbErr(op, err)
		}
		items = append(items, it)
	}
	return items, total, dbErr(op, rows.Err())
}

// Facets computes attribute value counts, price range and availability over
// the products f selects. Categories are left for the caller.
func (r *ProductRepository) Facets(ctx context.Context, f models.ProductFilter) (*models.Facets, error) {
	const op = "ProductRepository.Facets"
	q := &queryArgs{}
	scoped := "SELECT p.id FROM products p WHERE " + productWhere(f, q)

	rows, err := r.db.Query(ctx, `
		WITH scoped AS (`+scoped+`)
		SELECT a.id, a.name, a.slug, av.id, av.name, av.slug, av.value, COUNT(DISTINCT pairs.product_id)
		FROM (
			SELECT v.product_id, vav.attribute_value_id
			FROM variants v
			JOIN variant_attribute_values vav ON vav.variant_id = v.id
			WHERE v.is_active = TRUE AND v.product_id IN (SELECT id FROM scoped)
			UNION
			SELECT pav.product_id, pav.attribute_value_id
			FROM product_attribute_values pav
			WHERE pav.product_id IN (SELECT id FROM scoped)
		) pairs
		JOIN attribute_values av ON av.id = pairs.attribute_value_id
		JOIN attributes a ON a.id = av.attribute_id
		GROUP BY a.id, a.name, a.slug, av.id, av.name, av.slug, av.value, av.sort_order
		ORDER BY a.name, a.id, av.sort_order, av.name`, q.args...)
	if err != nil {
		return nil, dbErr(op, err)
	}
	defer rows.Close()

	var facetRows []facetRow
	for rows.Next() {
		var fr facetRow
		err := rows.Scan(&fr.AttributeID, &fr.AttributeName, &fr.AttributeSlug,
			&fr.Value.ID, &fr.Value.Name, &fr.Value.Slug, &fr.Value.Value, &fr.Value.Count)
		if err != nil {
			return nil, dbErr(op, err)
		}
		facetRows = append(facetRows, fr)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr(op, err)
	}

	facets := &models.Facets{
		Attributes: groupFacetRows(facetRows),
		Categories: []*models.Category{},
	}

	err = r.db.QueryRow(ctx, `
		WITH scoped AS (`+scoped+`)
		SELECT COALESCE(MIN(v.price), 0), COALESCE(MAX(v.price), 0)
		FROM variants v
		WHERE v.is_active = TRUE AND v.product_id IN (SELECT id FROM scoped)`, q.args...,
	).Scan(&facets.PriceRange.Min, &facets.PriceRange.Max)
	if err != nil {
		return nil, dbErr(op, err)
	}

	err = r.db.QueryRow(ctx, `
		WITH scoped AS (`+scoped+`)
		SELECT COUNT(*) FILTER (WHERE s.in_stock), COUNT(*) FILTER (WHERE NOT s.in_stock)
		FROM (
			SELECT v.product_id, BOOL_OR(v.stock > 0) AS in_stock
			FROM variants v
			WHERE v.is_active = TRUE AND v.product_id IN (SELECT id FROM scoped)
			GROUP BY v.product_id
		) s`, q.args...,
	).Scan(&facets.Availability.InStock, &facets.Availability.OutOfStock)
	if err != nil {
		return nil, dbErr(op, err)
	}

	return facets, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id))
	if err != nil {
		return nil, dbErr("ProductRepository.FindByID", err)
	}
	if err := r.loadRelations(ctx, p); err != nil {
		return nil, dbErr("ProductRepository.FindByID", err)
	}
	return p, nil
}

func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.slug = $1`, slug))
	if err != nil {
		return nil, dbErr("ProductRepository.FindBySlug", err)
	}
	if err := r.loadRelations(ctx, p); err != nil {
		return nil, dbErr("ProductRepository.FindBySlug", err)
	}
	return p, nil
}

func (r *ProductRepository) loadRelations(ctx context.Context, p *models.Product) error {
	values, err := selectedValues(ctx, r.db, productValuesSQL, []int64{p.ID})
	if err != nil {
		return err
	}
	p.Attributes = values[p.ID]

	p.Variants, err = listVariants(ctx, r.db, p.ID)
	return err
}

// AdminList includes inactive products.
func (r *ProductRepository) AdminList(ctx context.Context, search string, page, limit int) ([]models.Product, int, error) {
	const op = "ProductRepository.AdminList"
	pattern := containsPattern(search)

	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products p WHERE p.name ILIKE $1 OR p.slug ILIKE $1`, pattern).Scan(&total)
	if err != nil {
		return nil, 0, dbErr(op, err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products p
		WHERE p.name ILIKE $1 OR p.slug ILIKE $1
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3`, pattern, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, dbErr(op, err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, dbErr(op, err)
		}
		products = append(products, *p)
	}
	return products, total, dbErr(op, rows.Err())
}

// Create inserts the product together with the attribute values listed in
// p.Attributes.
// Create stores p with its product-level values and any variants it
// already carries, in one transaction.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO products (product_type_id, category_id, name, slug, description, base_price, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at`,
			p.ProductTypeID, p.CategoryID, p.Name, p.Slug, p.Description, p.BasePrice, p.IsActive,
		).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return err
		}
		ids := make([]int64, 0, len(p.Attributes))
		for _, sv := range p.Attributes {
			ids = append(ids, sv.ValueID)
		}
		if err := replaceProductValues(ctx, tx, p.ID, ids); err != nil {
			return err
		}
		for i := range p.Variants {
			p.Variants[i].ProductID = p.ID
		}
		return insertVariants(ctx, tx, p.Variants)
	})
	return dbErr("ProductRepository.Create", err)
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	err := r.db.QueryRow(ctx, `
		UPDATE products
		SET category_id = $1, name = $2, slug = $3, description = $4, base_price = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at`,
		p.CategoryID, p.Name, p.Slug, p.Description, p.BasePrice, p.IsActive, p.ID,
	).Scan(&p.UpdatedAt)
	return dbErr("ProductRepository.Update", err)
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	return expectOne("ProductRepository.Delete", tag, err)
}

func (r *ProductRepository) SetAttributeValues(ctx context.Context, productID int64, valueIDs []int64) error {
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		return replaceProductValues(ctx, tx, productID, valueIDs)
	})
	return dbErr("ProductRepository.SetAttributeValues", err)
}

func replaceProductValues(ctx context.Context, tx pgx.Tx, productID int64, valueIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM product_attribute_values WHERE product_id = $1`, productID); err != nil {
		return err
	}
	if len(valueIDs) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO product_attribute_values (product_id, attribute_value_id)
		SELECT $1, UNNEST($2::BIGINT[])
		ON CONFLICT DO NOTHING`, productID, valueIDs)
	return err
}

func (r *ProductRepository) UpdateImage(ctx context.Context, id int64, url, publicID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET image_url = $1, image_public_id = $2, updated_at = NOW() WHERE id = $3`,
		url, publicID, id)
	return expectOne("ProductRepository.UpdateImage", tag, err)
}
