package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"storefront/models"
)

type CollectionRepository struct {
	db DBTX
}

var _ CollectionRepositoryInterface = (*CollectionRepository)(nil)

func NewCollectionRepository(db DBTX) *CollectionRepository {
	return &CollectionRepository{db: db}
}

const collectionSelect = `
	SELECT c.id, c.name, c.slug, c.description, c.is_published, c.created_at, c.updated_at,
		COALESCE(ARRAY(SELECT cp.product_id FROM collection_products cp WHERE cp.collection_id = c.id ORDER BY cp.added_at, cp.product_id), '{}')
	FROM collections c`

func scanCollection(row pgx.Row) (*models.Collection, error) {
	c := &models.Collection{}
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.IsPublished, &c.CreatedAt, &c.UpdatedAt, &c.ProductIDs)
	if err != nil {
		return nil, err
	}
	if c.ProductIDs == nil {
		c.ProductIDs = []int64{}
	}
	return c, nil
}

func (r *CollectionRepository) List(ctx context.Context, publishedOnly bool) ([]models.Collection, error) {
	const op = "CollectionRepository.List"
	rows, err := r.db.Query(ctx, collectionSelect+` WHERE NOT $1 OR c.is_published = TRUE ORDER BY c.name`, publishedOnly)
	if err != nil {
		return nil, dbErr(op, err)
	}
	defer rows.Close()

	collections := []models.Collection{}
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, dbErr(op, err)
		}
		collections = append(collections, *c)
	}
	return collections, dbErr(op, rows.Err())
}

func (r *CollectionRepository) FindByID(ctx context.Context, id int64) (*models.Collection, error) {
	c, err := scanCollection(r.db.QueryRow(ctx, collectionSelect+` WHERE c.id = $1`, id))
	if err != nil {
		return nil, dbErr("CollectionRepository.FindByID", err)
	}
	return c, nil
}

func (r *CollectionRepository) FindBySlug(ctx context.Context, slug string) (*models.Collection, error) {
	c, err := scanCollection(r.db.QueryRow(ctx, collectionSelect+` WHERE c.slug = $1`, slug))
	if err != nil {
		return nil, dbErr("CollectionRepository.FindBySlug", err)
	}
	return c, nil
}

func (r *CollectionRepository) Create(ctx context.Context, c *models.Collection) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO collections (name, slug, description, is_published)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		c.Name, c.Slug, c.Description, c.IsPublished,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if c.ProductIDs == nil {
		c.ProductIDs = []int64{}
	}
	return dbErr("CollectionRepository.Create", err)
}

func (r *CollectionRepository) Update(ctx context.Context, c *models.Collection) error {
	err := r.db.QueryRow(ctx, `
		UPDATE collections SET name = $1, slug = $2, description = $3, is_published = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`,
		c.Name, c.Slug, c.Description, c.IsPublished, c.ID,
	).Scan(&c.UpdatedAt)
	return dbErr("CollectionRepository.Update", err)
}

func (r *CollectionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM collections WHERE id = $1`, id)
	return expectOne("CollectionRepository.Delete", tag, err)
}

// AddProducts ignores products already in the collection. An unknown product
// id fails the whole statement with ErrConflict.
func (r *CollectionRepository) AddProducts(ctx context.Context, id int64, productIDs []int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO collection_products (collection_id, product_id)
		SELECT $1, UNNEST($2::BIGINT[])
		ON CONFLICT DO NOTHING`, id, productIDs)
	return dbErr("CollectionRepository.AddProducts", err)
}

func (r *CollectionRepository) RemoveProduct(ctx context.Context, id, productID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM collection_products WHERE collection_id = $1 AND product_id = $2`, id, productID)
	return expectOne("CollectionRepository.RemoveProduct", tag, err)
}
