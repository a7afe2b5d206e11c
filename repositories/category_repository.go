package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"storefront/models"
)

type CategoryRepository struct {
	db DBTX
}

var _ CategoryRepositoryInterface = (*CategoryRepository)(nil)

func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

const categoryColumns = `id, parent_id, name, slug, description, sort_order, is_active, created_at, updated_at`

func scanCategory(row pgx.Row) (*models.Category, error) {
	c := &models.Category{}
	err := row.Scan(
		&c.ID, &c.ParentID, &c.Name, &c.Slug, &c.Description,
		&c.SortOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CategoryRepository) List(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	const op = "CategoryRepository.List"
	query := `SELECT ` + categoryColumns + ` FROM categories
		WHERE $1 OR is_active = TRUE
		ORDER BY sort_order, name`

	rows, err := r.db.Query(ctx, query, includeInactive)
	if err != nil {
		return nil, dbErr(op, err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, dbErr(op, err)
		}
		categories = append(categories, *c)
	}
	return categories, dbErr(op, rows.Err())
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		return nil, dbErr("CategoryRepository.FindByID", err)
	}
	return c, nil
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug))
	if err != nil {
		return nil, dbErr("CategoryRepository.FindBySlug", err)
	}
	return c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	query := `
		INSERT INTO categories (parent_id, name, slug, description, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		c.ParentID, c.Name, c.Slug, c.Description, c.SortOrder, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return dbErr("CategoryRepository.Create", err)
}

func (r *CategoryRepository) Update(ctx context.Context, c *models.Category) error {
	query := `
		UPDATE categories
		SET parent_id = $1, name = $2, slug = $3, description = $4, sort_order = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		c.ParentID, c.Name, c.Slug, c.Description, c.SortOrder, c.IsActive, c.ID,
	).Scan(&c.UpdatedAt)
	return dbErr("CategoryRepository.Update", err)
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return expectOne("CategoryRepository.Delete", tag, err)
}

func (r *CategoryRepository) CountChildren(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE parent_id = $1`, id).Scan(&n)
	return n, dbErr("CategoryRepository.CountChildren", err)
}

func (r *CategoryRepository) CountProducts(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, id).Scan(&n)
	return n, dbErr("CategoryRepository.CountProducts", err)
}
