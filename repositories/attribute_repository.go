package repositories

import (
	"context"

	"storefront/models"
)

type AttributeRepository struct {
	db DBTX
}

var _ AttributeRepositoryInterface = (*AttributeRepository)(nil)

func NewAttributeRepository(db DBTX) *AttributeRepository {
	return &AttributeRepository{db: db}
}

func (r *AttributeRepository) List(ctx context.Context) ([]models.Attribute, error) {
	const op = "AttributeRepository.List"
	rows, err := r.db.Query(ctx, `SELECT id, name, slug, input_type, created_at, updated_at FROM attributes ORDER BY name`)
	if err != nil {
		return nil, dbErr(op, err)
	}
	defer rows.Close()

	attrs := []models.Attribute{}
	var ids []int64
	for rows.Next() {
		var a models.Attribute
		if err := rows.Scan(&a.ID, &a.Name, &a.Slug, &a.InputType, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, dbErr(op, err)
		}
		attrs = append(attrs, a)
		ids = append(ids, a.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr(op, err)
	}

	values, err := attributeValues(ctx, r.db, ids)
	if err != nil {
		return nil, dbErr(op, err)
	}
	for i := range attrs {
		attrs[i].Values = values[attrs[i].ID]
	}
	return attrs, nil
}

func (r *AttributeRepository) FindByID(ctx context.Context, id int64) (*models.Attribute, error) {
	const op = "AttributeRepository.FindByID"
	a := &models.Attribute{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name, slug, input_type, created_at, updated_at FROM attributes WHERE id = $1`, id,
	).Scan(&a.ID, &a.Name, &a.Slug, &a.InputType, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, dbErr(op, err)
	}

	values, err := attributeValues(ctx, r.db, []int64{id})
	if err != nil {
		return nil, dbErr(op, err)
	}
	a.Values = values[id]
	return a, nil
}

func (r *AttributeRepository) Create(ctx context.Context, a *models.Attribute) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO attributes (name, slug, input_type) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`,
		a.Name, a.Slug, a.InputType,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if a.Values == nil {
		a.Values = []models.AttributeValue{}
	}
	return dbErr("AttributeRepository.Create", err)
}

func (r *AttributeRepository) Update(ctx context.Context, a *models.Attribute) error {
	err := r.db.QueryRow(ctx,
		`UPDATE attributes SET name = $1, slug = $2, input_type = $3, updated_at = NOW() WHERE id = $4 RETURNING updated_at`,
		a.Name, a.Slug, a.InputType, a.ID,
	).Scan(&a.UpdatedAt)
	return dbErr("AttributeRepository.Update", err)
}

func (r *AttributeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM attributes WHERE id = $1`, id)
	return expectOne("AttributeRepository.Delete", tag, err)
}

// IsInUse reports whether any product type references the attribute.
func (r *AttributeRepository) IsInUse(ctx context.Context, id int64) (bool, error) {
	var used bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM product_type_attributes WHERE attribute_id = $1)`, id,
	).Scan(&used)
	return used, dbErr("AttributeRepository.IsInUse", err)
}

func (r *AttributeRepository) CreateValue(ctx context.Context, v *models.AttributeValue) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO attribute_values (attribute_id, name, slug, value, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		v.AttributeID, v.Name, v.Slug, v.Value, v.SortOrder,
	).Scan(&v.ID)
	return dbErr("AttributeRepository.CreateValue", err)
}

func (r *AttributeRepository) UpdateValue(ctx context.Context, v *models.AttributeValue) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE attribute_values SET name = $1, slug = $2, value = $3, sort_order = $4
		WHERE id = $5 AND attribute_id = $6`,
		v.Name, v.Slug, v.Value, v.SortOrder, v.ID, v.AttributeID,
	)
	return expectOne("AttributeRepository.UpdateValue", tag, err)
}

// DeleteValue fails with ErrConflict while a variant still uses the value.
func (r *AttributeRepository) DeleteValue(ctx context.Context, attributeID, valueID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM attribute_values WHERE id = $1 AND attribute_id = $2`, valueID, attributeID)
	return expectOne("AttributeRepository.DeleteValue", tag, err)
}

// attributeValues loads the values of the given attributes keyed by attribute id.
func attributeValues(ctx context.Context, db DBTX, attributeIDs []int64) (map[int64][]models.AttributeValue, error) {
	out := make(map[int64][]models.AttributeValue, len(attributeIDs))
	for _, id := range attributeIDs {
		out[id] = []models.AttributeValue{}
	}
	if len(attributeIDs) == 0 {
		return out, nil
	}

	rows, err := db.Query(ctx, `
		SELECT id, attribute_id, name, slug, value, sort_order
		FROM attribute_values
		WHERE attribute_id = ANY($1)
		ORDER BY sort_order, name`, attributeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var v models.AttributeValue
		if err := rows.Scan(&v.ID, &v.AttributeID, &v.Name, &v.Slug, &v.Value, &v.SortOrder); err != nil {
			return nil, err
		}
		out[v.AttributeID] = append(out[v.AttributeID], v)
	}
	return out, rows.Err()
}

// selectedValues resolves attribute value ids stored in a join table.
// query must select owner id, attribute id, attribute name, attribute slug,
// value id, value name, value slug and value, in that order.
func selectedValues(ctx context.Context, db DBTX, query string, ownerIDs []int64) (map[int64][]models.SelectedValue, error) {
	out := make(map[int64][]models.SelectedValue, len(ownerIDs))
	for _, id := range ownerIDs {
		out[id] = []models.SelectedValue{}
	}
	if len(ownerIDs) == 0 {
		return out, nil
	}

	rows, err := db.Query(ctx, query, ownerIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var owner int64
		var sv models.SelectedValue
		err := rows.Scan(&owner, &sv.AttributeID, &sv.AttributeName, &sv.AttributeSlug,
			&sv.ValueID, &sv.ValueName, &sv.ValueSlug, &sv.Value)
		if err != nil {
			return nil, err
		}
		out[owner] = append(out[owner], sv)
	}
	return out, rows.Err()
}

const productValuesSQL = `
	SELECT pav.product_id, a.id, a.name, a.slug, av.id, av.name, av.slug, av.value
	FROM product_attribute_values pav
	JOIN attribute_values av ON av.id = pav.attribute_value_id
	JOIN attributes a ON a.id = av.attribute_id
	WHERE pav.product_id = ANY($1)
	ORDER BY a.name, av.sort_order`

// Variant values follow the attribute position on the product type, the
// same order generated variant names use.
const variantValuesSQL = `
	SELECT vav.variant_id, a.id, a.name, a.slug, av.id, av.name, av.slug, av.value
	FROM variant_attribute_values vav
	JOIN variants v ON v.id = vav.variant_id
	JOIN products p ON p.id = v.product_id
	JOIN attribute_values av ON av.id = vav.attribute_value_id
	JOIN attributes a ON a.id = av.attribute_id
	LEFT JOIN product_type_attributes pta ON pta.product_type_id = p.product_type_id AND pta.attribute_id = a.id
	WHERE vav.variant_id = ANY($1)
	ORDER BY COALESCE(pta.position, 0), a.name`
