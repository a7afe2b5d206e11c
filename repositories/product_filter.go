package repositories

import (
	"fmt"
	"strings"

	"storefront/models"
)

type queryArgs struct {
	args []any
}

// add appends v and returns its positional placeholder.
func (q *queryArgs) add(v any) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

const categorySubtreeSQL = `p.category_id IN (
	WITH RECURSIVE tree AS (
		SELECT id FROM categories WHERE slug = %s AND is_active = TRUE
		UNION ALL
		SELECT c.id FROM categories c JOIN tree t ON c.parent_id = t.id WHERE c.is_active = TRUE
	)
	SELECT id FROM tree
)`

const attributeMatchSQL = `(EXISTS (
		SELECT 1 FROM variant_attribute_values vav
		JOIN attribute_values av ON av.id = vav.attribute_value_id
		JOIN attributes a ON a.id = av.attribute_id
		WHERE vav.variant_id = v.id AND a.slug = %[1]s AND av.slug = ANY(%[2]s)
	) OR EXISTS (
		SELECT 1 FROM product_attribute_values pav
		JOIN attribute_values av ON av.id = pav.attribute_value_id
		JOIN attributes a ON a.id = av.attribute_id
		WHERE pav.product_id = p.id AND a.slug = %[1]s AND av.slug = ANY(%[2]s)
	))`

// productWhere builds the WHERE clause over products aliased p. All variant
// level constraints are applied to one active variant v so that attribute,
// price and stock filters must hold for the same SKU.
func productWhere(f models.ProductFilter, q *queryArgs) string {
	conds := []string{"p.is_active = TRUE"}

	if f.Query != "" {
		ph := q.add(containsPattern(f.Query))
		conds = append(conds, fmt.Sprintf("(p.name ILIKE %[1]s OR p.description ILIKE %[1]s)", ph))
	}
	if f.CategorySlug != "" {
		conds = append(conds, fmt.Sprintf(categorySubtreeSQL, q.add(f.CategorySlug)))
	}
	if f.CollectionSlug != "" {
		conds = append(conds, fmt.Sprintf(`EXISTS (
	SELECT 1 FROM collection_products cp
	JOIN collections col ON col.id = cp.collection_id
	WHERE cp.product_id = p.id AND col.slug = %s AND col.is_published = TRUE
)`, q.add(f.CollectionSlug)))
	}

	variantConds := []string{"v.product_id = p.id", "v.is_active = TRUE"}
	if f.MinPrice != nil {
		variantConds = append(variantConds, "v.price >= "+q.add(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		variantConds = append(variantConds, "v.price <= "+q.add(*f.MaxPrice))
	}
	if f.InStock {
		variantConds = append(variantConds, "v.stock > 0")
	}
	for _, slug := range f.AttributeSlugs() {
		variantConds = append(variantConds,
			fmt.Sprintf(attributeMatchSQL, q.add(slug), q.add(f.Attributes[slug])))
	}
	conds = append(conds, "EXISTS (SELECT 1 FROM variants v WHERE "+strings.Join(variantConds, " AND ")+")")

	return strings.Join(conds, "\n AND ")
}

func productOrderBy(sort string) string {
	switch sort {
	case models.SortPriceAsc:
		return "min_price ASC, p.id DESC"
	case models.SortPriceDesc:
		return "max_price DESC, p.id DESC"
	case models.SortNameAsc:
		return "p.name ASC, p.id ASC"
	case models.SortNameDesc:
		return "p.name DESC, p.id DESC"
	default:
		return "p.created_at DESC, p.id DESC"
	}
}

// searchQueries returns the page and count queries for f. countArgs is a
// prefix of listArgs; the page query adds limit and offset.
func searchQueries(f models.ProductFilter) (listSQL string, listArgs []any, countSQL string, countArgs []any) {
	q := &queryArgs{}
	where := productWhere(f, q)

	countSQL = "SELECT COUNT(*) FROM products p WHERE " + where

	countArgs = append([]any(nil), q.args...)
	limit := q.add(f.Limit)
	offset := q.add(f.Offset())
	listSQL = fmt.Sprintf(`
		SELECT p.id, p.name, p.slug, p.image_url, p.category_id, p.created_at,
			MIN(pv.price) AS min_price, MAX(pv.price) AS max_price,
			COALESCE(BOOL_OR(pv.stock > 0), FALSE)
		FROM products p
		JOIN variants pv ON pv.product_id = p.id AND pv.is_active = TRUE
		WHERE %s
		GROUP BY p.id
		ORDER BY %s
		LIMIT %s OFFSET %s`, where, productOrderBy(f.Sort), limit, offset)

	return listSQL, q.args, countSQL, countArgs
}

type facetRow struct {
	AttributeID   int64
	AttributeName string
	AttributeSlug string
	Value         models.FacetValue
}

// groupFacetRows folds rows ordered by attribute into one facet per attribute.
func groupFacetRows(rows []facetRow) []models.AttributeFacet {
	facets := []models.AttributeFacet{}
	index := map[int64]int{}
	for _, r := range rows {
		i, ok := index[r.AttributeID]
		if !ok {
			facets = append(facets, models.AttributeFacet{
				ID:     r.AttributeID,
				Name:   r.AttributeName,
				Slug:   r.AttributeSlug,
				Values: []models.FacetValue{},
			})
			i = len(facets) - 1
			index[r.AttributeID] = i
		}
		facets[i].Values = append(facets[i].Values, r.Value)
	}
	return facets
}
