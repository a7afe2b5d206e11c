package repositories

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
)

func int64Ptr(v int64) *int64 { return &v }

func TestProductWhere_MinimalFilterRequiresActiveVariant(t *testing.T) {
	q := &queryArgs{}
	where := productWhere(models.ProductFilter{}, q)

	assert.Contains(t, where, "p.is_active = TRUE")
	assert.Contains(t, where, "EXISTS (SELECT 1 FROM variants v WHERE v.product_id = p.id AND v.is_active = TRUE)")
	assert.Empty(t, q.args)
}

func TestProductWhere_PlaceholdersFollowArgumentOrder(t *testing.T) {
	f := models.ProductFilter{
		Query:          "tee",
		CategorySlug:   "apparel",
		CollectionSlug: "summer",
		MinPrice:       int64Ptr(1000),
		MaxPrice:       int64Ptr(5000),
		InStock:        true,
		Attributes: map[string][]string{
			"size":  {"m", "l"},
			"color": {"red"},
		},
	}
	q := &queryArgs{}
	where := productWhere(f, q)

	require.Len(t, q.args, 9)
	assert.Equal(t, "%tee%", q.args[0])
	assert.Equal(t, "apparel", q.args[1])
	assert.Equal(t, "summer", q.args[2])
	assert.Equal(t, int64(1000), q.args[3])
	assert.Equal(t, int64(5000), q.args[4])
	// attributes are visited in slug order
	assert.Equal(t, "color", q.args[5])
	assert.Equal(t, []string{"red"}, q.args[6])
	assert.Equal(t, "size", q.args[7])
	assert.Equal(t, []string{"m", "l"}, q.args[8])

	assert.Contains(t, where, "p.name ILIKE $1 OR p.description ILIKE $1")
	assert.Contains(t, where, "WITH RECURSIVE tree")
	assert.Contains(t, where, "col.slug = $3")
	assert.Contains(t, where, "v.price >= $4")
	assert.Contains(t, where, "v.price <= $5")
	assert.Contains(t, where, "v.stock > 0")
	assert.Contains(t, where, "a.slug = $6 AND av.slug = ANY($7)")
	assert.Contains(t, where, "a.slug = $8 AND av.slug = ANY($9)")
}

func TestProductWhere_AttributeConstraintsShareOneVariant(t *testing.T) {
	f := models.ProductFilter{
		Attributes: map[string][]string{"size": {"m"}, "color": {"red"}},
		InStock:    true,
	}
	where := productWhere(f, &queryArgs{})

	assert.Equal(t, 1, strings.Count(where, "FROM variants v WHERE"))
	assert.Equal(t, 2, strings.Count(where, "vav.variant_id = v.id"))
}

func TestSearchQueries_CountArgsExcludePaging(t *testing.T) {
	f := models.ProductFilter{Query: "mug", Sort: models.SortPriceAsc, Page: 3, Limit: 10}

	listSQL, listArgs, countSQL, countArgs := searchQueries(f)

	assert.Equal(t, []any{"%mug%"}, countArgs)
	assert.Equal(t, []any{"%mug%", 10, 20}, listArgs)
	assert.Contains(t, listSQL, "LIMIT $2 OFFSET $3")
	assert.Contains(t, listSQL, "ORDER BY min_price ASC")
	assert.NotContains(t, countSQL, "LIMIT")
}

func TestProductOrderBy(t *testing.T) {
	tests := map[string]string{
		models.SortNewest:    "p.created_at DESC, p.id DESC",
		models.SortPriceAsc:  "min_price ASC, p.id DESC",
		models.SortPriceDesc: "max_price DESC, p.id DESC",
		models.SortNameAsc:   "p.name ASC, p.id ASC",
		models.SortNameDesc:  "p.name DESC, p.id DESC",
		"bogus":              "p.created_at DESC, p.id DESC",
	}
	for sort, want := range tests {
		t.Run(sort, func(t *testing.T) {
			assert.Equal(t, want, productOrderBy(sort))
		})
	}
}

func TestGroupFacetRows(t *testing.T) {
	rows := []facetRow{
		{AttributeID: 2, AttributeName: "Color", AttributeSlug: "color", Value: models.FacetValue{ID: 10, Slug: "red", Count: 3}},
		{AttributeID: 2, AttributeName: "Color", AttributeSlug: "color", Value: models.FacetValue{ID: 11, Slug: "blue", Count: 1}},
		{AttributeID: 1, AttributeName: "Size", AttributeSlug: "size", Value: models.FacetValue{ID: 20, Slug: "m", Count: 4}},
	}

	facets := groupFacetRows(rows)

	require.Len(t, facets, 2)
	assert.Equal(t, "color", facets[0].Slug)
	require.Len(t, facets[0].Values, 2)
	assert.Equal(t, "blue", facets[0].Values[1].Slug)
	assert.Equal(t, "size", facets[1].Slug)
	assert.Equal(t, 4, facets[1].Values[0].Count)

	assert.Empty(t, groupFacetRows(nil))
}

func TestProductWhere_QueryMatchesLiterally(t *testing.T) {
	q := &queryArgs{}
	productWhere(models.ProductFilter{Query: "50%_off"}, q)

	require.Len(t, q.args, 1)
	assert.Equal(t, `%50\%\_off%`, q.args[0])
}
