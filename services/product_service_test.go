package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
)

type fakeImageStore struct {
	uploaded []string
	deleted  []string
}

func (s *fakeImageStore) Upload(_ context.Context, file io.Reader, filename, folder string) (string, string, error) {
	if _, err := io.ReadAll(file); err != nil {
		return "", "", err
	}
	id := folder + "/" + filename
	s.uploaded = append(s.uploaded, id)
	return "https://img.example.com/" + id, id, nil
}

func (s *fakeImageStore) Delete(_ context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return nil
}

type productFixture struct {
	svc      *ProductService
	products *fakeProductRepo
	variants *fakeVariantRepo
	images   *fakeImageStore
	cache    *fakeCache
	pub      *fakePublisher
}

func newProductFixture() productFixture {
	variants := newFakeVariantRepo(teeVariant(1, "TEE-RED-M", 1500, 0), teeVariant(2, "TEE-BLUE-M", 2500, 4))
	hidden := teeVariant(3, "TEE-HIDDEN", 100, 9)
	hidden.IsActive = false
	variants.variants[3] = &hidden

	products := newFakeProductRepo(variants, teeProduct())
	cache := newFakeCache()
	pub := &fakePublisher{}
	notify := testNotifier(cache, pub)
	images := &fakeImageStore{}
	categories := NewCategoryService(&fakeCategoryRepo{categories: categoryFixture()}, notify)
	types := &fakeTypeRepo{types: map[int64]*models.ProductType{
		1: apparelType(),
		2: {ID: 2, Name: "Gift Card", Slug: "gift-card", HasVariants: false},
	}}

	return productFixture{
		svc:      NewProductService(products, types, categories, images, notify),
		products: products,
		variants: variants,
		images:   images,
		cache:    cache,
		pub:      pub,
	}
}

func TestProductService_ListIsCachedPerQuery(t *testing.T) {
	f := newProductFixture()
	f.products.items = []models.ProductListItem{{ID: 7, Name: "Basic Tee", MinPrice: 1500, MaxPrice: 2500}}
	ctx := context.Background()
	filter := models.ProductFilter{Attributes: map[string][]string{"color": {"red", "blue"}}}

	page, err := f.svc.List(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Meta.TotalItems)
	assert.Equal(t, models.DefaultPageSize, page.Meta.Limit)

	same := models.ProductFilter{Attributes: map[string][]string{"color": {"blue", "red", "red"}}}
	_, err = f.svc.List(ctx, same)
	require.NoError(t, err)
	assert.Equal(t, 1, f.products.searchCalls, "equivalent filter served from cache")
	assert.Equal(t, 1, f.cache.hits)

	_, err = f.svc.Update(ctx, 7, models.UpdateProductRequest{Description: strPtr("new")})
	require.NoError(t, err)
	_, err = f.svc.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, 2, f.products.searchCalls, "write invalidates listings")
}

func strPtr(s string) *string { return &s }

func TestProductService_FacetsIncludeCategorySubtree(t *testing.T) {
	f := newProductFixture()

	facets, err := f.svc.Facets(context.Background(), models.ProductFilter{CategorySlug: "clothing", InStock: true})
	require.NoError(t, err)
	require.Len(t, facets.Categories, 1)
	assert.Equal(t, "clothing", facets.Categories[0].Slug)
	assert.Len(t, facets.Categories[0].Children, 2)
}

func TestProductService_GetBySlug(t *testing.T) {
	f := newProductFixture()

	detail, err := f.svc.GetBySlug(context.Background(), "basic-tee")
	require.NoError(t, err)
	assert.Len(t, detail.Variants, 2, "inactive variants hidden")
	assert.Equal(t, int64(1500), detail.MinPrice)
	assert.Equal(t, int64(2500), detail.MaxPrice)
	assert.True(t, detail.InStock)
	assert.Equal(t, "men", detail.Category.Slug)
	assert.Len(t, detail.Breadcrumbs, 2)

	f.products.products[7].IsActive = false
	_, err = f.svc.GetBySlug(context.Background(), "basic-tee")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestProductService_Create(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()

	p, err := f.svc.Create(ctx, models.CreateProductRequest{
		ProductTypeID: 1,
		CategoryID:    3,
		Name:          "Linen Shirt",
		BasePrice:     4900,
		AttributeIDs:  []int64{32},
	})
	require.NoError(t, err)
	assert.Equal(t, "linen-shirt", p.Slug)
	assert.True(t, p.IsActive)
	require.Len(t, f.products.products[p.ID].Attributes, 1)
	assert.Equal(t, "linen", f.products.products[p.ID].Attributes[0].ValueSlug)
	assert.Empty(t, p.Variants, "variants come from the matrix")

	_, err = f.svc.Create(ctx, models.CreateProductRequest{ProductTypeID: 1, CategoryID: 3, Name: "Bad", AttributeIDs: []int64{11}})
	assert.ErrorIs(t, err, models.ErrInvalidInput, "variant attribute value on a product")

	_, err = f.svc.Create(ctx, models.CreateProductRequest{ProductTypeID: 1, CategoryID: 99, Name: "Bad"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestProductService_CreateWithoutVariantsAddsDefaultVariant(t *testing.T) {
	f := newProductFixture()

	p, err := f.svc.Create(context.Background(), models.CreateProductRequest{
		ProductTypeID: 2,
		CategoryID:    5,
		Name:          "Gift Card 50",
		BasePrice:     5000,
		Stock:         100,
	})
	require.NoError(t, err)
	require.Len(t, p.Variants, 1)
	v := p.Variants[0]
	assert.Equal(t, "GIFT-CARD-50", v.SKU)
	assert.Equal(t, "Gift Card 50", v.Name)
	assert.Equal(t, int64(5000), v.Price)
	assert.Equal(t, 100, v.Stock)
	assert.True(t, v.IsActive)
	assert.Empty(t, v.AttributeValues)
	assert.Equal(t, p.ID, f.variants.variants[v.ID].ProductID)
}

func TestProductService_UploadImageReplacesOld(t *testing.T) {
	f := newProductFixture()
	f.products.products[7].ImagePublicID = "products/old.png"
	ctx := context.Background()

	p, err := f.svc.UploadImage(ctx, 7, strings.NewReader("png"), "tee.png")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/products/tee.png", p.ImageURL)
	assert.Equal(t, []string{"products/old.png"}, f.images.deleted)
	assert.Equal(t, "products/tee.png", f.products.products[7].ImagePublicID)
}

func TestResolveProductValues(t *testing.T) {
	attrs := []models.Attribute{materialAttr()}

	values, err := ResolveProductValues(attrs, []int64{31, 32, 31})
	require.NoError(t, err)
	assert.Len(t, values, 2)

	_, err = ResolveProductValues(attrs, []int64{21})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
