package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
	"storefront/repositories"
)

type fakeAttributeRepo struct {
	attrs map[int64]models.Attribute
	inUse map[int64]bool
}

var _ repositories.AttributeRepositoryInterface = (*fakeAttributeRepo)(nil)

func (r *fakeAttributeRepo) List(context.Context) ([]models.Attribute, error) {
	out := []models.Attribute{}
	for _, a := range r.attrs {
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAttributeRepo) FindByID(_ context.Context, id int64) (*models.Attribute, error) {
	a, ok := r.attrs[id]
	if !ok {
		return nil, fmt.Errorf("attribute %d: %w", id, models.ErrNotFound)
	}
	return &a, nil
}

func (r *fakeAttributeRepo) Create(_ context.Context, a *models.Attribute) error {
	a.ID = int64(len(r.attrs) + 1)
	r.attrs[a.ID] = *a
	return nil
}

func (r *fakeAttributeRepo) Update(_ context.Context, a *models.Attribute) error {
	r.attrs[a.ID] = *a
	return nil
}

func (r *fakeAttributeRepo) Delete(_ context.Context, id int64) error {
	delete(r.attrs, id)
	return nil
}

func (r *fakeAttributeRepo) IsInUse(_ context.Context, id int64) (bool, error) {
	return r.inUse[id], nil
}

func (r *fakeAttributeRepo) CreateValue(context.Context, *models.AttributeValue) error { return nil }

func (r *fakeAttributeRepo) UpdateValue(context.Context, *models.AttributeValue) error { return nil }

func (r *fakeAttributeRepo) DeleteValue(context.Context, int64, int64) error { return nil }

func newProductTypeFixture() (*ProductTypeService, *fakeTypeRepo, *fakeAttributeRepo) {
	attrs := &fakeAttributeRepo{
		attrs: map[int64]models.Attribute{1: colorAttr(), 2: sizeAttr(), 3: materialAttr()},
		inUse: map[int64]bool{},
	}
	types := &fakeTypeRepo{types: map[int64]*models.ProductType{1: apparelType()}, inUse: map[int64]bool{}}
	return NewProductTypeService(types, attrs, testNotifier(newFakeCache(), &fakePublisher{})), types, attrs
}

func TestProductTypeService_AssignmentRules(t *testing.T) {
	svc, _, _ := newProductTypeFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, models.ProductTypeRequest{Name: "Shoes", ProductAttributeIDs: []int64{1}, VariantAttributeIDs: []int64{1, 2}})
	assert.ErrorIs(t, err, models.ErrInvalidInput, "attribute on both sides")

	_, err = svc.Create(ctx, models.ProductTypeRequest{Name: "Shoes", VariantAttributeIDs: []int64{2, 2}})
	assert.ErrorIs(t, err, models.ErrInvalidInput, "listed twice")

	_, err = svc.Create(ctx, models.ProductTypeRequest{Name: "Shoes", VariantAttributeIDs: []int64{42}})
	assert.ErrorIs(t, err, models.ErrNotFound)

	pt, err := svc.Create(ctx, models.ProductTypeRequest{Name: "Shoes", ProductAttributeIDs: []int64{3}, VariantAttributeIDs: []int64{2}})
	require.NoError(t, err)
	assert.Equal(t, "shoes", pt.Slug)
	assert.True(t, pt.HasVariants)
}

func TestProductTypeService_InUse(t *testing.T) {
	svc, types, _ := newProductTypeFixture()
	ctx := context.Background()
	types.inUse[1] = true

	_, err := svc.Update(ctx, 1, models.ProductTypeRequest{Name: "Apparel", ProductAttributeIDs: []int64{3}, VariantAttributeIDs: []int64{1}})
	assert.ErrorIs(t, err, models.ErrConflict, "dropping a variant attribute")

	_, err = svc.Update(ctx, 1, models.ProductTypeRequest{Name: "Clothing", VariantAttributeIDs: []int64{2, 1}})
	assert.NoError(t, err, "same variant attributes in another order")

	assert.ErrorIs(t, svc.Delete(ctx, 1), models.ErrConflict)
	types.inUse[1] = false
	assert.NoError(t, svc.Delete(ctx, 1))
}
