package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
)

func TestAttributeService_UpdateKeepsInputType(t *testing.T) {
	repo := &fakeAttributeRepo{attrs: map[int64]models.Attribute{1: colorAttr()}, inUse: map[int64]bool{}}
	svc := NewAttributeService(repo, testNotifier(newFakeCache(), &fakePublisher{}))
	ctx := context.Background()

	attr, err := svc.Update(ctx, 1, models.AttributeRequest{Name: "Colour"})
	require.NoError(t, err)
	assert.Equal(t, "colour", attr.Slug)
	assert.Equal(t, models.InputSwatch, attr.InputType)
	assert.Equal(t, models.InputSwatch, repo.attrs[1].InputType)

	attr, err = svc.Update(ctx, 1, models.AttributeRequest{Name: "Colour", InputType: models.InputDropdown})
	require.NoError(t, err)
	assert.Equal(t, models.InputDropdown, attr.InputType)
}

func TestAttributeService_DeleteInUse(t *testing.T) {
	repo := &fakeAttributeRepo{attrs: map[int64]models.Attribute{2: sizeAttr()}, inUse: map[int64]bool{2: true}}
	svc := NewAttributeService(repo, testNotifier(newFakeCache(), &fakePublisher{}))

	assert.ErrorIs(t, svc.Delete(context.Background(), 2), models.ErrConflict)
	assert.Contains(t, repo.attrs, int64(2))
}
