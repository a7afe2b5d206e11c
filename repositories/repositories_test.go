package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
)

func TestDBErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, models.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), models.ErrNotFound},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "products_slug_key"}, models.ErrConflict},
		{"foreign key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, TableName: "variants"}, models.ErrConflict},
		{"check", &pgconn.PgError{Code: pgerrcode.CheckViolation}, models.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := dbErr("Repo.Op", tt.err)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "Repo.Op")
		})
	}

	assert.NoError(t, dbErr("Repo.Op", nil))

	other := errors.New("connection reset")
	err := dbErr("Repo.Op", other)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, models.ErrNotFound)
}

func TestExpectOne(t *testing.T) {
	assert.ErrorIs(t, expectOne("Repo.Delete", pgconn.NewCommandTag("DELETE 0"), nil), models.ErrNotFound)
	assert.NoError(t, expectOne("Repo.Delete", pgconn.NewCommandTag("DELETE 1"), nil))
}

func TestCheckLines(t *testing.T) {
	locked := map[int64]lockedVariant{
		1: {ID: 1, ProductName: "Tee", Name: "Red / M", SKU: "TEE-RED-M", Price: 1500, Stock: 3, Available: true},
		2: {ID: 2, ProductName: "Mug", Name: "", SKU: "MUG", Price: 800, Stock: 0, Available: true},
		3: {ID: 3, ProductName: "Cap", SKU: "CAP", Price: 900, Stock: 10, Available: false},
	}

	t.Run("fills snapshots", func(t *testing.T) {
		items := []models.OrderItem{{VariantID: 1, UnitPrice: 1500, Quantity: 2}}
		require.NoError(t, checkLines(items, locked))
		assert.Equal(t, "Tee", items[0].ProductName)
		assert.Equal(t, "Red / M", items[0].VariantName)
		assert.Equal(t, "TEE-RED-M", items[0].SKU)
		assert.Equal(t, int64(3000), items[0].LineTotal)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		items := []models.OrderItem{{VariantID: 2, UnitPrice: 800, Quantity: 1}}
		assert.ErrorIs(t, checkLines(items, locked), models.ErrOutOfStock)
	})

	t.Run("inactive variant", func(t *testing.T) {
		items := []models.OrderItem{{VariantID: 3, UnitPrice: 900, Quantity: 1}}
		assert.ErrorIs(t, checkLines(items, locked), models.ErrOutOfStock)
	})

	t.Run("missing variant", func(t *testing.T) {
		items := []models.OrderItem{{VariantID: 99, UnitPrice: 900, Quantity: 1}}
		assert.ErrorIs(t, checkLines(items, locked), models.ErrOutOfStock)
	})

	t.Run("price changed", func(t *testing.T) {
		items := []models.OrderItem{{VariantID: 1, UnitPrice: 1200, Quantity: 1}}
		assert.ErrorIs(t, checkLines(items, locked), models.ErrConflict)
	})
}

func TestContainsPattern(t *testing.T) {
	tests := map[string]string{
		"tee":        "%tee%",
		"50%":        `%50\%%`,
		"snake_case": `%snake\_case%`,
		`C:\tmp`:     `%C:\\tmp%`,
		"":           "%%",
	}
	for in, want := range tests {
		assert.Equal(t, want, containsPattern(in), in)
	}
}
