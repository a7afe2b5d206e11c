package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/middleware"
	"storefront/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("product 9: %w", models.ErrNotFound), http.StatusNotFound},
		{models.ErrConflict, http.StatusConflict},
		{fmt.Errorf("only 1 left: %w", models.ErrOutOfStock), http.StatusConflict},
		{models.ErrInvalidTransition, http.StatusConflict},
		{models.ErrInvalidInput, http.StatusBadRequest},
		{models.ErrUnauthorized, http.StatusUnauthorized},
		{models.ErrForbidden, http.StatusForbidden},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, statusFor(tt.err), tt.err.Error())
	}
}

func TestRespondErrorHidesInternalErrors(t *testing.T) {
	c, w := testContext("/")
	respondError(c, "Failed to retrieve products", errors.New("dial tcp 10.0.0.3:5432: refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.3")
	assert.Len(t, c.Errors, 1)

	c, w = testContext("/")
	respondError(c, "Checkout failed", fmt.Errorf("only 1 of TEE-M left: %w", models.ErrOutOfStock))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "only 1 of TEE-M left")
}

func TestParseProductFilter(t *testing.T) {
	c, _ := testContext("/products?q=tee&category=men&attr.color=red,blue&attr.size=m&attr.size=l&attr.=x" +
		"&min_price=1000&max_price=5000&in_stock=true&sort=price_asc&page=2&limit=24")

	f, err := parseProductFilter(c)
	require.NoError(t, err)
	assert.Equal(t, "tee", f.Query)
	assert.Equal(t, "men", f.CategorySlug)
	assert.Equal(t, []string{"red", "blue"}, f.Attributes["color"])
	assert.ElementsMatch(t, []string{"m", "l"}, f.Attributes["size"])
	assert.Len(t, f.Attributes, 2)
	require.NotNil(t, f.MinPrice)
	assert.Equal(t, int64(1000), *f.MinPrice)
	assert.Equal(t, int64(5000), *f.MaxPrice)
	assert.True(t, f.InStock)
	assert.Equal(t, models.SortPriceAsc, f.Sort)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 24, f.Limit)
}

func TestParseProductFilterRejectsBadInput(t *testing.T) {
	for _, target := range []string{
		"/products?min_price=abc",
		"/products?max_price=-1",
		"/products?min_price=500&max_price=100",
		"/products?in_stock=maybe",
	} {
		c, _ := testContext(target)
		_, err := parseProductFilter(c)
		assert.ErrorIs(t, err, models.ErrInvalidInput, target)
	}
}

func TestGenerateLinks(t *testing.T) {
	c, _ := testContext("/admin/orders?status=paid&page=2&limit=10")
	c.Request.Host = "shop.local"

	links := generateLinks(c, 2, 10, 3)
	assert.Equal(t, "http://shop.local/admin/orders?limit=10&page=2&status=paid", links.Self)
	assert.Equal(t, "http://shop.local/admin/orders?limit=10&page=1&status=paid", links.Prev)
	assert.Equal(t, "http://shop.local/admin/orders?limit=10&page=3&status=paid", links.Next)

	links = generateLinks(c, 3, 10, 3)
	assert.Empty(t, links.Next)
}

func TestCartOwner(t *testing.T) {
	c, _ := testContext("/cart")
	c.Set(middleware.ContextGuestToken, "guest-1")

	owner := cartOwner(c)
	assert.Nil(t, owner.UserID)
	assert.Equal(t, "guest-1", owner.SessionToken)

	c.Set(middleware.ContextUserID, int64(7))
	owner = cartOwner(c)
	require.NotNil(t, owner.UserID)
	assert.Equal(t, int64(7), *owner.UserID)
}

func TestParamID(t *testing.T) {
	c, w := testContext("/")
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	_, ok := paramID(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, _ = testContext("/")
	c.Params = gin.Params{{Key: "id", Value: "12"}}
	id, ok := paramID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, int64(12), id)
}
