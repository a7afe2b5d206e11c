package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/libs"
	"storefront/middleware"
	"storefront/models"
	"storefront/repositories"
	"storefront/services"
	"storefront/utils"
)

type memCategoryRepo struct {
	categories []models.Category
	products   map[int64]int
}

var _ repositories.CategoryRepositoryInterface = (*memCategoryRepo)(nil)

func (r *memCategoryRepo) List(_ context.Context, includeInactive bool) ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range r.categories {
		if includeInactive || c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCategoryRepo) find(match func(models.Category) bool) (*models.Category, error) {
	for _, c := range r.categories {
		if match(c) {
			cp := c
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *memCategoryRepo) FindByID(_ context.Context, id int64) (*models.Category, error) {
	return r.find(func(c models.Category) bool { return c.ID == id })
}

func (r *memCategoryRepo) FindBySlug(_ context.Context, slug string) (*models.Category, error) {
	return r.find(func(c models.Category) bool { return c.Slug == slug })
}

func (r *memCategoryRepo) Create(_ context.Context, c *models.Category) error {
	for _, existing := range r.categories {
		if existing.Slug == c.Slug {
			return models.ErrConflict
		}
	}
	c.ID = int64(len(r.categories) + 100)
	r.categories = append(r.categories, *c)
	return nil
}

func (r *memCategoryRepo) Update(_ context.Context, c *models.Category) error {
	for i := range r.categories {
		if r.categories[i].ID == c.ID {
			r.categories[i] = *c
			return nil
		}
	}
	return models.ErrNotFound
}

func (r *memCategoryRepo) Delete(_ context.Context, id int64) error {
	for i := range r.categories {
		if r.categories[i].ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (r *memCategoryRepo) CountChildren(_ context.Context, id int64) (int, error) {
	n := 0
	for _, c := range r.categories {
		if c.ParentID != nil && *c.ParentID == id {
			n++
		}
	}
	return n, nil
}

func (r *memCategoryRepo) CountProducts(_ context.Context, id int64) (int, error) {
	return r.products[id], nil
}

func parent(id int64) *int64 { return &id }

func newCategoryRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	repo := &memCategoryRepo{
		categories: []models.Category{
			{ID: 1, Name: "Clothing", Slug: "clothing", IsActive: true},
			{ID: 2, ParentID: parent(1), Name: "Men", Slug: "men", IsActive: true},
			{ID: 3, ParentID: parent(2), Name: "Shirts", Slug: "shirts", IsActive: true},
			{ID: 4, Name: "Archive", Slug: "archive", IsActive: false},
		},
		products: map[int64]int{3: 4},
	}
	log := zap.NewNop()
	notify := services.NewCatalogNotifier(libs.NewRedisCache(nil, time.Minute, log), libs.NopPublisher{}, log)
	ctrl := NewCategoryController(services.NewCategoryService(repo, notify))

	tokens := utils.NewTokenIssuer("secret", time.Hour)
	token, err := tokens.GenerateToken(1, "admin@example.com", models.RoleAdmin)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/categories", ctrl.GetCategories)
	r.GET("/categories/tree", ctrl.GetCategoryTree)
	r.GET("/categories/:slug", ctrl.GetCategoryBySlug)
	admin := r.Group("/admin", middleware.AuthMiddleware(tokens), middleware.AdminMiddleware())
	admin.POST("/categories", ctrl.CreateCategory)
	admin.PATCH("/categories/:id", ctrl.UpdateCategory)
	admin.DELETE("/categories/:id", ctrl.DeleteCategory)
	return r, token
}

func do(r *gin.Engine, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCategoryController_PublicReads(t *testing.T) {
	r, _ := newCategoryRouter(t)

	w := do(r, http.MethodGet, "/categories", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data []models.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Data, 3, "inactive categories hidden")

	w = do(r, http.MethodGet, "/categories/tree", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var tree struct {
		Data []models.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tree))
	require.Len(t, tree.Data, 1)
	assert.Equal(t, "shirts", tree.Data[0].Children[0].Children[0].Slug)

	w = do(r, http.MethodGet, "/categories/shirts", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		Data models.CategoryDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Len(t, detail.Data.Breadcrumbs, 3)
	assert.Equal(t, "clothing", detail.Data.Breadcrumbs[0].Slug)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/categories/nope", "", "").Code)
}

func TestCategoryController_AdminWrites(t *testing.T) {
	r, token := newCategoryRouter(t)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/admin/categories", "", `{"name":"Kids"}`).Code)

	w := do(r, http.MethodPost, "/admin/categories", token, `{"name":"Kids Wear","parent_id":1}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"slug":"kids-wear"`)

	w = do(r, http.MethodPost, "/admin/categories", token, `{"name":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "name too short")

	w = do(r, http.MethodPost, "/admin/categories", token, `{"name":"Men"}`)
	assert.Equal(t, http.StatusConflict, w.Code, "duplicate slug")

	w = do(r, http.MethodPatch, "/admin/categories/1", token, `{"name":"Clothing","parent_id":3}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "cycle")

	assert.Equal(t, http.StatusConflict, do(r, http.MethodDelete, "/admin/categories/2", token, "").Code, "has children")
	assert.Equal(t, http.StatusConflict, do(r, http.MethodDelete, "/admin/categories/3", token, "").Code, "has products")
	assert.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/admin/categories/4", token, "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodDelete, "/admin/categories/abc", token, "").Code)
}
