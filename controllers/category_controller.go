package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/models"
	"storefront/services"
)

type CategoryController struct {
	categories *services.CategoryService
}

func NewCategoryController(categories *services.CategoryService) *CategoryController {
	return &CategoryController{categories: categories}
}

// @Summary Get all categories
// @Description Flat list of active categories
// @Tags Categories
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Category}
// @Router /categories [get]
func (ctrl *CategoryController) GetCategories(c *gin.Context) {
	categories, err := ctrl.categories.List(c.Request.Context(), false)
	if err != nil {
		respondError(c, "Failed to retrieve categories", err)
		return
	}
	respondOK(c, http.StatusOK, "Categories retrieved", categories)
}

// @Summary Get category tree
// @Description Active categories nested under their parents
// @Tags Categories
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Category}
// @Router /categories/tree [get]
func (ctrl *CategoryController) GetCategoryTree(c *gin.Context) {
	tree, err := ctrl.categories.Tree(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to retrieve categories", err)
		return
	}
	respondOK(c, http.StatusOK, "Category tree retrieved", tree)
}

// @Summary Get category by slug
// @Description Category with breadcrumbs and direct subcategories
// @Tags Categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} models.Response{data=models.CategoryDetail}
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{slug} [get]
func (ctrl *CategoryController) GetCategoryBySlug(c *gin.Context) {
	detail, err := ctrl.categories.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, "Category not found", err)
		return
	}
	respondOK(c, http.StatusOK, "Category retrieved", detail)
}

// @Summary List all categories
// @Description Includes inactive categories
// @Tags Admin - Categories
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Category}
// @Router /admin/categories [get]
func (ctrl *CategoryController) AdminGetCategories(c *gin.Context) {
	categories, err := ctrl.categories.List(c.Request.Context(), true)
	if err != nil {
		respondError(c, "Failed to retrieve categories", err)
		return
	}
	respondOK(c, http.StatusOK, "Categories retrieved", categories)
}

// @Summary Get category by ID
// @Tags Admin - Categories
// @Security BearerAuth
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Response{data=models.Category}
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/categories/{id} [get]
func (ctrl *CategoryController) GetCategoryByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	category, err := ctrl.categories.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Category not found", err)
		return
	}
	respondOK(c, http.StatusOK, "Category retrieved", category)
}

// @Summary Create category
// @Tags Admin - Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CategoryRequest true "Category"
// @Success 201 {object} models.Response{data=models.Category}
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/categories [post]
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := ctrl.categories.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to create category", err)
		return
	}
	respondOK(c, http.StatusCreated, "Category created", category)
}

// @Summary Update category
// @Description Moving a category under itself or one of its descendants is rejected
// @Tags Admin - Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body models.CategoryRequest true "Category"
// @Success 200 {object} models.Response{data=models.Category}
// @Router /admin/categories/{id} [patch]
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := ctrl.categories.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "Failed to update category", err)
		return
	}
	respondOK(c, http.StatusOK, "Category updated", category)
}

// @Summary Delete category
// @Tags Admin - Categories
// @Security BearerAuth
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Response
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/categories/{id} [delete]
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.categories.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "Failed to delete category", err)
		return
	}
	respondOK(c, http.StatusOK, "Category deleted", nil)
}
