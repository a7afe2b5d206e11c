package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/models"
	"storefront/services"
)

type ProductTypeController struct {
	types *services.ProductTypeService
}

func NewProductTypeController(types *services.ProductTypeService) *ProductTypeController {
	return &ProductTypeController{types: types}
}

// @Summary List product types
// @Tags Admin - Product Types
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=[]models.ProductType}
// @Router /admin/product-types [get]
func (ctrl *ProductTypeController) GetProductTypes(c *gin.Context) {
	types, err := ctrl.types.List(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to retrieve product types", err)
		return
	}
	respondOK(c, http.StatusOK, "Product types retrieved", types)
}

// @Summary Get product type
// @Tags Admin - Product Types
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product type ID"
// @Success 200 {object} models.Response{data=models.ProductType}
// @Router /admin/product-types/{id} [get]
func (ctrl *ProductTypeController) GetProductType(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	pt, err := ctrl.types.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Product type not found", err)
		return
	}
	respondOK(c, http.StatusOK, "Product type retrieved", pt)
}

// @Summary Create product type
// @Description An attribute may be a product attribute or a variant attribute of a type, not both
// @Tags Admin - Product Types
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ProductTypeRequest true "Product type"
// @Success 201 {object} models.Response{data=models.ProductType}
// @Router /admin/product-types [post]
func (ctrl *ProductTypeController) CreateProductType(c *gin.Context) {
	var req models.ProductTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	pt, err := ctrl.types.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to create product type", err)
		return
	}
	respondOK(c, http.StatusCreated, "Product type created", pt)
}

// @Summary Update product type
// @Tags Admin - Product Types
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product type ID"
// @Param request body models.ProductTypeRequest true "Product type"
// @Success 200 {object} models.Response{data=models.ProductType}
// @Router /admin/product-types/{id} [patch]
func (ctrl *ProductTypeController) UpdateProductType(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.ProductTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	pt, err := ctrl.types.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "Failed to update product type", err)
		return
	}
	respondOK(c, http.StatusOK, "Product type updated", pt)
}

// @Summary Delete product type
// @Tags Admin - Product Types
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product type ID"
// @Success 200 {object} models.Response
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/product-types/{id} [delete]
func (ctrl *ProductTypeController) DeleteProductType(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.types.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "Failed to delete product type", err)
		return
	}
	respondOK(c, http.StatusOK, "Product type deleted", nil)
}
