package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/models"
	"storefront/services"
)

type VariantController struct {
	variants *services.VariantService
}

func NewVariantController(variants *services.VariantService) *VariantController {
	return &VariantController{variants: variants}
}

// @Summary List product variants
// @Tags Admin - Variants
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response{data=[]models.Variant}
// @Router /admin/products/{id}/variants [get]
func (ctrl *VariantController) GetVariants(c *gin.Context) {
	productID, ok := paramID(c, "id")
	if !ok {
		return
	}
	variants, err := ctrl.variants.List(c.Request.Context(), productID)
	if err != nil {
		respondError(c, "Failed to retrieve variants", err)
		return
	}
	respondOK(c, http.StatusOK, "Variants retrieved", variants)
}

// @Summary Create variant
// @Description attribute_value_ids must pick exactly one value of every variant attribute of the product type
// @Tags Admin - Variants
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body models.VariantRequest true "Variant"
// @Success 201 {object} models.Response{data=models.Variant}
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/products/{id}/variants [post]
func (ctrl *VariantController) CreateVariant(c *gin.Context) {
	productID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	variant, err := ctrl.variants.Create(c.Request.Context(), productID, req)
	if err != nil {
		respondError(c, "Failed to create variant", err)
		return
	}
	respondOK(c, http.StatusCreated, "Variant created", variant)
}

// @Summary Generate variant matrix
// @Description Creates one variant per combination of the selected values, skipping combinations that exist
// @Tags Admin - Variants
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body models.GenerateVariantsRequest true "Selections"
// @Success 201 {object} models.Response{data=models.GenerateVariantsResult}
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products/{id}/variants/generate [post]
func (ctrl *VariantController) GenerateVariants(c *gin.Context) {
	productID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.GenerateVariantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := ctrl.variants.Generate(c.Request.Context(), productID, req)
	if err != nil {
		respondError(c, "Failed to generate variants", err)
		return
	}
	respondOK(c, http.StatusCreated, "Variants generated", result)
}

// @Summary Get variant
// @Tags Admin - Variants
// @Security BearerAuth
// @Produce json
// @Param id path int true "Variant ID"
// @Success 200 {object} models.Response{data=models.Variant}
// @Router /admin/variants/{id} [get]
func (ctrl *VariantController) GetVariant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	variant, err := ctrl.variants.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Variant not found", err)
		return
	}
	respondOK(c, http.StatusOK, "Variant retrieved", variant)
}

// @Summary Update variant
// @Tags Admin - Variants
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Variant ID"
// @Param request body models.UpdateVariantRequest true "Variant"
// @Success 200 {object} models.Response{data=models.Variant}
// @Router /admin/variants/{id} [patch]
func (ctrl *VariantController) UpdateVariant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	variant, err := ctrl.variants.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "Failed to update variant", err)
		return
	}
	respondOK(c, http.StatusOK, "Variant updated", variant)
}

// @Summary Delete variant
// @Tags Admin - Variants
// @Security BearerAuth
// @Produce json
// @Param id path int true "Variant ID"
// @Success 200 {object} models.Response
// @Router /admin/variants/{id} [delete]
func (ctrl *VariantController) DeleteVariant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.variants.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "Failed to delete variant", err)
		return
	}
	respondOK(c, http.StatusOK, "Variant deleted", nil)
}

// @Summary Bulk update variant price and stock
// @Tags Admin - Variants
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.BulkVariantRequest true "Variants"
// @Success 200 {object} models.Response
// @Router /admin/variants/bulk [patch]
func (ctrl *VariantController) BulkUpdateVariants(c *gin.Context) {
	var req models.BulkVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := ctrl.variants.BulkUpdate(c.Request.Context(), req); err != nil {
		respondError(c, "Failed to update variants", err)
		return
	}
	respondOK(c, http.StatusOK, "Variants updated", nil)
}
