package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/models"
	"storefront/services"
)

type AttributeController struct {
	attributes *services.AttributeService
}

func NewAttributeController(attributes *services.AttributeService) *AttributeController {
	return &AttributeController{attributes: attributes}
}

// @Summary List attributes
// @Tags Admin - Attributes
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Attribute}
// @Router /admin/attributes [get]
func (ctrl *AttributeController) GetAttributes(c *gin.Context) {
	attrs, err := ctrl.attributes.List(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to retrieve attributes", err)
		return
	}
	respondOK(c, http.StatusOK, "Attributes retrieved", attrs)
}

// @Summary Get attribute
// @Tags Admin - Attributes
// @Security BearerAuth
// @Produce json
// @Param id path int true "Attribute ID"
// @Success 200 {object} models.Response{data=models.Attribute}
// @Router /admin/attributes/{id} [get]
func (ctrl *AttributeController) GetAttribute(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	attr, err := ctrl.attributes.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Attribute not found", err)
		return
	}
	respondOK(c, http.StatusOK, "Attribute retrieved", attr)
}

// @Summary Create attribute
// @Tags Admin - Attributes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AttributeRequest true "Attribute"
// @Success 201 {object} models.Response{data=models.Attribute}
// @Router /admin/attributes [post]
func (ctrl *AttributeController) CreateAttribute(c *gin.Context) {
	var req models.AttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	attr, err := ctrl.attributes.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to create attribute", err)
		return
	}
	respondOK(c, http.StatusCreated, "Attribute created", attr)
}

// @Summary Update attribute
// @Tags Admin - Attributes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Attribute ID"
// @Param request body models.AttributeRequest true "Attribute"
// @Success 200 {object} models.Response{data=models.Attribute}
// @Router /admin/attributes/{id} [patch]
func (ctrl *AttributeController) UpdateAttribute(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.AttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	attr, err := ctrl.attributes.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "Failed to update attribute", err)
		return
	}
	respondOK(c, http.StatusOK, "Attribute updated", attr)
}

// @Summary Delete attribute
// @Description Rejected while a product type uses the attribute
// @Tags Admin - Attributes
// @Security BearerAuth
// @Produce json
// @Param id path int true "Attribute ID"
// @Success 200 {object} models.Response
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/attributes/{id} [delete]
func (ctrl *AttributeController) DeleteAttribute(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.attributes.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "Failed to delete attribute", err)
		return
	}
	respondOK(c, http.StatusOK, "Attribute deleted", nil)
}

// @Summary Add attribute value
// @Tags Admin - Attributes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Attribute ID"
// @Param request body models.AttributeValueRequest true "Value"
// @Success 201 {object} models.Response{data=models.AttributeValue}
// @Router /admin/attributes/{id}/values [post]
func (ctrl *AttributeController) AddValue(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.AttributeValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	value, err := ctrl.attributes.AddValue(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "Failed to add value", err)
		return
	}
	respondOK(c, http.StatusCreated, "Value added", value)
}

// @Summary Update attribute value
// @Tags Admin - Attributes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Attribute ID"
// @Param value_id path int true "Value ID"
// @Param request body models.AttributeValueRequest true "Value"
// @Success 200 {object} models.Response{data=models.AttributeValue}
// @Router /admin/attributes/{id}/values/{value_id} [patch]
func (ctrl *AttributeController) UpdateValue(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	valueID, ok := paramID(c, "value_id")
	if !ok {
		return
	}
	var req models.AttributeValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	value, err := ctrl.attributes.UpdateValue(c.Request.Context(), id, valueID, req)
	if err != nil {
		respondError(c, "Failed to update value", err)
		return
	}
	respondOK(c, http.StatusOK, "Value updated", value)
}

// @Summary Delete attribute value
// @Tags Admin - Attributes
// @Security BearerAuth
// @Produce json
// @Param id path int true "Attribute ID"
// @Param value_id path int true "Value ID"
// @Success 200 {object} models.Response
// @Router /admin/attributes/{id}/values/{value_id} [delete]
func (ctrl *AttributeController) DeleteValue(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	valueID, ok := paramID(c, "value_id")
	if !ok {
		return
	}
	if err := ctrl.attributes.DeleteValue(c.Request.Context(), id, valueID); err != nil {
		respondError(c, "Failed to delete value", err)
		return
	}
	respondOK(c, http.StatusOK, "Value deleted", nil)
}
