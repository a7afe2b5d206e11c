package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/models"
	"storefront/services"
)

type CollectionController struct {
	collections *services.CollectionService
}

func NewCollectionController(collections *services.CollectionService) *CollectionController {
	return &CollectionController{collections: collections}
}

// @Summary List published collections
// @Tags Collections
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Collection}
// @Router /collections [get]
func (ctrl *CollectionController) GetCollections(c *gin.Context) {
	collections, err := ctrl.collections.ListPublished(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to retrieve collections", err)
		return
	}
	respondOK(c, http.StatusOK, "Collections retrieved", collections)
}

// @Summary Get collection by slug
// @Description Published collection with a filtered page of its products; accepts the product listing filters
// @Tags Collections
// @Produce json
// @Param slug path string true "Collection slug"
// @Success 200 {object} models.Response{data=models.CollectionDetail}
// @Failure 404 {object} models.ErrorResponse
// @Router /collections/{slug} [get]
func (ctrl *CollectionController) GetCollectionBySlug(c *gin.Context) {
	filter, err := parseProductFilter(c)
	if err != nil {
		respondError(c, "Invalid filter", err)
		return
	}
	detail, err := ctrl.collections.GetBySlug(c.Request.Context(), c.Param("slug"), filter)
	if err != nil {
		respondError(c, "Collection not found", err)
		return
	}
	respondOK(c, http.StatusOK, "Collection retrieved", detail)
}

// @Summary List all collections
// @Description Includes unpublished collections
// @Tags Admin - Collections
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Collection}
// @Router /admin/collections [get]
func (ctrl *CollectionController) AdminGetCollections(c *gin.Context) {
	collections, err := ctrl.collections.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to retrieve collections", err)
		return
	}
	respondOK(c, http.StatusOK, "Collections retrieved", collections)
}

// @Summary Get collection by ID
// @Tags Admin - Collections
// @Security BearerAuth
// @Produce json
// @Param id path int true "Collection ID"
// @Success 200 {object} models.Response{data=models.Collection}
// @Router /admin/collections/{id} [get]
func (ctrl *CollectionController) GetCollectionByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	collection, err := ctrl.collections.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Collection not found", err)
		return
	}
	respondOK(c, http.StatusOK, "Collection retrieved", collection)
}

// @Summary Create collection
// @Tags Admin - Collections
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CollectionRequest true "Collection"
// @Success 201 {object} models.Response{data=models.Collection}
// @Router /admin/collections [post]
func (ctrl *CollectionController) CreateCollection(c *gin.Context) {
	var req models.CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	collection, err := ctrl.collections.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to create collection", err)
		return
	}
	respondOK(c, http.StatusCreated, "Collection created", collection)
}

// @Summary Update collection
// @Tags Admin - Collections
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Collection ID"
// @Param request body models.CollectionRequest true "Collection"
// @Success 200 {object} models.Response{data=models.Collection}
// @Router /admin/collections/{id} [patch]
func (ctrl *CollectionController) UpdateCollection(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	collection, err := ctrl.collections.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "Failed to update collection", err)
		return
	}
	respondOK(c, http.StatusOK, "Collection updated", collection)
}

// @Summary Delete collection
// @Tags Admin - Collections
// @Security BearerAuth
// @Produce json
// @Param id path int true "Collection ID"
// @Success 200 {object} models.Response
// @Router /admin/collections/{id} [delete]
func (ctrl *CollectionController) DeleteCollection(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.collections.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "Failed to delete collection", err)
		return
	}
	respondOK(c, http.StatusOK, "Collection deleted", nil)
}

// @Summary Add products to collection
// @Tags Admin - Collections
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Collection ID"
// @Param request body models.CollectionProductsRequest true "Products"
// @Success 200 {object} models.Response{data=models.Collection}
// @Router /admin/collections/{id}/products [post]
func (ctrl *CollectionController) AddProducts(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.CollectionProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	collection, err := ctrl.collections.AddProducts(c.Request.Context(), id, req.ProductIDs)
	if err != nil {
		respondError(c, "Failed to add products", err)
		return
	}
	respondOK(c, http.StatusOK, "Products added", collection)
}

// @Summary Remove product from collection
// @Tags Admin - Collections
// @Security BearerAuth
// @Produce json
// @Param id path int true "Collection ID"
// @Param product_id path int true "Product ID"
// @Success 200 {object} models.Response{data=models.Collection}
// @Router /admin/collections/{id}/products/{product_id} [delete]
func (ctrl *CollectionController) RemoveProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	productID, ok := paramID(c, "product_id")
	if !ok {
		return
	}
	collection, err := ctrl.collections.RemoveProduct(c.Request.Context(), id, productID)
	if err != nil {
		respondError(c, "Failed to remove product", err)
		return
	}
	respondOK(c, http.StatusOK, "Product removed", collection)
}
