package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/libs"
	"storefront/models"
	"storefront/services"
)

type ProductController struct {
	products      *services.ProductService
	maxUploadSize int64
}

func NewProductController(products *services.ProductService, maxUploadSize int64) *ProductController {
	return &ProductController{products: products, maxUploadSize: maxUploadSize}
}

// @Summary List products
// @Description Active products filtered by category subtree, collection, attributes, price and stock.
// @Description Values of one attribute are OR-ed; different attributes must match the same variant.
// @Tags Products
// @Produce json
// @Param q query string false "Search in name and description"
// @Param category query string false "Category slug, includes descendants"
// @Param collection query string false "Collection slug"
// @Param min_price query int false "Minimum variant price (minor units)"
// @Param max_price query int false "Maximum variant price (minor units)"
// @Param in_stock query bool false "Only products with a variant in stock"
// @Param attr.color query string false "Attribute filter, comma separated value slugs (any attribute slug)"
// @Param sort query string false "Sort order" Enums(newest, price_asc, price_desc, name_asc, name_desc)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(12)
// @Success 200 {object} models.PaginationResponse{data=[]models.ProductListItem}
// @Failure 400 {object} models.ErrorResponse
// @Router /products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	filter, err := parseProductFilter(c)
	if err != nil {
		respondError(c, "Invalid filter", err)
		return
	}

	page, err := ctrl.products.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "Failed to retrieve products", err)
		return
	}
	c.JSON(http.StatusOK, models.PaginationResponse{
		Success: true,
		Message: "Products retrieved",
		Data:    page.Items,
		Meta:    page.Meta,
	})
}

// @Summary Product facets
// @Description Attribute value counts, price range, stock counts and category subtree for the q/category/collection scope
// @Tags Products
// @Produce json
// @Param q query string false "Search in name and description"
// @Param category query string false "Category slug"
// @Param collection query string false "Collection slug"
// @Success 200 {object} models.Response{data=models.Facets}
// @Router /products/facets [get]
func (ctrl *ProductController) GetFacets(c *gin.Context) {
	filter, err := parseProductFilter(c)
	if err != nil {
		respondError(c, "Invalid filter", err)
		return
	}

	facets, err := ctrl.products.Facets(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "Failed to retrieve facets", err)
		return
	}
	respondOK(c, http.StatusOK, "Facets retrieved", facets)
}

// @Summary Get product by slug
// @Tags Products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} models.Response{data=models.ProductDetail}
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{slug} [get]
func (ctrl *ProductController) GetProductBySlug(c *gin.Context) {
	detail, err := ctrl.products.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, "Product not found", err)
		return
	}
	respondOK(c, http.StatusOK, "Product retrieved", detail)
}

// @Summary List products (admin)
// @Description Includes inactive products
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param search query string false "Search by name or slug"
// @Success 200 {object} models.HATEOASResponse
// @Router /admin/products [get]
func (ctrl *ProductController) AdminGetProducts(c *gin.Context) {
	page, limit := getPaginationParams(c, 10)

	products, meta, err := ctrl.products.AdminList(c.Request.Context(), c.Query("search"), page, limit)
	if err != nil {
		respondError(c, "Failed to retrieve products", err)
		return
	}
	c.JSON(http.StatusOK, buildHATEOASResponse(c, "Products retrieved", products, meta))
}

// @Summary Get product by ID
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response{data=models.Product}
// @Router /admin/products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	product, err := ctrl.products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Product not found", err)
		return
	}
	respondOK(c, http.StatusOK, "Product retrieved", product)
}

// @Summary Create product
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateProductRequest true "Product"
// @Success 201 {object} models.Response{data=models.Product}
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := ctrl.products.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to create product", err)
		return
	}
	respondOK(c, http.StatusCreated, "Product created", product)
}

// @Summary Update product
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body models.UpdateProductRequest true "Product"
// @Success 200 {object} models.Response{data=models.Product}
// @Router /admin/products/{id} [patch]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := ctrl.products.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "Failed to update product", err)
		return
	}
	respondOK(c, http.StatusOK, "Product updated", product)
}

// @Summary Delete product
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /admin/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.products.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "Failed to delete product", err)
		return
	}
	respondOK(c, http.StatusOK, "Product deleted", nil)
}

// @Summary Set product attribute values
// @Description Replaces the product-level attribute values; each must belong to the product type's product attributes
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body models.ProductAttributesRequest true "Values"
// @Success 200 {object} models.Response{data=models.Product}
// @Router /admin/products/{id}/attributes [put]
func (ctrl *ProductController) SetProductAttributes(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.ProductAttributesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := ctrl.products.SetAttributeValues(c.Request.Context(), id, req.ValueIDs)
	if err != nil {
		respondError(c, "Failed to set attribute values", err)
		return
	}
	respondOK(c, http.StatusOK, "Attribute values updated", product)
}

// @Summary Upload product image
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product ID"
// @Param image formData file true "Image file"
// @Success 200 {object} models.Response{data=models.Product}
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products/{id}/image [post]
func (ctrl *ProductController) UploadProductImage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Image required"})
		return
	}
	if err := libs.ValidateImage(header, ctrl.maxUploadSize); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: err.Error()})
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, "Failed to read image", err)
		return
	}
	defer file.Close()

	product, err := ctrl.products.UploadImage(c.Request.Context(), id, file, header.Filename)
	if err != nil {
		if errors.Is(err, libs.ErrImageNotStored) {
			c.JSON(http.StatusBadGateway, models.ErrorResponse{Success: false, Message: "Image upload failed", Error: err.Error()})
			return
		}
		respondError(c, "Failed to upload image", err)
		return
	}
	respondOK(c, http.StatusOK, "Image uploaded", product)
}
