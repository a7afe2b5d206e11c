package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/models"
	"storefront/services"
)

// CartController serves the cart of the signed-in user, or of the guest
// session cookie when no token is sent.
type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// @Summary Get cart
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response{data=models.Cart}
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	cart, err := ctrl.carts.Get(c.Request.Context(), cartOwner(c))
	if err != nil {
		respondError(c, "Failed to retrieve cart", err)
		return
	}
	respondOK(c, http.StatusOK, "Cart retrieved", cart)
}

// @Summary Add item to cart
// @Description Quantity is added to an existing line of the same variant; the total may not exceed stock
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.AddCartItemRequest true "Item"
// @Success 200 {object} models.Response{data=models.Cart}
// @Failure 409 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	cart, err := ctrl.carts.AddItem(c.Request.Context(), cartOwner(c), req)
	if err != nil {
		respondError(c, "Failed to add item", err)
		return
	}
	respondOK(c, http.StatusOK, "Item added to cart", cart)
}

// @Summary Update cart item quantity
// @Description Quantity 0 removes the line
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path int true "Cart item ID"
// @Param request body models.UpdateCartItemRequest true "Quantity"
// @Success 200 {object} models.Response{data=models.Cart}
// @Router /cart/items/{id} [patch]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	cart, err := ctrl.carts.UpdateItem(c.Request.Context(), cartOwner(c), id, req.Quantity)
	if err != nil {
		respondError(c, "Failed to update item", err)
		return
	}
	respondOK(c, http.StatusOK, "Cart updated", cart)
}

// @Summary Remove cart item
// @Tags Cart
// @Produce json
// @Param id path int true "Cart item ID"
// @Success 200 {object} models.Response{data=models.Cart}
// @Router /cart/items/{id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cart, err := ctrl.carts.RemoveItem(c.Request.Context(), cartOwner(c), id)
	if err != nil {
		respondError(c, "Failed to remove item", err)
		return
	}
	respondOK(c, http.StatusOK, "Item removed", cart)
}

// @Summary Clear cart
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response{data=models.Cart}
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	cart, err := ctrl.carts.Clear(c.Request.Context(), cartOwner(c))
	if err != nil {
		respondError(c, "Failed to clear cart", err)
		return
	}
	respondOK(c, http.StatusOK, "Cart cleared", cart)
}
