package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/models"
	"storefront/services"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// @Summary Checkout
// @Description Places an order from the current cart. Stock is reserved in the same transaction.
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body models.CheckoutRequest true "Checkout"
// @Success 201 {object} models.Response{data=models.Order}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /checkout [post]
func (ctrl *OrderController) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	order, err := ctrl.orders.Checkout(c.Request.Context(), cartOwner(c), req)
	if err != nil {
		respondError(c, "Checkout failed", err)
		return
	}
	respondOK(c, http.StatusCreated, "Order placed", order)
}

// @Summary Look up a guest order
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body models.OrderLookupRequest true "Order number and email"
// @Success 200 {object} models.Response{data=models.Order}
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/lookup [post]
func (ctrl *OrderController) LookupOrder(c *gin.Context) {
	var req models.OrderLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	order, err := ctrl.orders.Lookup(c.Request.Context(), req.OrderNumber, req.Email)
	if err != nil {
		respondError(c, "Order not found", err)
		return
	}
	respondOK(c, http.StatusOK, "Order retrieved", order)
}

// @Summary My orders
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.PaginationResponse{data=[]models.Order}
// @Router /orders [get]
func (ctrl *OrderController) GetMyOrders(c *gin.Context) {
	page, limit := getPaginationParams(c, 10)
	userID, _ := currentUserID(c)

	orders, meta, err := ctrl.orders.ListMine(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(c, "Failed to retrieve orders", err)
		return
	}
	c.JSON(http.StatusOK, models.PaginationResponse{
		Success: true,
		Message: "Orders retrieved",
		Data:    orders,
		Meta:    meta,
	})
}

// @Summary Get my order
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param number path string true "Order number"
// @Success 200 {object} models.Response{data=models.Order}
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{number} [get]
func (ctrl *OrderController) GetMyOrder(c *gin.Context) {
	userID, _ := currentUserID(c)
	order, err := ctrl.orders.GetMine(c.Request.Context(), userID, c.Param("number"))
	if err != nil {
		respondError(c, "Order not found", err)
		return
	}
	respondOK(c, http.StatusOK, "Order retrieved", order)
}

// @Summary Get all orders
// @Description Get all orders with pagination (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param status query string false "Filter by status"
// @Param search query string false "Search by order number or email"
// @Success 200 {object} models.HATEOASResponse
// @Router /admin/orders [get]
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	page, limit := getPaginationParams(c, 10)

	status := c.Query("status")
	if strings.EqualFold(status, "all") {
		status = ""
	}

	orders, meta, err := ctrl.orders.AdminList(c.Request.Context(), status, c.Query("search"), page, limit)
	if err != nil {
		respondError(c, "Failed to retrieve orders", err)
		return
	}
	c.JSON(http.StatusOK, buildHATEOASResponse(c, "Orders retrieved successfully", orders, meta))
}

// @Summary Get order by ID
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response{data=models.Order}
// @Router /admin/orders/{id} [get]
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := ctrl.orders.AdminGet(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Order not found", err)
		return
	}
	respondOK(c, http.StatusOK, "Order retrieved", order)
}

// @Summary Update order status
// @Description pending -> paid|cancelled, paid -> shipped|cancelled, shipped -> delivered. Cancelling restocks.
// @Tags Admin - Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body models.UpdateOrderStatusRequest true "Status"
// @Success 200 {object} models.Response{data=models.Order}
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/orders/{id}/status [patch]
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	order, err := ctrl.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, "Failed to update order status", err)
		return
	}
	respondOK(c, http.StatusOK, "Order status updated", order)
}

// @Summary Dashboard
// @Tags Admin - Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.DashboardStats}
// @Router /admin/dashboard [get]
func (ctrl *OrderController) GetDashboard(c *gin.Context) {
	stats, err := ctrl.orders.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to retrieve dashboard", err)
		return
	}
	respondOK(c, http.StatusOK, "Dashboard retrieved", stats)
}
