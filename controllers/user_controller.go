package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/models"
	"storefront/services"
)

type UserController struct {
	userService *services.UserService
}

func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// @Summary List users
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param search query string false "Search by email or name"
// @Success 200 {object} models.HATEOASResponse
// @Router /admin/users [get]
func (ctrl *UserController) GetAllUsers(c *gin.Context) {
	page, limit := getPaginationParams(c, 10)

	users, meta, err := ctrl.userService.List(c.Request.Context(), c.Query("search"), page, limit)
	if err != nil {
		respondError(c, "Failed to retrieve users", err)
		return
	}
	c.JSON(http.StatusOK, buildHATEOASResponse(c, "Users retrieved successfully", users, meta))
}

// @Summary Get user
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.Response{data=models.User}
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/users/{id} [get]
func (ctrl *UserController) GetUserByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user, err := ctrl.userService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "User not found", err)
		return
	}
	respondOK(c, http.StatusOK, "User retrieved successfully", user)
}

// @Summary Change a user's role
// @Tags Admin - Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body models.UpdateRoleRequest true "Role"
// @Success 200 {object} models.Response{data=models.User}
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/users/{id}/role [patch]
func (ctrl *UserController) UpdateUserRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actorID, _ := currentUserID(c)
	user, err := ctrl.userService.UpdateRole(c.Request.Context(), actorID, id, req.Role)
	if err != nil {
		respondError(c, "Failed to update user role", err)
		return
	}
	respondOK(c, http.StatusOK, "User role updated successfully", user)
}

// @Summary Delete user
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.Response
// @Router /admin/users/{id} [delete]
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	actorID, _ := currentUserID(c)
	if err := ctrl.userService.Delete(c.Request.Context(), actorID, id); err != nil {
		respondError(c, "Failed to delete user", err)
		return
	}
	respondOK(c, http.StatusOK, "User deleted successfully", nil)
}
