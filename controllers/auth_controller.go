package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/models"
	"storefront/services"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register godoc
// @Summary Register new user
// @Description Register a new customer account. A guest cart is carried over.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Register Request"
// @Success 201 {object} models.Response{data=models.LoginResponse}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := ctrl.auth.Register(c.Request.Context(), req, guestToken(c))
	if err != nil {
		respondError(c, "Registration failed", err)
		return
	}
	respondOK(c, http.StatusCreated, "Registration successful", resp)
}

// Login godoc
// @Summary User login
// @Description Login with email and password. A guest cart is merged into the user's cart.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} models.Response{data=models.LoginResponse}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := ctrl.auth.Login(c.Request.Context(), req, guestToken(c))
	if err != nil {
		respondError(c, "Invalid credentials", err)
		return
	}
	respondOK(c, http.StatusOK, "Login successful", resp)
}

// GetProfile godoc
// @Summary Get user profile
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.User}
// @Router /auth/profile [get]
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	userID, _ := currentUserID(c)
	user, err := ctrl.auth.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "Failed to retrieve profile", err)
		return
	}
	respondOK(c, http.StatusOK, "Profile retrieved", user)
}

// UpdateProfile godoc
// @Summary Update profile
// @Tags Authentication
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Update Request"
// @Success 200 {object} models.Response{data=models.User}
// @Router /auth/profile [patch]
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, _ := currentUserID(c)
	user, err := ctrl.auth.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, "Failed to update profile", err)
		return
	}
	respondOK(c, http.StatusOK, "Profile updated", user)
}

// ChangePassword godoc
// @Summary Change password
// @Tags Authentication
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ChangePasswordRequest true "Password Request"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/change-password [post]
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, _ := currentUserID(c)
	if err := ctrl.auth.ChangePassword(c.Request.Context(), userID, req); err != nil {
		respondError(c, "Failed to change password", err)
		return
	}
	respondOK(c, http.StatusOK, "Password changed", nil)
}
