package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/chakrahealing/admin_api/internal/middleware"
	"github.com/chakrahealing/admin_api/internal/service"
	"github.com/chakrahealing/admin_api/internal/utils"
)

type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /v1/admin/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err, "Failed to sign in")
		return
	}

	utils.Success(c, 200, "Login successful", result)
}

// Logout handles POST /v1/admin/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		utils.Error(c, 401, "UNAUTHORIZED", "Missing token")
		return
	}
	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		utils.RespondError(c, err, "Failed to sign out")
		return
	}
	utils.Success(c, 200, "Logged out", nil)
}

// Me handles GET /v1/admin/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		utils.Error(c, 401, "UNAUTHORIZED", "Missing token")
		return
	}
	me, err := h.authService.Me(c.Request.Context(), claims)
	if err != nil {
		utils.RespondError(c, err, "Failed to load user")
		return
	}
	utils.Success(c, 200, "User retrieved", me)
}

// ForgotPassword handles POST /v1/admin/auth/forgot-password. The answer is
// the same whether or not the email exists.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	_ = h.authService.ForgotPassword(c.Request.Context(), req.Email)
	utils.Success(c, 200, "If the email is registered, a reset link has been sent", nil)
}

// UpdatePassword handles POST /v1/admin/auth/update-password
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req struct {
		Token           string `json:"token" binding:"required"`
		Password        string `json:"password" binding:"required"`
		ConfirmPassword string `json:"confirmPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if err := h.authService.UpdatePassword(c.Request.Context(), req.Token, req.Password, req.ConfirmPassword); err != nil {
		utils.RespondError(c, err, "Failed to update password")
		return
	}
	utils.Success(c, 200, "Password updated", nil)
}
