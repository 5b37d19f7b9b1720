package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atelier/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// Register handles POST /api/v1/auth/register
func (c *Controller) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	resp, err := c.service.Register(ctx.Request.Context(), &req)
	if err != nil {
		response.Fail(ctx, err)
		return
	}

	response.Created(ctx, "User registered successfully", resp)
}

// Login handles POST /api/v1/auth/login
func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), &req)
	if err != nil {
		response.Fail(ctx, err)
		return
	}

	response.OK(ctx, "Login successful", resp)
}

// Refresh handles POST /api/v1/auth/refresh
func (c *Controller) Refresh(ctx *gin.Context) {
	var req RefreshRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	tokenPair, err := c.service.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Fail(ctx, err)
		return
	}

	response.OK(ctx, "Token refreshed successfully", tokenPair)
}

// Logout handles POST /api/v1/auth/logout
func (c *Controller) Logout(ctx *gin.Context) {
	userID := contextUserID(ctx)

	if err := c.service.SignOut(ctx.Request.Context(), userID); err != nil {
		response.Fail(ctx, err)
		return
	}

	response.OK(ctx, "Logged out successfully", nil)
}

// ChangePassword handles PUT /api/v1/auth/change-password
func (c *Controller) ChangePassword(ctx *gin.Context) {
	userID := contextUserID(ctx)
	if userID == "" {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.service.ChangePassword(ctx.Request.Context(), userID, &req); err != nil {
		response.Fail(ctx, err)
		return
	}

	response.OK(ctx, "Password changed successfully", nil)
}

// ResetPassword handles POST /api/v1/auth/reset-password
func (c *Controller) ResetPassword(ctx *gin.Context) {
	var req PasswordResetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.service.SendPasswordResetEmail(ctx.Request.Context(), req.Email); err != nil {
		response.Fail(ctx, err)
		return
	}

	response.OK(ctx, "If the email is registered, a reset message has been sent", nil)
}

// Me handles GET /api/v1/auth/me
func (c *Controller) Me(ctx *gin.Context) {
	userID := contextUserID(ctx)
	if userID == "" {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	user, err := c.service.GetCurrentUser(ctx.Request.Context(), userID)
	if err != nil {
		response.Fail(ctx, err)
		return
	}

	response.OK(ctx, "User retrieved successfully", user)
}

func contextUserID(ctx *gin.Context) string {
	value, exists := ctx.Get("user_id")
	if !exists {
		return ""
	}
	userID, _ := value.(string)
	return userID
}
