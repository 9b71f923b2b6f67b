package handler

import (
	appidentity "github.com/autoparts/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// AuthHandler exposes registration, login and the password reset flow
type AuthHandler struct {
	BaseHandler
	auth *appidentity.AuthService
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(auth *appidentity.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req appidentity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ForgotPassword handles POST /auth/forgot-password.
// The answer is identical whether or not the email exists.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req appidentity.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.auth.ForgotPassword(c.Request.Context(), req); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "If the account exists, a reset code has been issued"})
}

// VerifyResetCode handles POST /auth/verify-reset-code
func (h *AuthHandler) VerifyResetCode(c *gin.Context) {
	var req appidentity.VerifyResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.auth.VerifyResetCode(c.Request.Context(), req); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"valid": true})
}

// ResetPassword handles POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req appidentity.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.auth.ResetPassword(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
