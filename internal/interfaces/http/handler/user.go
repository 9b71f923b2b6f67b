package handler

import (
	appidentity "github.com/autoparts/backend/internal/application/identity"
	"github.com/autoparts/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// UserHandler exposes the admin account endpoints
type UserHandler struct {
	BaseHandler
	users *appidentity.UserService
}

// NewUserHandler creates a user handler
func NewUserHandler(users *appidentity.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /admin/users
func (h *UserHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}
	req.Normalize()

	users, total, err := h.users.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, users, total, req.Page, req.PageSize)
}

// ChangeRole handles PUT /admin/users/:id/role
func (h *UserHandler) ChangeRole(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid user id")
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.users.ChangeRole(c.Request.Context(), id, req.Role)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, user)
}

// Delete handles DELETE /admin/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid user id")
		return
	}
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.users.Delete(c.Request.Context(), id, actorID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
