package handler

import (
	apporder "github.com/autoparts/backend/internal/application/order"
	domainorder "github.com/autoparts/backend/internal/domain/order"
	"github.com/autoparts/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// OrderHandler exposes checkout and order management endpoints
type OrderHandler struct {
	BaseHandler
	checkout *apporder.CheckoutService
	orders   *apporder.Service
}

// NewOrderHandler creates an order handler
func NewOrderHandler(checkout *apporder.CheckoutService, orders *apporder.Service) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders}
}

// Place handles POST /orders
func (h *OrderHandler) Place(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req apporder.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.checkout.PlaceOrder(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, order)
}

// ListMine handles GET /orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := h.orders.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, orders)
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order id")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	role, err := getRole(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), id, userID, role)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// ConfirmReceipt handles POST /orders/:id/confirm-receipt
func (h *OrderHandler) ConfirmReceipt(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order id")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	order, err := h.orders.ConfirmReceipt(c.Request.Context(), id, userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// ListAll handles GET /admin/orders
func (h *OrderHandler) ListAll(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}
	req.Normalize()

	filter := domainorder.ListFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if raw := c.Query("status"); raw != "" {
		status, ok := domainorder.ParseStatus(raw)
		if !ok {
			h.BadRequest(c, "Unknown order status "+raw)
			return
		}
		filter.Status = status
	}

	orders, total, err := h.orders.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, req.Page, req.PageSize)
}

// SetStatus handles PUT /admin/orders/:id/status
func (h *OrderHandler) SetStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order id")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orders.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}
