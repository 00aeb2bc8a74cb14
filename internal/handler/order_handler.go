package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/chakrahealing/admin_api/internal/middleware"
	"github.com/chakrahealing/admin_api/internal/service"
	"github.com/chakrahealing/admin_api/internal/utils"
)

// OrderHandler handles the orders page.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// ListOrders handles GET /v1/admin/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, err := h.orderService.List(c.Request.Context(), listQuery(c))
	if err != nil {
		utils.RespondError(c, err, "Failed to retrieve orders")
		return
	}
	respondPage(c, "Orders retrieved", page)
}

// GetOrder handles GET /v1/admin/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err, "Failed to retrieve order")
		return
	}
	utils.Success(c, 200, "Order retrieved", order)
}

// UpdateShippingStatus handles PUT /v1/admin/orders/:id/shipping-status
func (h *OrderHandler) UpdateShippingStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	order, err := h.orderService.UpdateShippingStatus(c.Request.Context(), id, req.Status, middleware.GetUserID(c))
	if err != nil {
		utils.RespondError(c, err, "Failed to update shipping status")
		return
	}
	utils.Success(c, 200, "Shipping status updated", order)
}
