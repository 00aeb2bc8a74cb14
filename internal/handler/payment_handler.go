package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/service"
	"github.com/chakrahealing/admin_api/internal/utils"
)

// PaymentHandler handles the payments page (paid orders).
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// ListPayments handles GET /v1/admin/payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	page, err := h.paymentService.List(c.Request.Context(), listQuery(c))
	if err != nil {
		utils.RespondError(c, err, "Failed to retrieve payments")
		return
	}
	respondPage(c, "Payments retrieved", page)
}

// UpdatePayment handles PUT /v1/admin/payments/:id
func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.PaymentUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	order, err := h.paymentService.Update(c.Request.Context(), id, req)
	if err != nil {
		utils.RespondError(c, err, "Failed to update payment")
		return
	}
	utils.Success(c, 200, "Payment updated", order)
}

// DeletePayment handles DELETE /v1/admin/payments/:id
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.paymentService.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err, "Failed to delete order")
		return
	}
	utils.Success(c, 200, "Order deleted", nil)
}
