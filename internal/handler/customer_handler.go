package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/chakrahealing/admin_api/internal/service"
	"github.com/chakrahealing/admin_api/internal/utils"
)

// CustomerHandler handles the customers page.
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler constructs a CustomerHandler.
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// ListCustomers handles GET /v1/admin/customers
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	page, err := h.customerService.List(c.Request.Context(), listQuery(c))
	if err != nil {
		utils.RespondError(c, err, "Failed to retrieve customers")
		return
	}
	respondPage(c, "Customers retrieved", page)
}

// UpdateCustomer handles PUT /v1/admin/customers/:id
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	req, ok := bindProfileUpdate(c)
	if !ok {
		return
	}
	if err := h.customerService.UpdateProfile(c.Request.Context(), c.Param("id"), req); err != nil {
		utils.RespondError(c, err, "Failed to update customer")
		return
	}
	utils.Success(c, 200, "Customer updated", nil)
}

// DeleteCustomer handles DELETE /v1/admin/customers/:id
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	if err := h.customerService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err, "Failed to delete customer")
		return
	}
	utils.Success(c, 200, "Customer deleted", nil)
}
