package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/chakrahealing/admin_api/internal/service"
	"github.com/chakrahealing/admin_api/internal/utils"
)

// ContactHandler handles contact form submissions.
type ContactHandler struct {
	contactService *service.ContactService
}

// NewContactHandler constructs a ContactHandler.
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ListContacts handles GET /v1/admin/contacts
func (h *ContactHandler) ListContacts(c *gin.Context) {
	page, err := h.contactService.List(c.Request.Context(), listQuery(c))
	if err != nil {
		utils.RespondError(c, err, "Failed to retrieve contacts")
		return
	}
	respondPage(c, "Contacts retrieved", page)
}

// GetContact handles GET /v1/admin/contacts/:id
func (h *ContactHandler) GetContact(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	contact, err := h.contactService.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err, "Failed to retrieve contact")
		return
	}
	utils.Success(c, 200, "Contact retrieved", contact)
}

// DeleteContact handles DELETE /v1/admin/contacts/:id
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.contactService.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err, "Failed to delete contact")
		return
	}
	utils.Success(c, 200, "Contact deleted", nil)
}
