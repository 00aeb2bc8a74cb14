package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/chakrahealing/admin_api/internal/service"
	"github.com/chakrahealing/admin_api/internal/utils"
)

// ServiceHandler handles the services (catalog) page.
type ServiceHandler struct {
	catalogService *service.CatalogService
}

// NewServiceHandler constructs a ServiceHandler.
func NewServiceHandler(catalogService *service.CatalogService) *ServiceHandler {
	return &ServiceHandler{catalogService: catalogService}
}

// ListServices handles GET /v1/admin/services
func (h *ServiceHandler) ListServices(c *gin.Context) {
	page, err := h.catalogService.List(c.Request.Context(), listQuery(c))
	if err != nil {
		utils.RespondError(c, err, "Failed to retrieve services")
		return
	}
	respondPage(c, "Services retrieved", page)
}

// GetService handles GET /v1/admin/services/:id
func (h *ServiceHandler) GetService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	svc, err := h.catalogService.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err, "Failed to retrieve service")
		return
	}
	utils.Success(c, 200, "Service retrieved", svc)
}

// CreateService handles POST /v1/admin/services (multipart: data + image)
func (h *ServiceHandler) CreateService(c *gin.Context) {
	h.save(c, 0, 201, "Service created")
}

// UpdateService handles PUT /v1/admin/services/:id (multipart: data + image)
func (h *ServiceHandler) UpdateService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.save(c, id, 200, "Service updated")
}

func (h *ServiceHandler) save(c *gin.Context, id int64, status int, message string) {
	var in service.ServiceInput
	if err := bindForm(c, &in); err != nil {
		invalidRequest(c, err)
		return
	}
	in.ID = id

	image, closeFile, err := formFile(c, "image")
	if err != nil {
		invalidRequest(c, err)
		return
	}
	defer closeFile()

	svc, err := h.catalogService.Save(c.Request.Context(), in, image)
	if err != nil {
		utils.RespondError(c, err, "Failed to save service")
		return
	}
	utils.Success(c, status, message, svc)
}

// DeleteService handles DELETE /v1/admin/services/:id
func (h *ServiceHandler) DeleteService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err, "Failed to delete service")
		return
	}
	utils.Success(c, 200, "Service deleted", nil)
}
