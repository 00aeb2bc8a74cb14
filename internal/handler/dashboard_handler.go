package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/chakrahealing/admin_api/internal/service"
	"github.com/chakrahealing/admin_api/internal/utils"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats handles GET /v1/admin/dashboard
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err, "Failed to load dashboard")
		return
	}
	utils.Success(c, 200, "Dashboard retrieved", stats)
}
