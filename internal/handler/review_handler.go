package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/chakrahealing/admin_api/internal/middleware"
	"github.com/chakrahealing/admin_api/internal/service"
	"github.com/chakrahealing/admin_api/internal/utils"
)

// ReviewHandler handles review moderation.
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler constructs a ReviewHandler.
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ListReviews handles GET /v1/admin/reviews
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	page, err := h.reviewService.List(c.Request.Context(), listQuery(c))
	if err != nil {
		utils.RespondError(c, err, "Failed to retrieve reviews")
		return
	}
	respondPage(c, "Reviews retrieved", page)
}

// UpdateReviewStatus handles PUT /v1/admin/reviews/:id/status
func (h *ReviewHandler) UpdateReviewStatus(c *gin.Context) {
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
	if err := h.reviewService.UpdateStatus(c.Request.Context(), id, req.Status, middleware.GetUserID(c)); err != nil {
		utils.RespondError(c, err, "Failed to update review")
		return
	}
	utils.Success(c, 200, "Review updated", gin.H{"id": id, "status": req.Status})
}

// DeleteReview handles DELETE /v1/admin/reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.reviewService.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err, "Failed to delete review")
		return
	}
	utils.Success(c, 200, "Review deleted", nil)
}
