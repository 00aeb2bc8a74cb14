package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chakrahealing/admin_api/internal/middleware"
	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/service"
	"github.com/chakrahealing/admin_api/internal/utils"
)

// BookingHandler handles the bookings page.
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// updateBookingRequest takes the preferred date as YYYY-MM-DD.
type updateBookingRequest struct {
	Status            *string `json:"status"`
	PaymentStatus     *string `json:"paymentStatus"`
	PreferredDate     *string `json:"preferredDate"`
	PreferredSlot     *string `json:"preferredSlot"`
	PreferredLocation *string `json:"preferredLocation"`
}

func (r updateBookingRequest) toUpdate() (models.BookingUpdate, error) {
	upd := models.BookingUpdate{
		Status:            r.Status,
		PaymentStatus:     r.PaymentStatus,
		PreferredSlot:     r.PreferredSlot,
		PreferredLocation: r.PreferredLocation,
	}
	if r.PreferredDate != nil && *r.PreferredDate != "" {
		d, err := time.Parse("2006-01-02", *r.PreferredDate)
		if err != nil {
			return upd, fmt.Errorf("%w: preferredDate must be YYYY-MM-DD", utils.ErrInvalidInput)
		}
		upd.PreferredDate = &d
	}
	return upd, nil
}

// ListBookings handles GET /v1/admin/bookings
func (h *BookingHandler) ListBookings(c *gin.Context) {
	page, err := h.bookingService.List(c.Request.Context(), listQuery(c))
	if err != nil {
		utils.RespondError(c, err, "Failed to retrieve bookings")
		return
	}
	respondPage(c, "Bookings retrieved", page)
}

// GetBooking handles GET /v1/admin/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	booking, err := h.bookingService.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err, "Failed to retrieve booking")
		return
	}
	utils.Success(c, 200, "Booking retrieved", booking)
}

// UpdateBooking handles PUT /v1/admin/bookings/:id
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	upd, err := req.toUpdate()
	if err != nil {
		utils.RespondError(c, err, "Failed to update booking")
		return
	}

	booking, err := h.bookingService.Update(c.Request.Context(), id, upd, middleware.GetUserID(c))
	if err != nil {
		utils.RespondError(c, err, "Failed to update booking")
		return
	}
	utils.Success(c, 200, "Booking updated", booking)
}

// DeleteBooking handles DELETE /v1/admin/bookings/:id
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.bookingService.Delete(c.Request.Context(), id, middleware.GetUserID(c)); err != nil {
		utils.RespondError(c, err, "Failed to delete booking")
		return
	}
	utils.Success(c, 200, "Booking deleted", nil)
}
