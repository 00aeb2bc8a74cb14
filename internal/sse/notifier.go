package sse

import (
	"time"

	"github.com/chakrahealing/admin_api/internal/models"
)

// Notifier is the interface services use to emit dashboard events.
type Notifier interface {
	NotifyShippingStatusChanged(order *models.Order, actorID string)
	NotifyBookingUpdated(booking *models.Booking, actorID string)
	NotifyBookingDeleted(bookingID int64, actorID string)
	NotifyReviewStatusChanged(reviewID int64, status, actorID string)
	NotifyPaymentReconciled(bookingID int64, status string)
}

// HubNotifier implements Notifier using the SSE Hub.
type HubNotifier struct {
	hub *Hub
	now func() time.Time
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub, now: time.Now}
}

func (n *HubNotifier) emit(e *Event) {
	if n.hub.ClientCount() == 0 {
		return
	}
	e.Timestamp = n.now()
	n.hub.Broadcast(e)
}

// NotifyShippingStatusChanged broadcasts an order's new normalized shipping status.
func (n *HubNotifier) NotifyShippingStatusChanged(order *models.Order, actorID string) {
	n.emit(&Event{
		Event:     EventOrderShippingChanged,
		Resource:  "order",
		ID:        order.ID,
		DisplayID: order.DisplayID(),
		Status:    string(order.NormalizedShipping()),
		ActorID:   actorID,
	})
}

// NotifyBookingUpdated broadcasts a booking edit.
func (n *HubNotifier) NotifyBookingUpdated(booking *models.Booking, actorID string) {
	n.emit(&Event{
		Event:     EventBookingUpdated,
		Resource:  "booking",
		ID:        booking.ID,
		DisplayID: booking.DisplayID(),
		Status:    booking.Status,
		ActorID:   actorID,
	})
}

// NotifyBookingDeleted broadcasts a booking removal.
func (n *HubNotifier) NotifyBookingDeleted(bookingID int64, actorID string) {
	n.emit(&Event{Event: EventBookingDeleted, Resource: "booking", ID: bookingID, ActorID: actorID})
}

// NotifyReviewStatusChanged broadcasts a moderation decision.
func (n *HubNotifier) NotifyReviewStatusChanged(reviewID int64, status, actorID string) {
	n.emit(&Event{Event: EventReviewStatusChanged, Resource: "review", ID: reviewID, Status: status, ActorID: actorID})
}

// NotifyPaymentReconciled broadcasts a booking payment settled by the reconciler.
func (n *HubNotifier) NotifyPaymentReconciled(bookingID int64, status string) {
	n.emit(&Event{Event: EventPaymentReconciled, Resource: "booking", ID: bookingID, Status: status})
}

// NopNotifier discards every event. It stands in when SSE is not needed.
type NopNotifier struct{}

func (NopNotifier) NotifyShippingStatusChanged(*models.Order, string) {}
func (NopNotifier) NotifyBookingUpdated(*models.Booking, string)      {}
func (NopNotifier) NotifyBookingDeleted(int64, string)                {}
func (NopNotifier) NotifyReviewStatusChanged(int64, string, string)   {}
func (NopNotifier) NotifyPaymentReconciled(int64, string)             {}
