package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Booking statuses.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Payment statuses shared by bookings, booking payments and orders.
const (
	PaymentUnpaid   = "unpaid"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
	PaymentFailed   = "failed"
	PaymentCreated  = "created"
	PaymentPending  = "pending"
)

// BookingItem is a service line on a booking.
type BookingItem struct {
	ID             int64     `db:"id" json:"id"`
	BookingID      int64     `db:"booking_id" json:"bookingId"`
	ServiceID      *int64    `db:"service_id" json:"serviceId,omitempty"`
	TitleSnapshot  string    `db:"title_snapshot" json:"titleSnapshot"`
	UnitPricePaise int64     `db:"unit_price_paise" json:"unitPricePaise"`
	Quantity       int       `db:"quantity" json:"quantity"`
	ServiceTitle   *string   `db:"service_title" json:"serviceTitle,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// BookingPayment is one payment attempt against a booking.
type BookingPayment struct {
	ID                int64     `db:"id" json:"id"`
	BookingID         int64     `db:"booking_id" json:"bookingId"`
	AmountPaise       int64     `db:"amount_paise" json:"amountPaise"`
	Currency          string    `db:"currency" json:"currency"`
	Provider          string    `db:"provider" json:"provider"`
	RazorpayOrderID   *string   `db:"razorpay_order_id" json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID *string   `db:"razorpay_payment_id" json:"razorpayPaymentId,omitempty"`
	Status            string    `db:"status" json:"status"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt"`
}

// BookingCancellationRequest records a booking cancellation.
type BookingCancellationRequest struct {
	ID        int64     `db:"id" json:"id"`
	BookingID int64     `db:"booking_id" json:"bookingId"`
	UserID    *string   `db:"user_id" json:"userId,omitempty"`
	Reason    *string   `db:"reason" json:"reason,omitempty"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Booking is a service appointment with its line items, payments and cancellations.
type Booking struct {
	ID                int64      `db:"id" json:"id"`
	UserID            *string    `db:"user_id" json:"userId,omitempty"`
	ContactName       string     `db:"contact_name" json:"contactName"`
	ContactEmail      *string    `db:"contact_email" json:"contactEmail,omitempty"`
	ContactPhone      *string    `db:"contact_phone" json:"contactPhone,omitempty"`
	Address           JSONB      `db:"address" json:"address"`
	PreferredDate     *time.Time `db:"preferred_date" json:"preferredDate,omitempty"`
	PreferredSlot     *string    `db:"preferred_slot" json:"preferredSlot,omitempty"`
	Timezone          *string    `db:"timezone" json:"timezone,omitempty"`
	PreferredLocation *string    `db:"preferred_location" json:"preferredLocation,omitempty"`
	Notes             *string    `db:"notes" json:"notes,omitempty"`
	Status            string     `db:"status" json:"status"`
	PaymentStatus     string     `db:"payment_status" json:"paymentStatus"`
	Currency          string     `db:"currency" json:"currency"`
	ServicePricePaise *int64     `db:"service_price_paise" json:"servicePricePaise,omitempty"`
	PaymentMethod     *string    `db:"payment_method" json:"paymentMethod,omitempty"`
	RazorpayOrderID   *string    `db:"razorpay_order_id" json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID *string    `db:"razorpay_payment_id" json:"razorpayPaymentId,omitempty"`
	PaidAt            *time.Time `db:"paid_at" json:"paidAt,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updatedAt"`

	Items         []BookingItem                `db:"-" json:"items"`
	Payments      []BookingPayment             `db:"-" json:"payments"`
	Cancellations []BookingCancellationRequest `db:"-" json:"cancellations"`
}

// DisplayID renders the booking id as B0001.
func (b *Booking) DisplayID() string {
	return fmt.Sprintf("B%04d", b.ID)
}

// IsCancelled reports whether the booking status is cancelled.
func (b *Booking) IsCancelled() bool {
	return strings.EqualFold(b.Status, BookingCancelled)
}

// LatestPayment returns the most recently created payment attempt, or nil.
func (b *Booking) LatestPayment() *BookingPayment {
	if len(b.Payments) == 0 {
		return nil
	}
	sorted := make([]BookingPayment, len(b.Payments))
	copy(sorted, b.Payments)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	return &sorted[0]
}

// LatestCancellation returns the most recent cancellation request, or nil.
// A cancelled booking without one is tolerated.
func (b *Booking) LatestCancellation() *BookingCancellationRequest {
	if len(b.Cancellations) == 0 {
		return nil
	}
	sorted := make([]BookingCancellationRequest, len(b.Cancellations))
	copy(sorted, b.Cancellations)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	return &sorted[0]
}

// TotalPaise sums the booking items, falling back to the stored service price.
func (b *Booking) TotalPaise() int64 {
	var total int64
	for _, it := range b.Items {
		total += it.UnitPricePaise * int64(it.Quantity)
	}
	if total == 0 && b.ServicePricePaise != nil {
		return *b.ServicePricePaise
	}
	return total
}

// ServiceTitles lists the display title for every booked service.
func (b *Booking) ServiceTitles() []string {
	titles := make([]string, 0, len(b.Items))
	for _, it := range b.Items {
		if it.ServiceTitle != nil && *it.ServiceTitle != "" {
			titles = append(titles, *it.ServiceTitle)
			continue
		}
		titles = append(titles, it.TitleSnapshot)
	}
	return titles
}

// BookingStaleAttempt is a booking payment awaiting confirmation from the gateway.
type BookingStaleAttempt struct {
	PaymentID         int64     `db:"id"`
	BookingID         int64     `db:"booking_id"`
	RazorpayPaymentID string    `db:"razorpay_payment_id"`
	Status            string    `db:"status"`
	CreatedAt         time.Time `db:"created_at"`
}
