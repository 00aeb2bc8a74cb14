package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ShippingStatus is the normalized fulfilment state of a paid order.
type ShippingStatus string

const (
	ShippingInProcess ShippingStatus = "in_process"
	ShippingCompleted ShippingStatus = "completed"
	ShippingCancelled ShippingStatus = "cancelled"
)

// AdminCancellationReason is recorded when an admin cancels an order's shipment.
const AdminCancellationReason = "Cancelled by Admin"

// ParseShippingStatus accepts only the three canonical values.
func ParseShippingStatus(s string) (ShippingStatus, bool) {
	switch ShippingStatus(s) {
	case ShippingInProcess, ShippingCompleted, ShippingCancelled:
		return ShippingStatus(s), true
	}
	return "", false
}

// NormalizeShippingStatus maps the loosely written stored value onto a
// canonical status. Anything unknown, including nil, is in_process.
func NormalizeShippingStatus(raw *string) ShippingStatus {
	if raw == nil {
		return ShippingInProcess
	}
	switch strings.ToLower(strings.TrimSpace(*raw)) {
	case "completed":
		return ShippingCompleted
	case "cancelled", "canceled":
		return ShippingCancelled
	default:
		return ShippingInProcess
	}
}

// ProfileSummary is the slice of a profile embedded into order, booking and review rows.
type ProfileSummary struct {
	ID        string  `db:"id" json:"id"`
	FullName  *string `db:"full_name" json:"fullName,omitempty"`
	Email     *string `db:"email" json:"email,omitempty"`
	Phone     *string `db:"phone" json:"phone,omitempty"`
	AvatarURL *string `db:"avatar_url" json:"avatarUrl,omitempty"`
}

// OrderItem is a product line captured at checkout.
type OrderItem struct {
	ID             int64     `db:"id" json:"id"`
	OrderID        int64     `db:"order_id" json:"orderId"`
	ProductID      *int64    `db:"product_id" json:"productId,omitempty"`
	VariantID      *int64    `db:"variant_id" json:"variantId,omitempty"`
	NameSnapshot   string    `db:"name_snapshot" json:"nameSnapshot"`
	UnitPricePaise int64     `db:"unit_price_paise" json:"unitPricePaise"`
	Quantity       int       `db:"quantity" json:"quantity"`
	ColorSnapshot  *string   `db:"color_snapshot" json:"colorSnapshot,omitempty"`
	SizeSnapshot   *string   `db:"size_snapshot" json:"sizeSnapshot,omitempty"`
	ImageSnapshot  *string   `db:"image_snapshot" json:"imageSnapshot,omitempty"`
	LineTotalPaise *int64    `db:"line_total_paise" json:"lineTotalPaise,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// LineTotal falls back to unit price times quantity when no total was stored.
func (i OrderItem) LineTotal() int64 {
	if i.LineTotalPaise != nil {
		return *i.LineTotalPaise
	}
	return i.UnitPricePaise * int64(i.Quantity)
}

// OrderCancellationRequest records why an order was cancelled.
type OrderCancellationRequest struct {
	ID        int64     `db:"id" json:"id"`
	OrderID   int64     `db:"order_id" json:"orderId"`
	UserID    *string   `db:"user_id" json:"userId,omitempty"`
	Reason    *string   `db:"reason" json:"reason,omitempty"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Order is a product order with its items and cancellation history.
type Order struct {
	ID                int64     `db:"id" json:"id"`
	UserID            *string   `db:"user_id" json:"userId,omitempty"`
	Email             *string   `db:"email" json:"email,omitempty"`
	Phone             *string   `db:"phone" json:"phone,omitempty"`
	ContactEmail      *string   `db:"contact_email" json:"contactEmail,omitempty"`
	ContactPhone      *string   `db:"contact_phone" json:"contactPhone,omitempty"`
	Status            string    `db:"status" json:"status"`
	PaymentStatus     *string   `db:"payment_status" json:"paymentStatus,omitempty"`
	PaymentMethod     *string   `db:"payment_method" json:"paymentMethod,omitempty"`
	ShippingMethod    *string   `db:"shipping_method" json:"shippingMethod,omitempty"`
	ShippingStatus    *string   `db:"shipping_status" json:"shippingStatus,omitempty"`
	Address           JSONB     `db:"address" json:"address"`
	ShippingAddress   JSONB     `db:"shipping_address" json:"shippingAddress"`
	Currency          string    `db:"currency" json:"currency"`
	TotalPaise        int64     `db:"total_paise" json:"totalPaise"`
	RazorpayOrderID   *string   `db:"razorpay_order_id" json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID *string   `db:"razorpay_payment_id" json:"razorpayPaymentId,omitempty"`
	Notes             *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt"`

	Profile       *ProfileSummary            `db:"-" json:"profile,omitempty"`
	Items         []OrderItem                `db:"-" json:"items"`
	Cancellations []OrderCancellationRequest `db:"-" json:"cancellations"`
}

// IsPaid reports whether either the payment status or the order status says
// "paid". The two fields are not kept consistent upstream, so both count.
func (o *Order) IsPaid() bool {
	if o.PaymentStatus != nil && strings.EqualFold(strings.TrimSpace(*o.PaymentStatus), "paid") {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(o.Status), "paid")
}

// NormalizedShipping returns the canonical shipping status.
func (o *Order) NormalizedShipping() ShippingStatus {
	return NormalizeShippingStatus(o.ShippingStatus)
}

// DisplayStatus is the label shown in the orders table.
func (o *Order) DisplayStatus() string {
	if !o.IsPaid() {
		return "Draft"
	}
	switch o.NormalizedShipping() {
	case ShippingCompleted:
		return "Completed"
	case ShippingCancelled:
		return "Cancelled"
	default:
		return "In process"
	}
}

// DisplayID renders the order id as O0001.
func (o *Order) DisplayID() string {
	return fmt.Sprintf("O%04d", o.ID)
}

// HasCancellationReason reports whether a cancellation with the given reason
// exists, ignoring case and surrounding whitespace.
func (o *Order) HasCancellationReason(reason string) bool {
	want := strings.TrimSpace(reason)
	for _, c := range o.Cancellations {
		if c.Reason != nil && strings.EqualFold(strings.TrimSpace(*c.Reason), want) {
			return true
		}
	}
	return false
}

// LatestCancellation returns the most recent cancellation request, or nil.
func (o *Order) LatestCancellation() *OrderCancellationRequest {
	if len(o.Cancellations) == 0 {
		return nil
	}
	sorted := make([]OrderCancellationRequest, len(o.Cancellations))
	copy(sorted, o.Cancellations)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	return &sorted[0]
}

// PreferredEmail prefers the explicit contact email, then the order email, then the profile.
func (o *Order) PreferredEmail() string {
	return firstNonEmpty(o.ContactEmail, o.Email, profileField(o.Profile, func(p *ProfileSummary) *string { return p.Email }))
}

// PreferredPhone prefers the explicit contact phone, then the order phone, then the profile.
func (o *Order) PreferredPhone() string {
	return firstNonEmpty(o.ContactPhone, o.Phone, profileField(o.Profile, func(p *ProfileSummary) *string { return p.Phone }))
}

func profileField(p *ProfileSummary, get func(*ProfileSummary) *string) *string {
	if p == nil {
		return nil
	}
	return get(p)
}

func firstNonEmpty(values ...*string) string {
	for _, v := range values {
		if v != nil && strings.TrimSpace(*v) != "" {
			return *v
		}
	}
	return ""
}

// StrValue dereferences s, returning "" for nil.
func StrValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
