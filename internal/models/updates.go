package models

import "time"

// ProfileUpdate holds editable profile fields. Nil fields are left untouched.
type ProfileUpdate struct {
	FullName         *string    `json:"fullName" validate:"omitempty,max=120"`
	Email            *string    `json:"email" validate:"omitempty,email"`
	Phone            *string    `json:"phone" validate:"omitempty,max=32"`
	AvatarURL        *string    `json:"avatarUrl" validate:"omitempty,max=500"`
	DOB              *time.Time `json:"dob"`
	PresentAddress   *string    `json:"presentAddress" validate:"omitempty,max=500"`
	PermanentAddress *string    `json:"permanentAddress" validate:"omitempty,max=500"`
	City             *string    `json:"city" validate:"omitempty,max=120"`
	PostalCode       *string    `json:"postalCode" validate:"omitempty,max=20"`
	Country          *string    `json:"country" validate:"omitempty,max=120"`
}

// BookingUpdate holds the admin-editable booking fields.
type BookingUpdate struct {
	Status            *string    `json:"status" validate:"omitempty,oneof=pending confirmed completed inprocess cancelled"`
	PaymentStatus     *string    `json:"paymentStatus" validate:"omitempty,oneof=unpaid paid refunded"`
	PreferredDate     *time.Time `json:"preferredDate"`
	PreferredSlot     *string    `json:"preferredSlot" validate:"omitempty,max=64"`
	PreferredLocation *string    `json:"preferredLocation" validate:"omitempty,max=200"`
}

// PaymentUpdate holds the admin-editable payment fields of an order.
type PaymentUpdate struct {
	PaymentStatus  *string `json:"paymentStatus" validate:"omitempty,oneof=paid unpaid refunded failed"`
	PaymentMethod  *string `json:"paymentMethod" validate:"omitempty,max=32"`
	Status         *string `json:"status" validate:"omitempty,oneof=draft pending paid failed cancelled"`
	ShippingMethod *string `json:"shippingMethod" validate:"omitempty,max=64"`
	Notes          *string `json:"notes" validate:"omitempty,max=2000"`
}
