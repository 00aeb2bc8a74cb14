package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestOrder_IsPaid(t *testing.T) {
	tests := []struct {
		name          string
		status        string
		paymentStatus *string
		want          bool
	}{
		{"payment status paid", "created", strPtr("paid"), true},
		{"order status paid", "paid", strPtr("unpaid"), true},
		{"order status paid without payment status", "paid", nil, true},
		{"mixed case", "created", strPtr("PAID"), true},
		{"neither paid", "draft", strPtr("unpaid"), false},
		{"nothing set", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Order{Status: tt.status, PaymentStatus: tt.paymentStatus}
			assert.Equal(t, tt.want, o.IsPaid())
		})
	}
}

func TestNormalizeShippingStatus(t *testing.T) {
	tests := []struct {
		raw  *string
		want ShippingStatus
	}{
		{nil, ShippingInProcess},
		{strPtr("completed"), ShippingCompleted},
		{strPtr("Completed "), ShippingCompleted},
		{strPtr("cancelled"), ShippingCancelled},
		{strPtr("canceled"), ShippingCancelled},
		{strPtr("inprogress"), ShippingInProcess},
		{strPtr("in_progress"), ShippingInProcess},
		{strPtr("in process"), ShippingInProcess},
		{strPtr("in-process"), ShippingInProcess},
		{strPtr("shipped"), ShippingInProcess},
		{strPtr(""), ShippingInProcess},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeShippingStatus(tt.raw))
	}
}

func TestParseShippingStatus(t *testing.T) {
	s, ok := ParseShippingStatus("completed")
	assert.True(t, ok)
	assert.Equal(t, ShippingCompleted, s)

	_, ok = ParseShippingStatus("canceled")
	assert.False(t, ok)
}

func TestOrder_DisplayStatus(t *testing.T) {
	assert.Equal(t, "Draft", (&Order{Status: "draft", ShippingStatus: strPtr("completed")}).DisplayStatus())
	assert.Equal(t, "Completed", (&Order{Status: "paid", ShippingStatus: strPtr("completed")}).DisplayStatus())
	assert.Equal(t, "Cancelled", (&Order{Status: "paid", ShippingStatus: strPtr("canceled")}).DisplayStatus())
	assert.Equal(t, "In process", (&Order{Status: "paid"}).DisplayStatus())
}

func TestOrder_DisplayID(t *testing.T) {
	assert.Equal(t, "O0007", (&Order{ID: 7}).DisplayID())
	assert.Equal(t, "O12345", (&Order{ID: 12345}).DisplayID())
}

func TestOrder_HasCancellationReason(t *testing.T) {
	o := &Order{Cancellations: []OrderCancellationRequest{
		{Reason: nil},
		{Reason: strPtr("  cancelled BY admin ")},
	}}
	assert.True(t, o.HasCancellationReason(AdminCancellationReason))
	assert.False(t, o.HasCancellationReason("customer request"))
	assert.False(t, (&Order{}).HasCancellationReason(AdminCancellationReason))
}

func TestOrder_LatestCancellation(t *testing.T) {
	now := time.Now()
	o := &Order{Cancellations: []OrderCancellationRequest{
		{ID: 1, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: 2, CreatedAt: now},
		{ID: 3, CreatedAt: now.Add(-time.Hour)},
	}}

	latest := o.LatestCancellation()
	assert.Equal(t, int64(2), latest.ID)
	assert.Equal(t, int64(1), o.Cancellations[0].ID, "source slice order is preserved")
	assert.Nil(t, (&Order{}).LatestCancellation())
}

func TestOrder_PreferredContact(t *testing.T) {
	o := &Order{
		Email:   strPtr("order@example.com"),
		Profile: &ProfileSummary{Phone: strPtr("+91 90000 00000")},
	}
	assert.Equal(t, "order@example.com", o.PreferredEmail())
	assert.Equal(t, "+91 90000 00000", o.PreferredPhone())

	o.ContactEmail = strPtr("contact@example.com")
	assert.Equal(t, "contact@example.com", o.PreferredEmail())
}

func TestOrderItem_LineTotal(t *testing.T) {
	total := int64(500)
	assert.Equal(t, int64(500), OrderItem{LineTotalPaise: &total, UnitPricePaise: 100, Quantity: 2}.LineTotal())
	assert.Equal(t, int64(200), OrderItem{UnitPricePaise: 100, Quantity: 2}.LineTotal())
}
