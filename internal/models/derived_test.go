package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, v any) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestOrder_JSONCarriesDerivedFields(t *testing.T) {
	now := time.Now()
	o := Order{
		ID:             7,
		Status:         "pending",
		PaymentStatus:  strPtr("paid"),
		ShippingStatus: strPtr("canceled"),
		Email:          strPtr("order@example.com"),
		Profile:        &ProfileSummary{Phone: strPtr("+91 90000 00000")},
		Cancellations: []OrderCancellationRequest{
			{ID: 1, CreatedAt: now.Add(-time.Hour)},
			{ID: 2, CreatedAt: now},
		},
	}

	got := decode(t, o)
	assert.Equal(t, float64(7), got["id"])
	assert.Equal(t, "pending", got["status"])
	assert.Equal(t, "O0007", got["displayId"])
	assert.Equal(t, true, got["isPaid"])
	assert.Equal(t, "cancelled", got["shippingStatusNormalized"])
	assert.Equal(t, "Cancelled", got["displayStatus"])
	assert.Equal(t, "order@example.com", got["preferredEmail"])
	assert.Equal(t, "+91 90000 00000", got["preferredPhone"])
	latest, ok := got["latestCancellation"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), latest["id"])

	// pointers and slices marshal the same way
	assert.Equal(t, got, decode(t, &o))
	list := decode(t, map[string]any{"items": []Order{o}})
	assert.Equal(t, true, list["items"].([]any)[0].(map[string]any)["isPaid"])
}

func TestOrder_JSONDraft(t *testing.T) {
	got := decode(t, Order{ID: 3, Status: "draft"})
	assert.Equal(t, false, got["isPaid"])
	assert.Equal(t, "Draft", got["displayStatus"])
	assert.Equal(t, "in_process", got["shippingStatusNormalized"])
	assert.Nil(t, got["latestCancellation"])
}

func TestProduct_JSONCarriesStockStatus(t *testing.T) {
	got := decode(t, Product{ID: 4, Name: "Crystal", TrackInventory: boolPtr(true), Stock: intPtr(2), Sold: 9})
	assert.Equal(t, "Low Stock", got["stockStatus"])
	assert.Equal(t, "P004", got["displayId"])
	assert.Equal(t, "Crystal", got["name"])
	assert.Equal(t, float64(9), got["sold"])
}

func TestBooking_JSONCarriesLatestPaymentAndCancellation(t *testing.T) {
	now := time.Now()
	b := Booking{
		ID:     12,
		Status: "confirmed",
		Items:  []BookingItem{{TitleSnapshot: "Reiki", UnitPricePaise: 50000, Quantity: 2}},
		Payments: []BookingPayment{
			{ID: 1, Status: "failed", CreatedAt: now.Add(-time.Hour)},
			{ID: 2, Status: "paid", CreatedAt: now},
		},
	}

	got := decode(t, b)
	assert.Equal(t, "B0012", got["displayId"])
	assert.Equal(t, float64(100000), got["totalPaise"])
	payment, ok := got["latestPayment"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), payment["id"])
	assert.Nil(t, got["latestCancellation"])
}
