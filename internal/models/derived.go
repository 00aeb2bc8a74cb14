package models

import "encoding/json"

// The admin UI renders derived values straight from the API payload, so
// each aggregate carries them alongside its stored columns.

// MarshalJSON adds the paid flag, normalized shipping status, table label,
// latest cancellation and preferred contact details.
func (o Order) MarshalJSON() ([]byte, error) {
	type order Order
	return json.Marshal(struct {
		order
		DisplayID                string                    `json:"displayId"`
		IsPaid                   bool                      `json:"isPaid"`
		ShippingStatusNormalized ShippingStatus            `json:"shippingStatusNormalized"`
		DisplayStatus            string                    `json:"displayStatus"`
		LatestCancellation       *OrderCancellationRequest `json:"latestCancellation"`
		PreferredEmail           string                    `json:"preferredEmail"`
		PreferredPhone           string                    `json:"preferredPhone"`
	}{
		order:                    order(o),
		DisplayID:                o.DisplayID(),
		IsPaid:                   o.IsPaid(),
		ShippingStatusNormalized: o.NormalizedShipping(),
		DisplayStatus:            o.DisplayStatus(),
		LatestCancellation:       o.LatestCancellation(),
		PreferredEmail:           o.PreferredEmail(),
		PreferredPhone:           o.PreferredPhone(),
	})
}

// MarshalJSON adds the stock label.
func (p Product) MarshalJSON() ([]byte, error) {
	type product Product
	return json.Marshal(struct {
		product
		DisplayID   string      `json:"displayId"`
		StockStatus StockStatus `json:"stockStatus"`
	}{
		product:     product(p),
		DisplayID:   p.DisplayID(),
		StockStatus: p.StockStatus(),
	})
}

// MarshalJSON adds the latest payment attempt, latest cancellation and total.
func (b Booking) MarshalJSON() ([]byte, error) {
	type booking Booking
	return json.Marshal(struct {
		booking
		DisplayID          string                      `json:"displayId"`
		TotalPaise         int64                       `json:"totalPaise"`
		LatestPayment      *BookingPayment             `json:"latestPayment"`
		LatestCancellation *BookingCancellationRequest `json:"latestCancellation"`
	}{
		booking:            booking(b),
		DisplayID:          b.DisplayID(),
		TotalPaise:         b.TotalPaise(),
		LatestPayment:      b.LatestPayment(),
		LatestCancellation: b.LatestCancellation(),
	})
}
