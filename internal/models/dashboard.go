package models

import "time"

// MonthlyBookings is one bar of the bookings chart.
type MonthlyBookings struct {
	Month    string `db:"month" json:"month"`
	Bookings int    `db:"bookings" json:"bookings"`
}

// TopService is a service ranked by bookings this month.
type TopService struct {
	Title    string `db:"title" json:"title"`
	Bookings int    `db:"bookings" json:"bookings"`
}

// MostOrderedProduct is a product ranked by paid quantity this week.
type MostOrderedProduct struct {
	ProductID *int64  `db:"product_id" json:"productId,omitempty"`
	Name      string  `db:"name" json:"name"`
	Image     *string `db:"image" json:"image,omitempty"`
	Quantity  int     `db:"quantity" json:"quantity"`
}

// UpcomingAppointment is a booking scheduled within the next week.
type UpcomingAppointment struct {
	ID            int64      `db:"id" json:"id"`
	ContactName   string     `db:"contact_name" json:"contactName"`
	PreferredDate *time.Time `db:"preferred_date" json:"preferredDate,omitempty"`
	PreferredSlot *string    `db:"preferred_slot" json:"preferredSlot,omitempty"`
	Status        string     `db:"status" json:"status"`
	ServiceTitle  *string    `db:"service_title" json:"serviceTitle,omitempty"`
}

// DashboardStats is the payload of the dashboard page.
type DashboardStats struct {
	TotalBookings     int                   `json:"totalBookings"`
	TodaysBookings    int                   `json:"todaysBookings"`
	TotalRevenuePaise int64                 `json:"totalRevenuePaise"`
	NewCustomers      int                   `json:"newCustomers"`
	MonthlyBookings   []MonthlyBookings     `json:"monthlyBookings"`
	TopServices       []TopService          `json:"topServices"`
	MostOrdered       []MostOrderedProduct  `json:"mostOrdered"`
	Upcoming          []UpcomingAppointment `json:"upcoming"`
}

// RevenueEntry is one paid amount feeding the revenue card.
type RevenueEntry struct {
	AmountPaise int64   `db:"amount_paise" json:"amountPaise"`
	Status      *string `db:"status" json:"status,omitempty"`
}
