package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/chakrahealing/admin_api/internal/models"
)

// DashboardRepository runs the aggregate reads of the dashboard page.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// CountBookingsSince counts bookings created at or after since.
func (r *DashboardRepository) CountBookingsSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM service_bookings WHERE created_at >= $1`, since); err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}

// CountBookingsOn counts non-cancelled bookings whose preferred date is day (YYYY-MM-DD).
func (r *DashboardRepository) CountBookingsOn(ctx context.Context, day string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `
		SELECT COUNT(*) FROM service_bookings
		WHERE preferred_date = $1::date AND LOWER(status) <> 'cancelled'`, day)
	if err != nil {
		return 0, fmt.Errorf("count bookings on %s: %w", day, err)
	}
	return n, nil
}

// PaidOrderTotals returns the totals of paid orders.
func (r *DashboardRepository) PaidOrderTotals(ctx context.Context) ([]models.RevenueEntry, error) {
	rows := []models.RevenueEntry{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT total_paise AS amount_paise, payment_status AS status
		FROM orders WHERE LOWER(payment_status) = 'paid'`)
	if err != nil {
		return nil, fmt.Errorf("select paid orders: %w", err)
	}
	return rows, nil
}

// PaidBookingPayments returns the amounts of paid booking payment attempts.
func (r *DashboardRepository) PaidBookingPayments(ctx context.Context) ([]models.RevenueEntry, error) {
	rows := []models.RevenueEntry{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT amount_paise, status FROM service_booking_payments WHERE LOWER(status) = 'paid'`)
	if err != nil {
		return nil, fmt.Errorf("select paid booking payments: %w", err)
	}
	return rows, nil
}

// CountProfilesSince counts profiles created at or after since.
func (r *DashboardRepository) CountProfilesSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM profiles WHERE created_at >= $1`, since); err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return n, nil
}

// MonthlyBookings reads v_monthly_bookings in month order.
func (r *DashboardRepository) MonthlyBookings(ctx context.Context) ([]models.MonthlyBookings, error) {
	rows := []models.MonthlyBookings{}
	if err := r.db.SelectContext(ctx, &rows, `SELECT month, bookings FROM v_monthly_bookings ORDER BY month ASC`); err != nil {
		return nil, fmt.Errorf("select monthly bookings: %w", err)
	}
	return rows, nil
}

// TopServices reads the first limit rows of v_top_services_month.
func (r *DashboardRepository) TopServices(ctx context.Context, limit int) ([]models.TopService, error) {
	rows := []models.TopService{}
	if err := r.db.SelectContext(ctx, &rows, `SELECT title, bookings FROM v_top_services_month LIMIT $1`, limit); err != nil {
		return nil, fmt.Errorf("select top services: %w", err)
	}
	return rows, nil
}

// MostOrdered reads the first limit rows of v_most_ordered_products_week.
func (r *DashboardRepository) MostOrdered(ctx context.Context, limit int) ([]models.MostOrderedProduct, error) {
	rows := []models.MostOrderedProduct{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT product_id, name, image, quantity FROM v_most_ordered_products_week LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("select most ordered products: %w", err)
	}
	return rows, nil
}

// Upcoming lists non-cancelled bookings with a preferred date in [from, to].
func (r *DashboardRepository) Upcoming(ctx context.Context, from, to string) ([]models.UpcomingAppointment, error) {
	rows := []models.UpcomingAppointment{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT b.id, b.contact_name, b.preferred_date, b.preferred_slot, b.status,
			(SELECT COALESCE(s.title, i.title_snapshot)
			 FROM service_booking_items i LEFT JOIN services s ON s.id = i.service_id
			 WHERE i.booking_id = b.id ORDER BY i.created_at, i.id LIMIT 1) AS service_title
		FROM service_bookings b
		WHERE b.preferred_date BETWEEN $1::date AND $2::date AND LOWER(b.status) <> 'cancelled'
		ORDER BY b.preferred_date ASC, b.preferred_slot ASC NULLS LAST`, from, to)
	if err != nil {
		return nil, fmt.Errorf("select upcoming bookings: %w", err)
	}
	return rows, nil
}
