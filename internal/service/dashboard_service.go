package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/utils"
)

const (
	topServicesLimit = 5
	mostOrderedLimit = 3
)

// DashboardService assembles the dashboard cards and charts.
type DashboardService struct {
	store DashboardStore
	now   func() time.Time
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(store DashboardStore) *DashboardService {
	return &DashboardService{store: store, now: time.Now}
}

// Stats runs the independent dashboard reads concurrently. The first
// failure cancels the rest and is returned.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	now := s.now().In(utils.IST)
	today := now.Format("2006-01-02")
	nextWeek := now.AddDate(0, 0, 7).Format("2006-01-02")

	stats := &models.DashboardStats{}
	var orderRevenue, bookingRevenue []models.RevenueEntry

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalBookings, err = s.store.CountBookingsSince(ctx, now.AddDate(0, 0, -30))
		return err
	})
	g.Go(func() (err error) {
		stats.TodaysBookings, err = s.store.CountBookingsOn(ctx, today)
		return err
	})
	g.Go(func() (err error) {
		orderRevenue, err = s.store.PaidOrderTotals(ctx)
		return err
	})
	g.Go(func() (err error) {
		bookingRevenue, err = s.store.PaidBookingPayments(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.NewCustomers, err = s.store.CountProfilesSince(ctx, now.AddDate(0, 0, -7))
		return err
	})
	g.Go(func() (err error) {
		stats.MonthlyBookings, err = s.store.MonthlyBookings(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TopServices, err = s.store.TopServices(ctx, topServicesLimit)
		return err
	})
	g.Go(func() (err error) {
		stats.MostOrdered, err = s.store.MostOrdered(ctx, mostOrderedLimit)
		return err
	})
	g.Go(func() (err error) {
		stats.Upcoming, err = s.store.Upcoming(ctx, today, nextWeek)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.TotalRevenuePaise = AggregateRevenue(orderRevenue, bookingRevenue)
	return stats, nil
}

// AggregateRevenue sums paid order totals and paid booking payments.
// Entries whose status is not "paid" are ignored.
func AggregateRevenue(orders, bookingPayments []models.RevenueEntry) int64 {
	var total int64
	for _, group := range [][]models.RevenueEntry{orders, bookingPayments} {
		for _, e := range group {
			if e.Status != nil && strings.EqualFold(strings.TrimSpace(*e.Status), "paid") {
				total += e.AmountPaise
			}
		}
	}
	return total
}
