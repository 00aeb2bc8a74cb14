package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chakrahealing/admin_api/internal/models"
)

func TestAggregateRevenue(t *testing.T) {
	orders := []models.RevenueEntry{
		{AmountPaise: 10000, Status: strPtr("paid")},
		{AmountPaise: 5000, Status: strPtr("pending")},
		{AmountPaise: 700, Status: nil},
	}
	bookings := []models.RevenueEntry{
		{AmountPaise: 2000, Status: strPtr(" PAID ")},
		{AmountPaise: 900, Status: strPtr("failed")},
	}

	assert.Equal(t, int64(12000), AggregateRevenue(orders, bookings))
	assert.Zero(t, AggregateRevenue(nil, nil))
}

func at(want time.Time) interface{} {
	return mock.MatchedBy(func(got time.Time) bool { return got.Equal(want) })
}

func TestDashboardService_Stats(t *testing.T) {
	// 20:00 UTC is already the next day in IST.
	fixed := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)

	store := new(mockDashboardStore)
	store.On("CountBookingsSince", mock.Anything, at(fixed.AddDate(0, 0, -30))).Return(42, nil)
	store.On("CountBookingsOn", mock.Anything, "2026-03-11").Return(3, nil)
	store.On("PaidOrderTotals", mock.Anything).Return([]models.RevenueEntry{{AmountPaise: 10000, Status: strPtr("paid")}}, nil)
	store.On("PaidBookingPayments", mock.Anything).Return([]models.RevenueEntry{{AmountPaise: 2500, Status: strPtr("paid")}}, nil)
	store.On("CountProfilesSince", mock.Anything, at(fixed.AddDate(0, 0, -7))).Return(5, nil)
	store.On("MonthlyBookings", mock.Anything).Return([]models.MonthlyBookings{}, nil)
	store.On("TopServices", mock.Anything, topServicesLimit).Return([]models.TopService{}, nil)
	store.On("MostOrdered", mock.Anything, mostOrderedLimit).Return([]models.MostOrderedProduct{}, nil)
	store.On("Upcoming", mock.Anything, "2026-03-11", "2026-03-18").Return([]models.UpcomingAppointment{}, nil)

	svc := NewDashboardService(store)
	svc.now = func() time.Time { return fixed }

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, stats.TotalBookings)
	assert.Equal(t, 3, stats.TodaysBookings)
	assert.Equal(t, int64(12500), stats.TotalRevenuePaise)
	assert.Equal(t, 5, stats.NewCustomers)
	store.AssertExpectations(t)
}

func TestDashboardService_StatsFailure(t *testing.T) {
	boom := errors.New("db down")
	store := new(mockDashboardStore)
	store.On("CountBookingsSince", mock.Anything, mock.Anything).Return(0, boom)
	store.On("CountBookingsOn", mock.Anything, mock.Anything).Return(0, nil).Maybe()
	store.On("PaidOrderTotals", mock.Anything).Return([]models.RevenueEntry(nil), nil).Maybe()
	store.On("PaidBookingPayments", mock.Anything).Return([]models.RevenueEntry(nil), nil).Maybe()
	store.On("CountProfilesSince", mock.Anything, mock.Anything).Return(0, nil).Maybe()
	store.On("MonthlyBookings", mock.Anything).Return([]models.MonthlyBookings(nil), nil).Maybe()
	store.On("TopServices", mock.Anything, mock.Anything).Return([]models.TopService(nil), nil).Maybe()
	store.On("MostOrdered", mock.Anything, mock.Anything).Return([]models.MostOrderedProduct(nil), nil).Maybe()
	store.On("Upcoming", mock.Anything, mock.Anything, mock.Anything).Return([]models.UpcomingAppointment(nil), nil).Maybe()

	_, err := NewDashboardService(store).Stats(context.Background())
	assert.ErrorIs(t, err, boom)
}
