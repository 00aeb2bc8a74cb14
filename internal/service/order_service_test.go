package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chakrahealing/admin_api/internal/listing"
	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/utils"
)

func paidOrder(id int64) *models.Order {
	return &models.Order{ID: id, Status: "pending", PaymentStatus: strPtr("paid")}
}

func TestOrderService_UpdateShippingStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown status before reading the order", func(t *testing.T) {
		store := new(mockOrderStore)
		svc := NewOrderService(store, nil, 100)

		_, err := svc.UpdateShippingStatus(ctx, 1, "shipped", "admin-1")
		assert.ErrorIs(t, err, utils.ErrInvalidStatus)
		store.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("rejects unpaid order", func(t *testing.T) {
		store := new(mockOrderStore)
		store.On("GetByID", ctx, int64(2)).Return(&models.Order{ID: 2, Status: "pending"}, nil)
		svc := NewOrderService(store, nil, 100)

		_, err := svc.UpdateShippingStatus(ctx, 2, "completed", "admin-1")
		assert.ErrorIs(t, err, utils.ErrOrderNotPaid)
		store.AssertNotCalled(t, "ApplyShippingStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing order", func(t *testing.T) {
		store := new(mockOrderStore)
		store.On("GetByID", ctx, int64(3)).Return(nil, utils.ErrNotFound)
		svc := NewOrderService(store, nil, 100)

		_, err := svc.UpdateShippingStatus(ctx, 3, "completed", "admin-1")
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("cancel records admin reason", func(t *testing.T) {
		store := new(mockOrderStore)
		notifier := &recordingNotifier{}
		store.On("GetByID", ctx, int64(4)).Return(paidOrder(4), nil)
		store.On("ApplyShippingStatus", ctx, int64(4), models.ShippingCancelled, models.AdminCancellationReason).Return(nil)
		svc := NewOrderService(store, notifier, 100)

		got, err := svc.UpdateShippingStatus(ctx, 4, "cancelled", "admin-1")
		require.NoError(t, err)
		assert.Equal(t, int64(4), got.ID)
		assert.Equal(t, []int64{4}, notifier.shipping)
		store.AssertExpectations(t)
	})

	t.Run("cancel skips duplicate admin reason", func(t *testing.T) {
		store := new(mockOrderStore)
		order := paidOrder(5)
		order.Cancellations = []models.OrderCancellationRequest{{ID: 9, OrderID: 5, Reason: strPtr(" cancelled by admin "), Status: "approved"}}
		store.On("GetByID", ctx, int64(5)).Return(order, nil)
		store.On("ApplyShippingStatus", ctx, int64(5), models.ShippingCancelled, "").Return(nil)
		svc := NewOrderService(store, nil, 100)

		_, err := svc.UpdateShippingStatus(ctx, 5, "cancelled", "admin-1")
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("legacy paid status counts as paid", func(t *testing.T) {
		store := new(mockOrderStore)
		store.On("GetByID", ctx, int64(6)).Return(&models.Order{ID: 6, Status: "PAID"}, nil)
		store.On("ApplyShippingStatus", ctx, int64(6), models.ShippingCompleted, "").Return(nil)
		svc := NewOrderService(store, nil, 100)

		_, err := svc.UpdateShippingStatus(ctx, 6, "completed", "admin-1")
		require.NoError(t, err)
		store.AssertExpectations(t)
	})
}

func TestOrderService_ListRejectsUnknownTab(t *testing.T) {
	store := new(mockOrderStore)
	svc := NewOrderService(store, nil, 100)

	_, err := svc.List(context.Background(), listing.Query{Tab: "archived", Page: 1, PageSize: 10})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
	store.AssertNotCalled(t, "GetAllAdmin", mock.Anything, mock.Anything)
}
