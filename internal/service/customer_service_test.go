package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chakrahealing/admin_api/internal/listing"
	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/utils"
)

func TestCustomerService_List(t *testing.T) {
	ctx := context.Background()
	store := new(mockCustomerStore)
	store.On("GetAll", ctx).Return([]models.CustomerStats{
		{UserID: "u-1", FullName: strPtr("Asha Rao"), TotalSessions: 2},
		{UserID: "u-2", FullName: strPtr("Ravi Kumar")},
		{UserID: "u-3", Email: strPtr("asha.k@example.com"), TotalSessions: 1},
	}, nil)
	svc := NewCustomerService(store)

	page, err := svc.List(ctx, listing.Query{Status: "active", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalItems)

	page, err = svc.List(ctx, listing.Query{Search: "asha", Status: "inactive", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestCustomerService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects invalid email", func(t *testing.T) {
		store := new(mockCustomerStore)
		svc := NewCustomerService(store)

		err := svc.UpdateProfile(ctx, "u-1", models.ProfileUpdate{Email: strPtr("not-an-email")})
		assert.ErrorIs(t, err, utils.ErrInvalidInput)
		store.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects overlong name", func(t *testing.T) {
		store := new(mockCustomerStore)
		svc := NewCustomerService(store)

		err := svc.UpdateProfile(ctx, "u-1", models.ProfileUpdate{FullName: strPtr(strings.Repeat("a", 121))})
		assert.ErrorIs(t, err, utils.ErrInvalidInput)
	})

	t.Run("writes valid fields", func(t *testing.T) {
		store := new(mockCustomerStore)
		upd := models.ProfileUpdate{FullName: strPtr("Asha Rao"), City: strPtr("Pune")}
		store.On("UpdateProfile", ctx, "u-1", upd).Return(nil)
		svc := NewCustomerService(store)

		require.NoError(t, svc.UpdateProfile(ctx, "u-1", upd))
		store.AssertExpectations(t)
	})

	t.Run("missing customer", func(t *testing.T) {
		store := new(mockCustomerStore)
		store.On("UpdateProfile", ctx, "ghost", mock.Anything).Return(utils.ErrNotFound)
		svc := NewCustomerService(store)

		assert.ErrorIs(t, svc.UpdateProfile(ctx, "ghost", models.ProfileUpdate{City: strPtr("Goa")}), utils.ErrNotFound)
	})
}

func TestCustomerService_Delete(t *testing.T) {
	ctx := context.Background()
	store := new(mockCustomerStore)
	store.On("DeleteProfile", ctx, "u-1").Return(nil)
	store.On("DeleteProfile", ctx, "ghost").Return(utils.ErrNotFound)
	svc := NewCustomerService(store)

	require.NoError(t, svc.Delete(ctx, "u-1"))
	assert.ErrorIs(t, svc.Delete(ctx, "ghost"), utils.ErrNotFound)
	store.AssertExpectations(t)
}
