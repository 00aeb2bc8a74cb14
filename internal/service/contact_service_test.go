package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chakrahealing/admin_api/internal/listing"
	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/utils"
)

func TestContactService_List(t *testing.T) {
	ctx := context.Background()
	store := new(mockContactStore)
	store.On("GetAll", ctx).Return([]models.Contact{
		{ID: 1, Name: strPtr("Meera"), Subject: strPtr("Reiki timings")},
		{ID: 2, Name: strPtr("Kabir"), Message: strPtr("Do you ship crystals abroad?")},
	}, nil)
	svc := NewContactService(store)

	page, err := svc.List(ctx, listing.Query{Search: "CRYSTAL", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Items[0].ID)
}

func TestContactService_GetAndDelete(t *testing.T) {
	ctx := context.Background()
	store := new(mockContactStore)
	store.On("GetByID", ctx, int64(1)).Return(&models.Contact{ID: 1}, nil)
	store.On("GetByID", ctx, int64(7)).Return(nil, utils.ErrNotFound)
	store.On("Delete", ctx, int64(1)).Return(nil)
	store.On("Delete", ctx, int64(7)).Return(utils.ErrNotFound)
	svc := NewContactService(store)

	got, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)

	_, err = svc.Get(ctx, 7)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, 1))
	assert.ErrorIs(t, svc.Delete(ctx, 7), utils.ErrNotFound)
	store.AssertExpectations(t)
}
