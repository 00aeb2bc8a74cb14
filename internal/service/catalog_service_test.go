package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/utils"
)

func TestCleanBenefits(t *testing.T) {
	assert.Equal(t, []string{"Calm", "Focus"}, CleanBenefits([]string{" Calm ", "", "  ", "Focus"}))
	assert.Empty(t, CleanBenefits(nil))
}

func TestCatalogService_Save(t *testing.T) {
	ctx := context.Background()
	store := new(mockCatalogStore)
	objects := &fakeObjectStore{}

	store.On("Upsert", ctx, mock.MatchedBy(func(s *models.Service) bool {
		return s.ID == 0 && s.Slug == "reiki-healing" && s.Title == "Reiki Healing"
	})).Return(int64(3), nil)
	store.On("ReplaceBenefits", ctx, int64(3), []string{"Sleep better"}).Return(nil)
	store.On("SetImage", ctx, int64(3), mock.MatchedBy(func(url string) bool {
		return strings.HasPrefix(url, "https://cdn.test/service-images/services/3/1700000000000-")
	})).Return(nil)
	store.On("GetByID", ctx, int64(3)).Return(&models.Service{ID: 3, ImagePath: strPtr("services/3/x.jpg")}, nil)

	svc := NewCatalogService(store, objects)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	got, err := svc.Save(ctx, ServiceInput{Title: " Reiki Healing ", PricePaise: 150000, Benefits: []string{"Sleep better", " "}},
		&Upload{Filename: "reiki.jpg", ContentType: "image/jpeg", Size: 1, Body: strings.NewReader("x")})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/service-images/services/3/x.jpg", got.ImageURL)
	store.AssertExpectations(t)
}

func TestCatalogService_SaveWithoutImage(t *testing.T) {
	ctx := context.Background()
	store := new(mockCatalogStore)

	store.On("Upsert", ctx, mock.Anything).Return(int64(4), nil)
	store.On("ReplaceBenefits", ctx, int64(4), []string{}).Return(nil)
	store.On("GetByID", ctx, int64(4)).Return(&models.Service{ID: 4}, nil)

	_, err := NewCatalogService(store, &fakeObjectStore{}).Save(ctx, ServiceInput{ID: 4, Title: "Aura Reading"}, nil)
	require.NoError(t, err)
	store.AssertNotCalled(t, "SetImage", mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogService_SaveUploadFailure(t *testing.T) {
	ctx := context.Background()
	store := new(mockCatalogStore)
	store.On("Upsert", ctx, mock.Anything).Return(int64(5), nil)
	store.On("ReplaceBenefits", ctx, int64(5), mock.Anything).Return(nil)

	objects := &fakeObjectStore{err: utils.ErrStorageUnavailable}
	_, err := NewCatalogService(store, objects).Save(ctx, ServiceInput{Title: "Tarot"},
		&Upload{Filename: "t.png", Body: strings.NewReader("x"), Size: 1})
	assert.True(t, errors.Is(err, utils.ErrStorageUnavailable))
	store.AssertNotCalled(t, "SetImage", mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogService_SaveRequiresTitle(t *testing.T) {
	store := new(mockCatalogStore)
	_, err := NewCatalogService(store, &fakeObjectStore{}).Save(context.Background(), ServiceInput{Title: "  "}, nil)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
	store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
