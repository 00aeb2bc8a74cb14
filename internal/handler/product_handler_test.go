package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/repository"
	"github.com/chakrahealing/admin_api/internal/service"
	"github.com/chakrahealing/admin_api/internal/utils"
)

// fakeProducts serves a fixed catalogue with sold counts.
type fakeProducts struct {
	products []models.Product
	sold     map[int64]int
}

func (f *fakeProducts) GetAllAdmin(context.Context, int) ([]models.Product, error) {
	out := make([]models.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeProducts) GetByID(_ context.Context, id int64) (*models.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (f *fakeProducts) SoldCounts(context.Context, []int64) (map[int64]int, error) {
	return f.sold, nil
}

func (f *fakeProducts) Create(context.Context, *models.Product) (int64, error) { return 0, nil }
func (f *fakeProducts) Update(context.Context, *models.Product) error          { return nil }
func (f *fakeProducts) ApplyMedia(context.Context, int64, repository.ProductMediaPlan) error {
	return nil
}
func (f *fakeProducts) SoftDelete(context.Context, int64) error { return nil }

func TestProductHandler_StockStatusInPayload(t *testing.T) {
	tracked, untracked := true, false
	zero, two, many := 0, 2, 40
	store := &fakeProducts{
		products: []models.Product{
			{ID: 1, Name: "Amethyst Cluster", TrackInventory: &tracked, Stock: &many},
			{ID: 2, Name: "Rose Quartz", TrackInventory: &tracked, Stock: &two},
			{ID: 3, Name: "Sage Bundle", TrackInventory: &tracked, Stock: &zero},
			{ID: 4, Name: "Singing Bowl", TrackInventory: &untracked, Stock: &zero},
		},
		sold: map[int64]int{2: 7},
	}
	h := NewProductHandler(service.NewProductService(store, nil, 100))
	r := gin.New()
	r.GET("/products", h.ListProducts)
	r.GET("/products/:id", h.GetProduct)

	var list struct {
		Data []map[string]interface{} `json:"data"`
	}
	w := do(r, http.MethodGet, "/products", nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 4)

	got := map[float64]interface{}{}
	for _, p := range list.Data {
		got[p["id"].(float64)] = p["stockStatus"]
	}
	assert.Equal(t, map[float64]interface{}{
		1: "Active",
		2: "Low Stock",
		3: "Out of Stock",
		4: "Active",
	}, got)

	var one struct {
		Data map[string]interface{} `json:"data"`
	}
	w = do(r, http.MethodGet, "/products/2", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &one))
	assert.Equal(t, "Low Stock", one.Data["stockStatus"])
	assert.Equal(t, float64(7), one.Data["sold"])
	assert.Equal(t, "P002", one.Data["displayId"])

	w = do(r, http.MethodGet, "/products/99", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
