package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func TestProduct_StockStatus(t *testing.T) {
	tests := []struct {
		name  string
		track *bool
		stock *int
		want  StockStatus
	}{
		{"untracked with zero stock", boolPtr(false), intPtr(0), StockActive},
		{"untracked with negative stock", boolPtr(false), intPtr(-3), StockActive},
		{"tracked out of stock", boolPtr(true), intPtr(0), StockOutOfStock},
		{"tracked negative", boolPtr(true), intPtr(-1), StockOutOfStock},
		{"tracked low", boolPtr(true), intPtr(4), StockLow},
		{"tracked at threshold", boolPtr(true), intPtr(5), StockActive},
		{"tracking unset defaults to tracked", nil, intPtr(2), StockLow},
		{"stock unset", boolPtr(true), nil, StockOutOfStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{TrackInventory: tt.track, Stock: tt.stock}
			assert.Equal(t, tt.want, p.StockStatus())
		})
	}
}

func TestReviewAndCustomerHelpers(t *testing.T) {
	r := &Review{ID: 12}
	assert.Equal(t, ReviewPending, r.EffectiveStatus())
	assert.Equal(t, "R0012", r.DisplayID())
	r.Status = strPtr(ReviewApproved)
	assert.Equal(t, ReviewApproved, r.EffectiveStatus())

	assert.True(t, ValidReviewStatus("rejected"))
	assert.False(t, ValidReviewStatus("spam"))

	assert.Equal(t, "inactive", (&CustomerStats{}).Status())
	assert.Equal(t, "active", (&CustomerStats{TotalSessions: 1}).Status())
}

func TestRole(t *testing.T) {
	assert.True(t, RoleSuperAdmin.CanAccessPanel())
	assert.True(t, RoleAdmin.CanAccessPanel())
	assert.False(t, RoleEmployee.CanAccessPanel())

	assert.Equal(t, RoleEmployee, ParseRole("owner"))
	assert.Equal(t, RoleAdmin, ParseRole("admin"))

	assert.False(t, RoleSuperAdmin.Grantable())
	assert.True(t, RoleEmployee.Grantable())
}

func TestJSONB(t *testing.T) {
	var j JSONB
	assert.NoError(t, j.Scan(nil))
	b, err := j.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, "null", string(b))

	assert.NoError(t, j.Scan([]byte(`{"city":"Pune"}`)))
	assert.Equal(t, `{"city":"Pune"}`, j.String())

	assert.NoError(t, j.Scan(`"12 MG Road"`))
	assert.Equal(t, "12 MG Road", j.String())
}
