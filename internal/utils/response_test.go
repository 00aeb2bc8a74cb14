package utils

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError_MapsSentinels(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err      error
		status   int
		wantCode string
	}{
		{ErrNotFound, 404, "NOT_FOUND"},
		{fmt.Errorf("get order: %w", ErrNotFound), 404, "NOT_FOUND"},
		{ErrOrderNotPaid, 409, "ORDER_NOT_PAID"},
		{ErrInvalidCredentials, 401, "INVALID_CREDENTIALS"},
		{ErrNoPanelAccess, 403, "NO_ACCESS"},
		{ErrSuperAdminImmutable, 403, "SUPER_ADMIN_IMMUTABLE"},
		{fmt.Errorf("%w: boom", ErrRemoteFunction), 502, "ROLE_FUNCTION_FAILED"},
		{fmt.Errorf("db down"), 500, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("request_id", "req-1")

		RespondError(c, tt.err, "Operation failed")

		assert.Equal(t, tt.status, w.Code)
		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, tt.wantCode, resp.Error.Code)
		assert.Equal(t, "req-1", resp.Meta.RequestID)
	}
}

func TestSuccessWithPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessWithPagination(c, 200, "ok", []int{1, 2}, 2, 10, 21)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta.Pagination)
	assert.Equal(t, 3, resp.Meta.Pagination.TotalPages)
	assert.Equal(t, 2, resp.Meta.Pagination.Page)
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, &Pagination{Page: 1, Limit: 10, TotalItems: 0, TotalPages: 0}, NewPagination(0, 0, 0))
	assert.Equal(t, &Pagination{Page: 2, Limit: 25, TotalItems: 51, TotalPages: 3}, NewPagination(2, 25, 51))
}
