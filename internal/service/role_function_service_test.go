package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/utils"
)

func TestRoleFunctionService(t *testing.T) {
	ctx := context.Background()

	superCaller := func(users *mockUserStore) {
		users.On("GetRole", ctx, "root").Return(models.RoleSuperAdmin, nil)
	}

	t.Run("grant sets role", func(t *testing.T) {
		users := new(mockUserStore)
		superCaller(users)
		users.On("GetByID", ctx, "u-2").Return(&models.User{ID: "u-2"}, nil)
		users.On("GetRole", ctx, "u-2").Return(models.RoleEmployee, nil)
		users.On("SetRole", ctx, "u-2", models.RoleAdmin).Return(nil)

		role, err := NewRoleFunctionService(users).Grant(ctx, "root", "u-2", "admin")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, role)
		users.AssertExpectations(t)
	})

	t.Run("revoke downgrades to employee", func(t *testing.T) {
		users := new(mockUserStore)
		superCaller(users)
		users.On("GetByID", ctx, "u-3").Return(&models.User{ID: "u-3"}, nil)
		users.On("GetRole", ctx, "u-3").Return(models.RoleAdmin, nil)
		users.On("SetRole", ctx, "u-3", models.RoleEmployee).Return(nil)

		role, err := NewRoleFunctionService(users).Revoke(ctx, "root", "u-3")
		require.NoError(t, err)
		assert.Equal(t, models.RoleEmployee, role)
	})

	t.Run("caller must be super admin", func(t *testing.T) {
		users := new(mockUserStore)
		users.On("GetRole", ctx, "boss").Return(models.RoleAdmin, nil)

		_, err := NewRoleFunctionService(users).Revoke(ctx, "boss", "u-3")
		assert.ErrorIs(t, err, utils.ErrForbidden)
		users.AssertNotCalled(t, "SetRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("super admin target is immutable", func(t *testing.T) {
		users := new(mockUserStore)
		superCaller(users)
		users.On("GetByID", ctx, "root-2").Return(&models.User{ID: "root-2"}, nil)
		users.On("GetRole", ctx, "root-2").Return(models.RoleSuperAdmin, nil)

		_, err := NewRoleFunctionService(users).Grant(ctx, "root", "root-2", "employee")
		assert.ErrorIs(t, err, utils.ErrSuperAdminImmutable)
	})

	t.Run("missing target", func(t *testing.T) {
		users := new(mockUserStore)
		superCaller(users)
		users.On("GetByID", ctx, "ghost").Return(nil, utils.ErrNotFound)

		_, err := NewRoleFunctionService(users).Grant(ctx, "root", "ghost", "admin")
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("unknown role", func(t *testing.T) {
		users := new(mockUserStore)
		_, err := NewRoleFunctionService(users).Grant(ctx, "root", "u-2", "owner")
		assert.ErrorIs(t, err, utils.ErrInvalidRole)
		users.AssertNotCalled(t, "GetRole", mock.Anything, mock.Anything)
	})
}
