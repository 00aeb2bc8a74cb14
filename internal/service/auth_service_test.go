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
	"golang.org/x/crypto/bcrypt"

	"github.com/chakrahealing/admin_api/internal/cache"
	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/utils"
)

func init() {
	utils.InitJWT("service-test-secret", time.Hour)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

type capturedReset struct {
	email, link string
}

func (c *capturedReset) SendPasswordReset(_ context.Context, email, link string) error {
	c.email, c.link = email, link
	return nil
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: "u-1", Email: "admin@chakra.in", PasswordHash: hashed(t, "s3cret-pass")}

	t.Run("success", func(t *testing.T) {
		users := new(mockUserStore)
		users.On("GetByEmail", ctx, "admin@chakra.in").Return(user, nil)
		users.On("GetRole", ctx, "u-1").Return(models.RoleAdmin, nil)

		res, err := NewAuthService(users, new(mockTokenStore), nil, time.Minute, "").Login(ctx, " admin@chakra.in ", "s3cret-pass")
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, models.RoleAdmin, res.User.Role)

		claims, err := utils.ValidateJWT(res.Token)
		require.NoError(t, err)
		assert.Equal(t, "u-1", claims.UserID)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("unknown email and wrong password look the same", func(t *testing.T) {
		users := new(mockUserStore)
		users.On("GetByEmail", ctx, "nobody@chakra.in").Return(nil, utils.ErrNotFound)
		users.On("GetByEmail", ctx, "admin@chakra.in").Return(user, nil)
		svc := NewAuthService(users, new(mockTokenStore), nil, time.Minute, "")

		_, err1 := svc.Login(ctx, "nobody@chakra.in", "whatever")
		_, err2 := svc.Login(ctx, "admin@chakra.in", "wrong")
		assert.ErrorIs(t, err1, utils.ErrInvalidCredentials)
		assert.ErrorIs(t, err2, utils.ErrInvalidCredentials)
		users.AssertNotCalled(t, "GetRole", mock.Anything, mock.Anything)
	})

	t.Run("customer without panel role", func(t *testing.T) {
		users := new(mockUserStore)
		users.On("GetByEmail", ctx, "admin@chakra.in").Return(user, nil)
		users.On("GetRole", ctx, "u-1").Return(models.RoleEmployee, nil)

		res, err := NewAuthService(users, new(mockTokenStore), nil, time.Minute, "").Login(ctx, "admin@chakra.in", "s3cret-pass")
		assert.ErrorIs(t, err, utils.ErrNoPanelAccess)
		assert.Nil(t, res)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	_, claims, err := utils.GenerateJWT("u-1", "admin@chakra.in", "admin")
	require.NoError(t, err)

	tokens := new(mockTokenStore)
	tokens.On("Revoke", ctx, claims.ID, mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 59*time.Minute && ttl <= time.Hour
	})).Return(nil)

	require.NoError(t, NewAuthService(new(mockUserStore), tokens, nil, time.Minute, "").Logout(ctx, claims))
	tokens.AssertExpectations(t)
}

func TestAuthService_ForgotPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("known email stores token and sends link", func(t *testing.T) {
		users := new(mockUserStore)
		tokens := new(mockTokenStore)
		sender := &capturedReset{}
		users.On("GetByEmail", ctx, "admin@chakra.in").Return(&models.User{ID: "u-1", Email: "admin@chakra.in"}, nil)
		tokens.On("SaveReset", ctx, mock.MatchedBy(func(tok string) bool { return strings.HasPrefix(tok, "rst_") }),
			mock.MatchedBy(func(d *cache.ResetData) bool { return d.UserID == "u-1" }), 30*time.Minute).Return(nil)

		svc := NewAuthService(users, tokens, sender, 30*time.Minute, "https://admin.chakra.in/update-password")
		require.NoError(t, svc.ForgotPassword(ctx, "admin@chakra.in"))
		assert.Equal(t, "admin@chakra.in", sender.email)
		assert.True(t, strings.HasPrefix(sender.link, "https://admin.chakra.in/update-password?token=rst_"))
		tokens.AssertExpectations(t)
	})

	t.Run("unknown email still succeeds", func(t *testing.T) {
		users := new(mockUserStore)
		tokens := new(mockTokenStore)
		users.On("GetByEmail", ctx, "ghost@chakra.in").Return(nil, utils.ErrNotFound)

		require.NoError(t, NewAuthService(users, tokens, nil, time.Minute, "").ForgotPassword(ctx, "ghost@chakra.in"))
		tokens.AssertNotCalled(t, "SaveReset", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lookup failure is hidden", func(t *testing.T) {
		users := new(mockUserStore)
		users.On("GetByEmail", ctx, "x@chakra.in").Return(nil, errors.New("db down"))

		assert.NoError(t, NewAuthService(users, new(mockTokenStore), nil, time.Minute, "").ForgotPassword(ctx, "x@chakra.in"))
	})
}

func TestAuthService_UpdatePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("validates before consuming the token", func(t *testing.T) {
		tokens := new(mockTokenStore)
		svc := NewAuthService(new(mockUserStore), tokens, nil, time.Minute, "")

		assert.ErrorIs(t, svc.UpdatePassword(ctx, "rst_x", "short", "short"), utils.ErrInvalidInput)
		assert.ErrorIs(t, svc.UpdatePassword(ctx, "rst_x", "long-enough-1", "long-enough-2"), utils.ErrInvalidInput)
		tokens.AssertNotCalled(t, "ConsumeReset", mock.Anything, mock.Anything)
	})

	t.Run("invalid token", func(t *testing.T) {
		tokens := new(mockTokenStore)
		tokens.On("ConsumeReset", ctx, "rst_gone").Return(nil, utils.ErrResetTokenInvalid)

		err := NewAuthService(new(mockUserStore), tokens, nil, time.Minute, "").UpdatePassword(ctx, "rst_gone", "new-password", "new-password")
		assert.ErrorIs(t, err, utils.ErrResetTokenInvalid)
	})

	t.Run("stores a bcrypt hash", func(t *testing.T) {
		users := new(mockUserStore)
		tokens := new(mockTokenStore)
		tokens.On("ConsumeReset", ctx, "rst_ok").Return(&cache.ResetData{UserID: "u-1"}, nil)
		users.On("UpdatePassword", ctx, "u-1", mock.MatchedBy(func(h string) bool {
			return bcrypt.CompareHashAndPassword([]byte(h), []byte("new-password")) == nil
		})).Return(nil)

		require.NoError(t, NewAuthService(users, tokens, nil, time.Minute, "").UpdatePassword(ctx, "rst_ok", "new-password", "new-password"))
		users.AssertExpectations(t)
	})
}

func TestAuthService_EnsureSuperAdmin(t *testing.T) {
	ctx := context.Background()

	users := new(mockUserStore)
	users.On("GetByEmail", ctx, "root@chakra.in").Return(nil, utils.ErrNotFound)
	users.On("Create", ctx, "root@chakra.in", mock.AnythingOfType("string"), "", models.RoleSuperAdmin).Return("u-root", nil)
	require.NoError(t, NewAuthService(users, new(mockTokenStore), nil, time.Minute, "").EnsureSuperAdmin(ctx, "root@chakra.in", "bootstrap-pass"))
	users.AssertExpectations(t)

	existing := new(mockUserStore)
	existing.On("GetByEmail", ctx, "root@chakra.in").Return(&models.User{ID: "u-root"}, nil)
	require.NoError(t, NewAuthService(existing, new(mockTokenStore), nil, time.Minute, "").EnsureSuperAdmin(ctx, "root@chakra.in", "bootstrap-pass"))
	existing.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	assert.NoError(t, NewAuthService(new(mockUserStore), nil, nil, time.Minute, "").EnsureSuperAdmin(ctx, "", ""))
}
