package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	InitJWT("unit-test-secret", time.Hour)

	token, claims, err := GenerateJWT("u-1", "admin@example.com", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
	assert.InDelta(t, time.Hour.Seconds(), claims.RemainingTTL().Seconds(), 5)

	parsed, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", parsed.UserID)
	assert.Equal(t, "admin@example.com", parsed.Email)
	assert.Equal(t, "admin", parsed.Role)
	assert.Equal(t, claims.ID, parsed.ID)
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	InitJWT("first-secret", time.Hour)
	token, _, err := GenerateJWT("u-1", "a@example.com", "admin")
	require.NoError(t, err)

	InitJWT("second-secret", time.Hour)
	_, err = ValidateJWT(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestValidateJWT_Garbage(t *testing.T) {
	InitJWT("unit-test-secret", time.Hour)
	_, err := ValidateJWT("not-a-token")
	assert.Error(t, err)
}

func TestHashToken(t *testing.T) {
	a := HashToken("rst_abc", "secret")
	assert.Len(t, a, 64)
	assert.Equal(t, a, HashToken("rst_abc", "secret"))
	assert.NotEqual(t, a, HashToken("rst_abc", "other"))
}

func TestGenerateResetToken(t *testing.T) {
	tok, err := GenerateResetToken()
	require.NoError(t, err)
	assert.Len(t, tok, len("rst_")+64)
}
