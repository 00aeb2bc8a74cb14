package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chakrahealing/admin_api/internal/utils"
)

// ResetData is stored against a password reset token.
type ResetData struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// TokenCache keeps the logout denylist and pending password resets.
type TokenCache struct {
	redis  *RedisClient
	secret string
}

// NewTokenCache creates a new TokenCache. secret keys the digests of reset
// tokens so raw tokens never reach Redis.
func NewTokenCache(redis *RedisClient, secret string) *TokenCache {
	return &TokenCache{redis: redis, secret: secret}
}

// keyRevoked returns the Redis key for a revoked JWT id.
func (c *TokenCache) keyRevoked(jti string) string {
	return fmt.Sprintf("auth:revoked:%s", jti)
}

// keyReset returns the Redis key for a reset token digest.
func (c *TokenCache) keyReset(token string) string {
	return fmt.Sprintf("auth:reset:%s", utils.HashToken(token, c.secret))
}

// Revoke denylists a JWT id until it would have expired anyway.
func (c *TokenCache) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	return c.redis.Set(ctx, c.keyRevoked(jti), "1", ttl)
}

// IsRevoked reports whether a JWT id has been denylisted.
func (c *TokenCache) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	return c.redis.Exists(ctx, c.keyRevoked(jti))
}

// SaveReset stores reset data under token for ttl.
func (c *TokenCache) SaveReset(ctx context.Context, token string, data *ResetData, ttl time.Duration) error {
	data.CreatedAt = time.Now()

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal reset data: %w", err)
	}

	if err := c.redis.Set(ctx, c.keyReset(token), string(jsonData), ttl); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	return nil
}

// ConsumeReset returns the data for token and deletes it so it cannot be reused.
func (c *TokenCache) ConsumeReset(ctx context.Context, token string) (*ResetData, error) {
	jsonData, err := c.redis.GetDel(ctx, c.keyReset(token))
	if errors.Is(err, ErrCacheMiss) {
		return nil, utils.ErrResetTokenInvalid
	}
	if err != nil {
		return nil, err
	}

	var data ResetData
	if err := json.Unmarshal([]byte(jsonData), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reset data: %w", err)
	}
	return &data, nil
}
