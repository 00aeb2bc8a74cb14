package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/chakrahealing/admin_api/internal/utils"
)

// Context keys set by JWTMiddleware.
const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
	ctxRole   = "role"
	ctxClaims = "claims"
	ctxToken  = "token"
)

// RevocationChecker reports whether a token id was revoked at logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// JWTMiddleware authenticates panel users by bearer token.
type JWTMiddleware struct {
	revoked     RevocationChecker
	rateLimiter *InvalidAuthRateLimiter
}

// NewJWTMiddleware constructs a JWTMiddleware. revoked may be nil.
func NewJWTMiddleware(revoked RevocationChecker, rateLimiter *InvalidAuthRateLimiter) *JWTMiddleware {
	if rateLimiter == nil {
		rateLimiter = NewInvalidAuthRateLimiter()
	}
	return &JWTMiddleware{revoked: revoked, rateLimiter: rateLimiter}
}

// Handle validates the Authorization header and stores the claims on the context.
func (m *JWTMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.reject(c, "UNAUTHORIZED", "Missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			m.reject(c, "UNAUTHORIZED", "Invalid authorization header")
			return
		}
		token := strings.TrimSpace(parts[1])

		claims, err := m.Authenticate(c.Request.Context(), token)
		if err != nil {
			m.reject(c, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxRole, claims.Role)
		c.Set(ctxClaims, claims)
		c.Set(ctxToken, token)
		c.Next()
	}
}

// Authenticate validates a raw token and checks the logout denylist. It is
// also used by endpoints that take the token from the query string.
func (m *JWTMiddleware) Authenticate(ctx context.Context, token string) (*utils.Claims, error) {
	claims, err := utils.ValidateJWT(token)
	if err != nil {
		return nil, err
	}
	if m.revoked == nil {
		return claims, nil
	}
	revoked, err := m.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		// Fail closed; a denylisted token must not slip through a Redis outage.
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Token denylist lookup failed")
		return nil, err
	}
	if revoked {
		return nil, utils.ErrTokenRevoked
	}
	return claims, nil
}

func (m *JWTMiddleware) reject(c *gin.Context, code, message string) {
	if !m.rateLimiter.Allow(c.ClientIP()) {
		utils.Error(c, 429, "TOO_MANY_REQUESTS", "Too many invalid authentication attempts")
		c.Abort()
		return
	}
	utils.Error(c, 401, code, message)
	c.Abort()
}
