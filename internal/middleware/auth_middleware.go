package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/utils"
)

// RequirePanelAccess lets admins and super admins through.
func RequirePanelAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetRole(c).CanAccessPanel() {
			utils.Error(c, 403, "NO_ACCESS", "You do not have access to the admin panel")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole lets only the listed roles through. It must run after JWTMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		utils.Error(c, 403, "FORBIDDEN", "Insufficient role")
		c.Abort()
	}
}

// GetUserID returns the authenticated user id.
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// GetRole returns the role carried by the token.
func GetRole(c *gin.Context) models.Role {
	return models.ParseRole(c.GetString(ctxRole))
}

// GetClaims returns the validated token claims, or nil.
func GetClaims(c *gin.Context) *utils.Claims {
	v, ok := c.Get(ctxClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*utils.Claims)
	return claims
}

// GetToken returns the raw bearer token of the request.
func GetToken(c *gin.Context) string {
	return c.GetString(ctxToken)
}
