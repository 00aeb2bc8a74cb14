package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/service"
	"github.com/chakrahealing/admin_api/internal/utils"
	"github.com/chakrahealing/admin_api/pkg/rolefn"
)

// TokenAuthenticator validates a raw bearer token.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*utils.Claims, error)
}

// RoleFunctionHandler serves the privileged grant-role and revoke-role
// functions. Responses use the function wire format {ok, role} or {error}
// rather than the API envelope.
type RoleFunctionHandler struct {
	roles *service.RoleFunctionService
	auth  TokenAuthenticator
}

// NewRoleFunctionHandler constructs a RoleFunctionHandler.
func NewRoleFunctionHandler(roles *service.RoleFunctionService, auth TokenAuthenticator) *RoleFunctionHandler {
	return &RoleFunctionHandler{roles: roles, auth: auth}
}

// GrantRole handles POST /functions/v1/grant-role
func (h *RoleFunctionHandler) GrantRole(c *gin.Context) {
	claims, ok := h.caller(c)
	if !ok {
		return
	}
	var req rolefn.GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TargetUserID == "" || req.Role == "" {
		c.JSON(http.StatusBadRequest, rolefn.Response{Error: "targetUserId and role are required"})
		return
	}
	role, err := h.roles.Grant(c.Request.Context(), claims.UserID, req.TargetUserID, req.Role)
	if err != nil {
		writeFunctionError(c, err)
		return
	}
	c.JSON(http.StatusOK, rolefn.Response{OK: true, Role: string(role)})
}

// RevokeRole handles POST /functions/v1/revoke-role
func (h *RoleFunctionHandler) RevokeRole(c *gin.Context) {
	claims, ok := h.caller(c)
	if !ok {
		return
	}
	var req rolefn.RevokeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TargetUserID == "" {
		c.JSON(http.StatusBadRequest, rolefn.Response{Error: "targetUserId is required"})
		return
	}
	role, err := h.roles.Revoke(c.Request.Context(), claims.UserID, req.TargetUserID)
	if err != nil {
		writeFunctionError(c, err)
		return
	}
	c.JSON(http.StatusOK, rolefn.Response{OK: true, Role: string(role)})
}

func (h *RoleFunctionHandler) caller(c *gin.Context) (*utils.Claims, bool) {
	header := c.GetHeader("Authorization")
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" || token == header {
		c.JSON(http.StatusUnauthorized, rolefn.Response{Error: "Missing bearer token"})
		return nil, false
	}
	claims, err := h.auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, rolefn.Response{Error: "Invalid or expired token"})
		return nil, false
	}
	return claims, true
}

func writeFunctionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrForbidden):
		c.JSON(http.StatusForbidden, rolefn.Response{Error: "Only super admins can change roles"})
	case errors.Is(err, utils.ErrSuperAdminImmutable):
		c.JSON(http.StatusForbidden, rolefn.Response{Error: "Cannot change role of super_admin"})
	case errors.Is(err, utils.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, rolefn.Response{Error: "Role must be " + string(models.RoleAdmin) + " or " + string(models.RoleEmployee)})
	case errors.Is(err, utils.ErrNotFound):
		c.JSON(http.StatusNotFound, rolefn.Response{Error: "User not found"})
	default:
		c.JSON(http.StatusInternalServerError, rolefn.Response{Error: "Failed"})
	}
}
