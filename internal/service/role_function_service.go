package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/utils"
)

// RoleFunctionService is the privileged side of role management served
// under /functions/v1. It is the only code that writes user_roles.
type RoleFunctionService struct {
	users UserStore
}

// NewRoleFunctionService constructs a RoleFunctionService over the user store.
func NewRoleFunctionService(users UserStore) *RoleFunctionService {
	return &RoleFunctionService{users: users}
}

// Grant sets targetID's role. The caller must currently be a super admin.
func (s *RoleFunctionService) Grant(ctx context.Context, callerID, targetID, role string) (models.Role, error) {
	r := models.Role(role)
	if !r.Grantable() {
		return "", fmt.Errorf("%w: %q", utils.ErrInvalidRole, role)
	}
	if err := s.authorize(ctx, callerID, targetID); err != nil {
		return "", err
	}
	if err := s.users.SetRole(ctx, targetID, r); err != nil {
		return "", err
	}
	log.Info().Str("caller_id", callerID).Str("target_user_id", targetID).Str("role", role).Msg("Role set")
	return r, nil
}

// Revoke downgrades targetID to employee whatever its previous role was.
func (s *RoleFunctionService) Revoke(ctx context.Context, callerID, targetID string) (models.Role, error) {
	if err := s.authorize(ctx, callerID, targetID); err != nil {
		return "", err
	}
	if err := s.users.SetRole(ctx, targetID, models.RoleEmployee); err != nil {
		return "", err
	}
	log.Info().Str("caller_id", callerID).Str("target_user_id", targetID).Msg("Role revoked to employee")
	return models.RoleEmployee, nil
}

func (s *RoleFunctionService) authorize(ctx context.Context, callerID, targetID string) error {
	callerRole, err := s.users.GetRole(ctx, callerID)
	if err != nil {
		return err
	}
	if callerRole != models.RoleSuperAdmin {
		return utils.ErrForbidden
	}
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return err
	}
	targetRole, err := s.users.GetRole(ctx, targetID)
	if err != nil {
		return err
	}
	if targetRole == models.RoleSuperAdmin {
		return utils.ErrSuperAdminImmutable
	}
	return nil
}
