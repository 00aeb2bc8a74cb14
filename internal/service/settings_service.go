package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/chakrahealing/admin_api/internal/listing"
	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/utils"
	"github.com/chakrahealing/admin_api/pkg/rolefn"
)

// SettingsService backs the settings page: the caller's own profile and the
// role manager.
type SettingsService struct {
	users UserStore
	roles RoleClient
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(users UserStore, roles RoleClient) *SettingsService {
	return &SettingsService{users: users, roles: roles}
}

// Profile returns the signed-in admin's profile.
func (s *SettingsService) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	return s.users.GetProfile(ctx, userID)
}

// UpdateProfile validates and writes the admin's own profile, then re-reads it.
func (s *SettingsService) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.Profile, error) {
	if err := validateStruct(upd); err != nil {
		return nil, err
	}
	if err := s.users.UpdateProfile(ctx, userID, upd); err != nil {
		return nil, err
	}
	return s.users.GetProfile(ctx, userID)
}

// ListUsers returns one page of users with their roles.
func (s *SettingsService) ListUsers(ctx context.Context, q listing.Query) (listing.Page[models.UserWithRole], error) {
	users, err := s.users.ListUsersWithRoles(ctx)
	if err != nil {
		return listing.Page[models.UserWithRole]{}, err
	}
	return listing.Apply(users, q, listing.UserMatch(q)), nil
}

// Grant asks the privileged function to give targetID the role. Super admin
// targets are refused before any remote call. Nothing is written locally.
func (s *SettingsService) Grant(ctx context.Context, callerToken, targetID, role string) error {
	r := models.Role(role)
	if !r.Grantable() {
		return fmt.Errorf("%w: %q", utils.ErrInvalidRole, role)
	}
	if err := s.guardTarget(ctx, targetID); err != nil {
		return err
	}
	if err := s.roles.Grant(ctx, callerToken, targetID, role); err != nil {
		log.Error().Err(err).Str("target_user_id", targetID).Str("role", role).Msg("Grant role failed")
		return remoteError(err)
	}
	log.Info().Str("target_user_id", targetID).Str("role", role).Msg("Role granted")
	return nil
}

// Revoke asks the privileged function to downgrade targetID to employee.
func (s *SettingsService) Revoke(ctx context.Context, callerToken, targetID string) error {
	if err := s.guardTarget(ctx, targetID); err != nil {
		return err
	}
	if err := s.roles.Revoke(ctx, callerToken, targetID); err != nil {
		log.Error().Err(err).Str("target_user_id", targetID).Msg("Revoke role failed")
		return remoteError(err)
	}
	log.Info().Str("target_user_id", targetID).Msg("Role revoked")
	return nil
}

func (s *SettingsService) guardTarget(ctx context.Context, targetID string) error {
	current, err := s.users.GetRole(ctx, targetID)
	if err != nil {
		return err
	}
	if current == models.RoleSuperAdmin {
		return utils.ErrSuperAdminImmutable
	}
	return nil
}

func remoteError(err error) error {
	var rerr *rolefn.Error
	if errors.As(err, &rerr) {
		return fmt.Errorf("%w: %s", utils.ErrRemoteFunction, rerr.Message)
	}
	return fmt.Errorf("%w: %v", utils.ErrRemoteFunction, err)
}
