package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/chakrahealing/admin_api/internal/cache"
	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/utils"
)

// MinPasswordLength is the shortest password accepted on reset.
const MinPasswordLength = 8

// ResetSender delivers password reset links.
type ResetSender interface {
	SendPasswordReset(ctx context.Context, email, link string) error
}

// LogResetSender writes reset links to the debug log. Production runs at
// info level, so links are never logged there.
type LogResetSender struct{}

// SendPasswordReset logs the link instead of mailing it.
func (LogResetSender) SendPasswordReset(_ context.Context, email, link string) error {
	log.Debug().Str("email", email).Str("link", link).Msg("Password reset link issued")
	return nil
}

// LoginResult is returned on successful sign-in.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *Me       `json:"user"`
}

// Me describes the signed-in panel user.
type Me struct {
	ID      string          `json:"id"`
	Email   string          `json:"email"`
	Role    models.Role     `json:"role"`
	Profile *models.Profile `json:"profile,omitempty"`
}

// AuthService signs panel users in and out and handles password resets.
type AuthService struct {
	users    UserStore
	tokens   TokenStore
	sender   ResetSender
	resetTTL time.Duration
	resetURL string
}

// NewAuthService constructs an AuthService.
func NewAuthService(users UserStore, tokens TokenStore, sender ResetSender, resetTTL time.Duration, resetURL string) *AuthService {
	if sender == nil {
		sender = LogResetSender{}
	}
	return &AuthService{users: users, tokens: tokens, sender: sender, resetTTL: resetTTL, resetURL: resetURL}
}

// Login verifies the password and the panel role. Unknown emails and wrong
// passwords both yield ErrInvalidCredentials. Users without an admin role get
// ErrNoPanelAccess and no token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, utils.ErrNotFound) {
		log.Warn().Str("email", email).Msg("Login failed: unknown email")
		return nil, utils.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("Login failed: password mismatch")
		return nil, utils.ErrInvalidCredentials
	}

	role, err := s.users.GetRole(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if !role.CanAccessPanel() {
		log.Warn().Str("user_id", user.ID).Str("role", string(role)).Msg("Login refused: no panel access")
		return nil, utils.ErrNoPanelAccess
	}

	token, claims, err := utils.GenerateJWT(user.ID, user.Email, string(role))
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("Login successful")
	return &LoginResult{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      &Me{ID: user.ID, Email: user.Email, Role: role},
	}, nil
}

// Logout denylists the token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, claims *utils.Claims) error {
	return s.tokens.Revoke(ctx, claims.ID, claims.RemainingTTL())
}

// Me returns the signed-in user with the profile if one exists.
func (s *AuthService) Me(ctx context.Context, claims *utils.Claims) (*Me, error) {
	me := &Me{ID: claims.UserID, Email: claims.Email, Role: models.ParseRole(claims.Role)}
	profile, err := s.users.GetProfile(ctx, claims.UserID)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return nil, err
	}
	me.Profile = profile
	return me, nil
}

// ForgotPassword issues a reset token for the email if it belongs to a user.
// It never reports whether the email exists.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, utils.ErrNotFound) {
			log.Error().Err(err).Msg("Password reset lookup failed")
		}
		return nil
	}

	token, err := utils.GenerateResetToken()
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate reset token")
		return nil
	}
	data := &cache.ResetData{UserID: user.ID, Email: user.Email, CreatedAt: time.Now()}
	if err := s.tokens.SaveReset(ctx, token, data, s.resetTTL); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to store reset token")
		return nil
	}

	if err := s.sender.SendPasswordReset(ctx, user.Email, s.resetLink(token)); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to send reset link")
	}
	return nil
}

func (s *AuthService) resetLink(token string) string {
	sep := "?"
	if strings.Contains(s.resetURL, "?") {
		sep = "&"
	}
	return s.resetURL + sep + "token=" + url.QueryEscape(token)
}

// UpdatePassword consumes a reset token and stores the new password.
func (s *AuthService) UpdatePassword(ctx context.Context, token, password, confirm string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", utils.ErrInvalidInput, MinPasswordLength)
	}
	if password != confirm {
		return fmt.Errorf("%w: passwords do not match", utils.ErrInvalidInput)
	}

	data, err := s.tokens.ConsumeReset(ctx, token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, data.UserID, string(hash)); err != nil {
		return err
	}
	log.Info().Str("user_id", data.UserID).Msg("Password updated")
	return nil
}

// EnsureSuperAdmin creates a super admin with the given credentials unless a
// user with that email already exists.
func (s *AuthService) EnsureSuperAdmin(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, utils.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	id, err := s.users.Create(ctx, email, string(hash), "", models.RoleSuperAdmin)
	if err != nil {
		return err
	}
	log.Info().Str("user_id", id).Str("email", email).Msg("Bootstrap super admin created")
	return nil
}
