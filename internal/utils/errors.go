package utils

import "errors"

// Common application errors used across services.
var (
	ErrNotFound            = errors.New("NOT_FOUND")
	ErrInvalidInput        = errors.New("INVALID_INPUT")
	ErrInvalidStatus       = errors.New("INVALID_STATUS")
	ErrOrderNotPaid        = errors.New("ORDER_NOT_PAID")
	ErrInvalidCredentials  = errors.New("INVALID_CREDENTIALS")
	ErrNoPanelAccess       = errors.New("NO_PANEL_ACCESS")
	ErrInvalidToken        = errors.New("INVALID_TOKEN")
	ErrTokenRevoked        = errors.New("TOKEN_REVOKED")
	ErrForbidden           = errors.New("FORBIDDEN")
	ErrSuperAdminImmutable = errors.New("SUPER_ADMIN_IMMUTABLE")
	ErrInvalidRole         = errors.New("INVALID_ROLE")
	ErrResetTokenInvalid   = errors.New("RESET_TOKEN_INVALID")
	ErrUploadTooLarge      = errors.New("UPLOAD_TOO_LARGE")
	ErrStorageUnavailable  = errors.New("STORAGE_UNAVAILABLE")
	ErrRemoteFunction      = errors.New("REMOTE_FUNCTION_FAILED")
)
