package domain

import "errors"

// Authentication and session errors
var (
	// Local authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")

	// Session errors
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrSessionPersistence = errors.New("session persistence failure")

	// Federated login errors
	ErrFederatedDisabled   = errors.New("federated login disabled")
	ErrStateMismatch       = errors.New("state mismatch")
	ErrMissingEmailClaim   = errors.New("missing email claim")
	ErrProviderUnavailable = errors.New("identity provider unavailable")
	ErrSSOUserMismatch     = errors.New("sso user mismatch")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidEmail = errors.New("invalid email")

	// General errors
	ErrInternal = errors.New("internal error")
	ErrConflict = errors.New("resource conflict")
)
