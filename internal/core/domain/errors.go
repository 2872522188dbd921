package domain

import "errors"

// Validation errors. Raised before any upstream call.
var (
	ErrInvalidPhone     = errors.New("enter 10 digit number")
	ErrPasswordRequired = errors.New("password is required")
	ErrInvalidAmount    = errors.New("amount must be > 0")
)

// Authentication and session errors.
var (
	ErrAuthFailed          = errors.New("login failed")
	ErrRefreshFailed       = errors.New("refresh failed")
	ErrMissingRefreshToken = errors.New("missing refresh token")
	ErrSessionExpired      = errors.New("session expired")
	ErrUnauthenticated     = errors.New("not authenticated")
)

var (
	ErrNetwork         = errors.New("network error")
	ErrForbidden       = errors.New("access forbidden")
	ErrUnknownResource = errors.New("unknown resource")
	ErrUpstream        = errors.New("upstream request failed")
)

// AuthError is an authentication failure with the message to show the user.
// It unwraps to its Kind so callers can match with errors.Is.
type AuthError struct {
	Kind    error
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Kind
}

// NewAuthError builds an AuthError, falling back to fallback when the
// upstream supplied no message.
func NewAuthError(kind error, message, fallback string) *AuthError {
	if message == "" {
		message = fallback
	}
	return &AuthError{Kind: kind, Message: message}
}

// UpstreamError is a non-2xx answer from the upstream API.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}
