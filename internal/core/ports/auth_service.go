package ports

import (
	"context"

	"github.com/elffinance/microfin-gateway/internal/core/domain"
)

// AuthService logs in with phone and password and refreshes access tokens.
type AuthService interface {
	// Login validates and normalizes the credentials, authenticates upstream
	// and persists the returned refresh token for deviceID.
	Login(ctx context.Context, deviceID, phoneNumber, password string) (domain.Credentials, error)
	// Refresh exchanges a refresh token for a new access token. It never
	// persists anything.
	Refresh(ctx context.Context, refreshToken string) (domain.Credentials, error)
}
