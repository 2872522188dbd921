package ports

import "context"

// RefreshTokenRepository persists one refresh token per device so a session
// survives gateway restarts.
type RefreshTokenRepository interface {
	// Load returns the stored token, or "" when the device has none.
	Load(ctx context.Context, deviceID string) (string, error)
	// Save replaces any token already stored for the device.
	Save(ctx context.Context, deviceID, token string) error
	Delete(ctx context.Context, deviceID string) error
}
