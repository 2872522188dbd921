package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/elffinance/microfin-gateway/internal/infrastructure/tokenseal"
)

const defaultTokenTTL = 30 * 24 * time.Hour

// RefreshTokenRepository keeps one sealed refresh token per device.
// Key format: refreshToken:<device_id>
type RefreshTokenRepository struct {
	client redis.Cmdable
	sealer tokenseal.Sealer
	ttl    time.Duration
}

// NewRefreshTokenRepository wraps client. If ttl <= 0, defaultTokenTTL is used.
func NewRefreshTokenRepository(client redis.Cmdable, sealer tokenseal.Sealer, ttl time.Duration) *RefreshTokenRepository {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &RefreshTokenRepository{client: client, sealer: sealer, ttl: ttl}
}

func (r *RefreshTokenRepository) Load(ctx context.Context, deviceID string) (string, error) {
	val, err := r.client.Get(ctx, r.key(deviceID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load refresh token: %w", err)
	}

	token, err := r.sealer.Open(val)
	if err != nil {
		return "", fmt.Errorf("load refresh token: %w", err)
	}
	return token, nil
}

// Save overwrites the device's token, so at most one is kept per device.
func (r *RefreshTokenRepository) Save(ctx context.Context, deviceID, token string) error {
	sealed, err := r.sealer.Seal(token)
	if err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	if err := r.client.Set(ctx, r.key(deviceID), sealed, r.ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) Delete(ctx context.Context, deviceID string) error {
	if err := r.client.Del(ctx, r.key(deviceID)).Err(); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) key(deviceID string) string {
	return "refreshToken:" + deviceID
}
