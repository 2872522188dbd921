package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/elffinance/microfin-gateway/internal/core/domain"
	"github.com/elffinance/microfin-gateway/internal/core/ports"
	"github.com/elffinance/microfin-gateway/internal/core/session"
)

// Bootstrapper restores a device's session from its persisted refresh token.
type Bootstrapper struct {
	auth   ports.AuthService
	tokens ports.RefreshTokenRepository
	log    zerolog.Logger
}

func NewBootstrapper(auth ports.AuthService, tokens ports.RefreshTokenRepository, log zerolog.Logger) *Bootstrapper {
	return &Bootstrapper{auth: auth, tokens: tokens, log: log}
}

// Run performs one BOOTSTRAPPING -> AUTHENTICATED|UNAUTHENTICATED transition
// for store. It never retries.
func (b *Bootstrapper) Run(ctx context.Context, deviceID string, store *session.Store) domain.BootState {
	if store.Snapshot().IsAuthenticated {
		return domain.BootAuthenticated
	}

	stored, err := b.tokens.Load(ctx, deviceID)
	if err != nil {
		b.log.Warn().Err(err).Str("device", deviceID).Msg("unreadable refresh token, discarding")
		b.discard(ctx, deviceID, store)
		return domain.BootUnauthenticated
	}
	if stored == "" {
		return domain.BootUnauthenticated
	}

	creds, err := b.auth.Refresh(ctx, stored)
	if err != nil {
		b.log.Info().Err(err).Str("device", deviceID).Msg("silent refresh rejected")
		b.discard(ctx, deviceID, store)
		return domain.BootUnauthenticated
	}

	store.Login(domain.Session{
		AccessToken:  creds.AccessToken,
		RefreshToken: stored,
		UserName:     creds.UserName,
		Role:         creds.Role,
	})
	return domain.BootAuthenticated
}

// Ensure runs the bootstrap for dev at most once and returns its terminal
// state. ran reports whether this call performed the run. The run is detached
// from ctx cancellation because other requests of the device wait on it.
func (b *Bootstrapper) Ensure(ctx context.Context, dev *session.Device) (state domain.BootState, ran bool) {
	return dev.Bootstrap(func() domain.BootState {
		return b.Run(context.WithoutCancel(ctx), dev.ID, dev.Store)
	})
}

func (b *Bootstrapper) discard(ctx context.Context, deviceID string, store *session.Store) {
	store.Logout()
	if err := b.tokens.Delete(ctx, deviceID); err != nil {
		b.log.Error().Err(err).Str("device", deviceID).Msg("delete refresh token")
	}
}
