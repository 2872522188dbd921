package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/elffinance/microfin-gateway/internal/core/domain"
	"github.com/elffinance/microfin-gateway/internal/core/ports"
	"github.com/elffinance/microfin-gateway/internal/core/session"
)

// SessionService ties the auth service, the persisted refresh tokens and the
// per-device stores together.
type SessionService struct {
	auth   ports.AuthService
	tokens ports.RefreshTokenRepository
	boot   *Bootstrapper
	log    zerolog.Logger
}

func NewSessionService(auth ports.AuthService, tokens ports.RefreshTokenRepository, log zerolog.Logger) *SessionService {
	return &SessionService{
		auth:   auth,
		tokens: tokens,
		boot:   NewBootstrapper(auth, tokens, log),
		log:    log,
	}
}

// SignIn logs in and populates the device's store.
func (s *SessionService) SignIn(ctx context.Context, dev *session.Device, phoneNumber, password string) (domain.Session, error) {
	creds, err := s.auth.Login(ctx, dev.ID, phoneNumber, password)
	if err != nil {
		return domain.Session{}, err
	}

	dev.Store.Login(domain.Session{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		UserName:     creds.UserName,
		Role:         creds.Role,
	})
	return dev.Store.Snapshot(), nil
}

// SignOut clears the store and the persisted refresh token.
func (s *SessionService) SignOut(ctx context.Context, dev *session.Device) error {
	dev.Store.Logout()
	if err := s.tokens.Delete(ctx, dev.ID); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// Bootstrap runs the device's one-shot bootstrap if it has not run yet.
func (s *SessionService) Bootstrap(ctx context.Context, dev *session.Device) (domain.BootState, bool) {
	return s.boot.Ensure(ctx, dev)
}

// RefreshSession swaps the device's access token for a fresh one. A failed
// refresh means the session can no longer be trusted: the store and the
// persisted token are cleared and ErrSessionExpired is returned.
func (s *SessionService) RefreshSession(ctx context.Context, dev *session.Device) error {
	cur := dev.Store.Snapshot()
	token := cur.RefreshToken
	if token == "" {
		stored, err := s.tokens.Load(ctx, dev.ID)
		if err != nil {
			s.log.Warn().Err(err).Str("device", dev.ID).Msg("load refresh token")
		}
		token = stored
	}

	creds, err := s.auth.Refresh(ctx, token)
	if err != nil {
		if signOutErr := s.SignOut(ctx, dev); signOutErr != nil {
			s.log.Error().Err(signOutErr).Str("device", dev.ID).Msg("hard logout")
		}
		return fmt.Errorf("%w: %v", domain.ErrSessionExpired, err)
	}

	// A refresh without a role name keeps the current role. A name that
	// does not map to a role still demotes the session to none.
	role := creds.Role
	if creds.RoleName == "" {
		role = cur.Role
	}
	dev.Store.Login(domain.Session{
		AccessToken:  creds.AccessToken,
		RefreshToken: token,
		UserName:     creds.UserName,
		Role:         role,
	})
	return nil
}
