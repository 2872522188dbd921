package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/elffinance/microfin-gateway/internal/core/domain"
	"github.com/elffinance/microfin-gateway/internal/core/ports"
)

const (
	DefaultPhonePrefix = "+91"

	msgLoginFailed    = "Login failed"
	msgRefreshFailed  = "Refresh failed"
	msgMissingRefresh = "Missing refresh token"
	msgNetwork        = "Network error"
)

var localPhone = regexp.MustCompile(`^[0-9]{10}$`)

// AuthService implements login and refresh against the upstream API.
type AuthService struct {
	client      ports.AuthClient
	tokens      ports.RefreshTokenRepository
	phonePrefix string
	log         zerolog.Logger
}

func NewAuthService(client ports.AuthClient, tokens ports.RefreshTokenRepository, phonePrefix string, log zerolog.Logger) *AuthService {
	if phonePrefix == "" {
		phonePrefix = DefaultPhonePrefix
	}
	return &AuthService{client: client, tokens: tokens, phonePrefix: phonePrefix, log: log}
}

// NormalizePhone returns prefix followed by exactly ten digits. The input may
// be the bare ten digits or already carry the prefix.
func NormalizePhone(input, prefix string) (string, error) {
	digits := strings.TrimSpace(input)
	digits = strings.TrimPrefix(digits, prefix)
	if !localPhone.MatchString(digits) {
		return "", domain.ErrInvalidPhone
	}
	return prefix + digits, nil
}

func (s *AuthService) Login(ctx context.Context, deviceID, phoneNumber, password string) (domain.Credentials, error) {
	phone, err := NormalizePhone(phoneNumber, s.phonePrefix)
	if err != nil {
		return domain.Credentials{}, err
	}
	if password == "" {
		return domain.Credentials{}, domain.ErrPasswordRequired
	}

	res, err := s.client.Login(ctx, phone, password)
	if err != nil {
		return domain.Credentials{}, toAuthError(err, domain.ErrAuthFailed, msgLoginFailed)
	}

	creds := s.credentials(res)
	if creds.RefreshToken != "" {
		if err := s.tokens.Save(ctx, deviceID, creds.RefreshToken); err != nil {
			s.log.Error().Err(err).Str("device", deviceID).Msg("persist refresh token")
		}
	}

	s.log.Info().
		Str("device", deviceID).
		Str("role", creds.Role.String()).
		Msg("login succeeded")

	return creds, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.Credentials, error) {
	if refreshToken == "" {
		return domain.Credentials{}, domain.NewAuthError(domain.ErrMissingRefreshToken, "", msgMissingRefresh)
	}

	res, err := s.client.Refresh(ctx, refreshToken)
	if err != nil {
		return domain.Credentials{}, toAuthError(err, domain.ErrRefreshFailed, msgRefreshFailed)
	}

	creds := s.credentials(res)
	// The upstream does not rotate refresh tokens.
	creds.RefreshToken = ""
	return creds, nil
}

func (s *AuthService) credentials(res ports.AuthResult) domain.Credentials {
	role := domain.NormalizeRole(res.RoleName)
	if role == domain.RoleNone && res.RoleName != "" {
		s.log.Warn().Str("role_name", res.RoleName).Msg("unrecognised upstream role, menu will be empty")
	}
	return domain.Credentials{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		UserName:     res.UserName,
		Role:         role,
		RoleName:     res.RoleName,
	}
}

// toAuthError turns an upstream failure into the message shown to the user.
func toAuthError(err error, kind error, fallback string) error {
	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		return domain.NewAuthError(kind, ue.Message, fallback)
	}
	return &domain.AuthError{Kind: domain.ErrNetwork, Message: msgNetwork}
}
