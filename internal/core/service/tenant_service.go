package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/elffinance/microfin-gateway/internal/core/domain"
	"github.com/elffinance/microfin-gateway/internal/core/ports"
)

const msgCreateCompanyFailed = "Failed to create company"

// TenantService onboards a new company and its first admin.
type TenantService struct {
	client ports.TenantClient
	log    zerolog.Logger
}

func NewTenantService(client ports.TenantClient, log zerolog.Logger) *TenantService {
	return &TenantService{client: client, log: log}
}

// Create forwards the onboarding form. Upstream rejections come back as an
// UpstreamError carrying the upstream message.
func (s *TenantService) Create(ctx context.Context, in ports.TenantInput) error {
	err := s.client.CreateTenant(ctx, in)
	if err == nil {
		s.log.Info().Str("tenant", in.Name).Msg("tenant created")
		return nil
	}

	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		if ue.Message == "" {
			ue.Message = msgCreateCompanyFailed
		}
		return ue
	}
	return err
}
