package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/elffinance/microfin-gateway/internal/core/domain"
	"github.com/elffinance/microfin-gateway/internal/core/ports"
	"github.com/elffinance/microfin-gateway/internal/core/session"
)

// InstallmentInput is a payment as entered by the collector.
type InstallmentInput struct {
	LoanID       string
	Amount       float64
	Online       bool
	CashInOnline float64
	PaidAt       time.Time
	Note         string
}

// InstallmentService records installments with a consistent cash split.
type InstallmentService struct {
	resources *ResourceService
	log       zerolog.Logger
	now       func() time.Time
}

func NewInstallmentService(resources *ResourceService, log zerolog.Logger) *InstallmentService {
	return &InstallmentService{resources: resources, log: log, now: time.Now}
}

// Build applies the cash split to in. A missing payment time means now.
func (s *InstallmentService) Build(in InstallmentInput) (domain.Installment, error) {
	inHand, inOnline, err := domain.SplitCash(in.Amount, in.CashInOnline, in.Online)
	if err != nil {
		return domain.Installment{}, err
	}
	paidAt := in.PaidAt
	if paidAt.IsZero() {
		paidAt = s.now().UTC()
	}
	return domain.Installment{
		LoanID:       in.LoanID,
		Amount:       in.Amount,
		CashInHand:   inHand,
		CashInOnline: inOnline,
		PaidAt:       paidAt,
		Note:         in.Note,
	}, nil
}

// Record posts the installment upstream and returns the upstream answer.
func (s *InstallmentService) Record(ctx context.Context, dev *session.Device, in InstallmentInput) (*ports.ResourceResponse, error) {
	inst, err := s.Build(in)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(inst)
	if err != nil {
		return nil, fmt.Errorf("record installment: %w", err)
	}

	resp, err := s.resources.Do(ctx, dev, ports.ResourceRequest{
		Method: http.MethodPost,
		Path:   "/installments",
		Body:   body,
	})
	if err != nil {
		return nil, fmt.Errorf("record installment: %w", err)
	}

	s.log.Info().
		Str("loan_id", inst.LoanID).
		Float64("amount", inst.Amount).
		Float64("cash_in_online", inst.CashInOnline).
		Int("upstream_status", resp.Status).
		Msg("installment recorded")

	return resp, nil
}
