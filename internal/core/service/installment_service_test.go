package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/elffinance/microfin-gateway/internal/core/domain"
	"github.com/elffinance/microfin-gateway/internal/core/ports"
)

func TestInstallmentService_RecordAppliesSplit(t *testing.T) {
	var posted domain.Installment
	rc := &stubResourceClient{doFn: func(_ context.Context, req ports.ResourceRequest) (*ports.ResourceResponse, error) {
		if req.Method != http.MethodPost || req.Path != "/installments" {
			t.Fatalf("unexpected request %s %s", req.Method, req.Path)
		}
		if err := json.Unmarshal(req.Body, &posted); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		return &ports.ResourceResponse{Status: http.StatusCreated}, nil
	}}
	svc := NewInstallmentService(newResourceSvc(rc, &stubAuthClient{}, newStubTokens()), zerolog.Nop())

	resp, err := svc.Record(context.Background(), authedDevice("at"), InstallmentInput{LoanID: "42", Amount: 1000, Online: true, CashInOnline: 350})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if resp.Status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Status)
	}
	if posted.CashInHand != 650 || posted.CashInOnline != 350 || posted.LoanID != "42" {
		t.Fatalf("unexpected payload: %+v", posted)
	}
}

func TestInstallmentService_RejectsNonPositiveAmount(t *testing.T) {
	rc := &stubResourceClient{}
	svc := NewInstallmentService(newResourceSvc(rc, &stubAuthClient{}, newStubTokens()), zerolog.Nop())

	_, err := svc.Record(context.Background(), authedDevice("at"), InstallmentInput{LoanID: "42", Amount: 0})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if len(rc.calls) != 0 {
		t.Fatalf("expected no upstream call")
	}
}

func TestInstallmentService_BuildDefaultsPaidAt(t *testing.T) {
	svc := NewInstallmentService(newResourceSvc(&stubResourceClient{}, &stubAuthClient{}, newStubTokens()), zerolog.Nop())
	fixed := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	inst, err := svc.Build(InstallmentInput{LoanID: "42", Amount: 200})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !inst.PaidAt.Equal(fixed) {
		t.Fatalf("expected paidAt %s, got %s", fixed, inst.PaidAt)
	}

	given := fixed.Add(-48 * time.Hour)
	inst, err = svc.Build(InstallmentInput{LoanID: "42", Amount: 200, PaidAt: given})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !inst.PaidAt.Equal(given) {
		t.Fatalf("expected given paidAt kept, got %s", inst.PaidAt)
	}
}
