package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/elffinance/microfin-gateway/internal/core/domain"
	"github.com/elffinance/microfin-gateway/internal/core/session"
)

const dayLayout = "2006-01-02"

// DashboardService derives the dashboard figures from already-fetched
// upstream lists. It does no bookkeeping of its own.
type DashboardService struct {
	resources *ResourceService
}

func NewDashboardService(resources *ResourceService) *DashboardService {
	return &DashboardService{resources: resources}
}

// Summary fetches customers, loans and installments in parallel and
// aggregates them for day.
func (s *DashboardService) Summary(ctx context.Context, dev *session.Device, day time.Time) (*domain.DashboardSummary, error) {
	var customers, loans, installments []map[string]any

	g, gctx := errgroup.WithContext(ctx)
	fetch := func(path string, dst *[]map[string]any) func() error {
		return func() error {
			raw, err := s.resources.FetchData(gctx, dev, path)
			if err != nil {
				return err
			}
			list, err := decodeList(raw)
			if err != nil {
				return fmt.Errorf("decode %s: %w", path, err)
			}
			*dst = list
			return nil
		}
	}
	g.Go(fetch("/customers", &customers))
	g.Go(fetch("/loans", &loans))
	g.Go(fetch("/installments", &installments))
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}

	return Summarize(customers, loans, installments, day), nil
}

// Summarize is the pure aggregation behind Summary.
func Summarize(customers, loans, installments []map[string]any, day time.Time) *domain.DashboardSummary {
	today := day.UTC().Format(dayLayout)
	sum := &domain.DashboardSummary{
		Date:           today,
		TotalCustomers: len(customers),
	}

	for _, loan := range loans {
		if loanActive(loan) {
			sum.ActiveLoans++
		}
	}

	for _, inst := range installments {
		status := strings.ToLower(field(inst, "status"))
		switch status {
		case "overdue":
			sum.OverdueInstallments++
			continue
		case "pending":
			if due := dayOf(field(inst, "dueDate")); due != "" && due < today {
				sum.OverdueInstallments++
			}
			continue
		}

		if dayOf(field(inst, "paidAt", "paymentDate", "paidDate", "date", "createdAt")) != today {
			continue
		}
		sum.CollectionsToday += number(inst, "amount")
		sum.CashInHandToday += number(inst, "cashInHand")
		sum.CashInOnlineToday += number(inst, "cashInOnline")
	}

	return sum
}

func loanActive(loan map[string]any) bool {
	if status := field(loan, "status"); status != "" {
		return strings.EqualFold(status, "active")
	}
	switch v := loan["isActive"].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

// decodeList accepts either a bare array or an object wrapping one.
func decodeList(raw json.RawMessage) ([]map[string]any, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var list []map[string]any
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, err
	}
	for _, key := range []string{"items", "rows", "data", "customers", "loans", "installments"} {
		inner, ok := wrapper[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(inner, &list); err == nil {
			return list, nil
		}
	}
	return nil, fmt.Errorf("no list in upstream data")
}

// field returns the first non-empty string-ish value among keys.
func field(m map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func number(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil {
			return f
		}
	}
	return 0
}

// dayOf reduces an RFC 3339 timestamp or a bare date to YYYY-MM-DD in UTC.
func dayOf(s string) string {
	if s == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format(dayLayout)
	}
	if len(s) >= len(dayLayout) {
		if t, err := time.Parse(dayLayout, s[:len(dayLayout)]); err == nil {
			return t.Format(dayLayout)
		}
	}
	return ""
}
