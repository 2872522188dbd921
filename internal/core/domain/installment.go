package domain

import "time"

// Installment is a payment recorded against a loan.
type Installment struct {
	LoanID       string    `json:"loanId"`
	Amount       float64   `json:"amount"`
	CashInHand   float64   `json:"cashInHand"`
	CashInOnline float64   `json:"cashInOnline"`
	PaidAt       time.Time `json:"paidAt"`
	Note         string    `json:"note,omitempty"`
}

// SplitCash divides amount into cash-in-hand and cash-in-online. Without the
// online flag everything is cash in hand. With it, online is clamped to
// [0, amount] and the remainder is in hand, so the parts always sum to amount.
func SplitCash(amount, online float64, isOnline bool) (inHand, inOnline float64, err error) {
	if amount <= 0 {
		return 0, 0, ErrInvalidAmount
	}
	if !isOnline {
		return amount, 0, nil
	}
	switch {
	case online < 0:
		online = 0
	case online > amount:
		online = amount
	}
	return amount - online, online, nil
}

// DashboardSummary is the derived view over fetched customers, loans and
// installments for a single day.
type DashboardSummary struct {
	Date                string  `json:"date"`
	TotalCustomers      int     `json:"totalCustomers"`
	ActiveLoans         int     `json:"activeLoans"`
	CollectionsToday    float64 `json:"collectionsToday"`
	CashInHandToday     float64 `json:"cashInHandToday"`
	CashInOnlineToday   float64 `json:"cashInOnlineToday"`
	OverdueInstallments int     `json:"overdueInstallments"`
}
