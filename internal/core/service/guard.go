package service

import "github.com/elffinance/microfin-gateway/internal/core/domain"

// Decision is the outcome of a guarded navigation.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
)

// LoginPath is where unauthenticated navigations are sent.
const LoginPath = "/login"

// Evaluate gates the authenticated section of the dashboard.
func Evaluate(s domain.Session) Decision {
	if s.IsAuthenticated {
		return Allow
	}
	return RedirectLogin
}
