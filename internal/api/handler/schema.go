package handler

import (
	"github.com/elffinance/microfin-gateway/internal/core/domain"
	"github.com/elffinance/microfin-gateway/internal/shell"
)

type loginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type loginResponse struct {
	User string            `json:"user"`
	Role string            `json:"role"`
	Menu []domain.MenuItem `json:"menu"`
}

type sessionResponse struct {
	State         domain.BootState `json:"state"`
	Authenticated bool             `json:"authenticated"`
	User          string           `json:"user"`
	Role          string           `json:"role"`
}

type menuResponse struct {
	Role  string            `json:"role"`
	Items []domain.MenuItem `json:"items"`
}

type pageResponse struct {
	Page domain.MenuItem `json:"page"`
}

type tenantRequest struct {
	Name          string `json:"name"          validate:"required"`
	PhoneNumber   string `json:"phoneNumber"   validate:"required,intlphone"`
	IsActive      bool   `json:"isActive"`
	AdminName     string `json:"adminName"     validate:"required"`
	AdminEmail    string `json:"adminEmail"    validate:"required,email"`
	AdminPassword string `json:"adminPassword" validate:"required,min=6"`
	AdminPhone    string `json:"adminPhone"    validate:"required,intlphone"`
}

type installmentRequest struct {
	LoanID       string  `json:"loanId"       validate:"required"`
	Amount       float64 `json:"amount"       validate:"gt=0"`
	Online       bool    `json:"online"`
	CashInOnline float64 `json:"cashInOnline"`
	PaidAt       string  `json:"paidAt"       validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Note         string  `json:"note"`
}

type shellConfigResponse struct {
	BaseURL  string      `json:"baseUrl"`
	Platform string      `json:"platform"`
	Tabs     []shell.Tab `json:"tabs"`
}

type shellResolveResponse struct {
	URL    string          `json:"url"`
	Action shell.Action    `json:"action"`
	Route  *shell.Decision `json:"route,omitempty"`
}

type statusResponse struct {
	Status string `json:"status"`
}
