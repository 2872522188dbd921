package ports

import (
	"context"
	"net/url"
)

// AuthClient talks to the upstream /auth endpoints.
type AuthClient interface {
	Login(ctx context.Context, phoneNumber, password string) (AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (AuthResult, error)
}

// AuthResult is the upstream login/refresh payload before role mapping.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	UserName     string
	RoleName     string
}

// TenantInput is the company onboarding form.
type TenantInput struct {
	Name          string `json:"name"`
	PhoneNumber   string `json:"phoneNumber"`
	IsActive      bool   `json:"isActive"`
	AdminName     string `json:"adminName"`
	AdminEmail    string `json:"adminEmail"`
	AdminPassword string `json:"adminPassword"`
	AdminPhone    string `json:"adminPhone"`
}

// TenantClient creates tenants upstream. It needs no session.
type TenantClient interface {
	CreateTenant(ctx context.Context, in TenantInput) error
}

// ResourceRequest is a bearer-authenticated call against an upstream REST
// resource. Path is relative to the API base, e.g. "/loans/12".
type ResourceRequest struct {
	Method      string
	Path        string
	Query       url.Values
	Body        []byte
	AccessToken string
}

// ResourceResponse is the raw upstream answer.
type ResourceResponse struct {
	Status      int
	ContentType string
	Body        []byte
}

// ResourceClient performs ResourceRequests. Non-2xx answers are returned as
// responses, not errors; only transport failures are errors.
type ResourceClient interface {
	Do(ctx context.Context, req ResourceRequest) (*ResourceResponse, error)
}
