package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/elffinance/microfin-gateway/internal/core/domain"
	"github.com/elffinance/microfin-gateway/internal/core/session"
)

const knownDevice = "2f1d3c4e-5a6b-4c7d-8e9f-0a1b2c3d4e5f"

type stubBootstrapper struct {
	calls int
	login *domain.Session
}

func (s *stubBootstrapper) Bootstrap(_ context.Context, dev *session.Device) (domain.BootState, bool) {
	s.calls++
	if s.login != nil {
		dev.Store.Login(*s.login)
		return domain.BootAuthenticated, true
	}
	return domain.BootUnauthenticated, true
}

func newContext(method, target string, reg *session.Registry, deviceID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if reg != nil {
		c.Set(DeviceKey, reg.Device(deviceID))
	}
	return c, rec
}

func ok(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestDevice_IssuesCookie(t *testing.T) {
	reg := session.NewRegistry()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *session.Device
	h := Device(reg, true)(func(c echo.Context) error {
		seen = DeviceFrom(c)
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != DeviceCookie || !cookies[0].HttpOnly || !cookies[0].Secure {
		t.Fatalf("expected a secure http-only device cookie, got %+v", cookies)
	}
	if seen == nil || seen.ID != cookies[0].Value {
		t.Fatalf("device not bound to issued cookie")
	}
}

func TestDevice_ReusesCookie(t *testing.T) {
	reg := session.NewRegistry()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.AddCookie(&http.Cookie{Name: DeviceCookie, Value: knownDevice})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Device(reg, false)(func(c echo.Context) error {
		if DeviceFrom(c).ID != knownDevice {
			t.Fatalf("expected device %s, got %s", knownDevice, DeviceFrom(c).ID)
		}
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("cookie should not be reissued")
	}
}

func TestDevice_ReplacesForgedCookie(t *testing.T) {
	reg := session.NewRegistry()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.AddCookie(&http.Cookie{Name: DeviceCookie, Value: "../../etc"})
	rec := httptest.NewRecorder()

	if err := Device(reg, false)(ok)(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Fatalf("expected a fresh cookie")
	}
}

func TestGuard_RedirectsBrowser(t *testing.T) {
	boot := &stubBootstrapper{}
	c, rec := newContext(http.MethodGet, "/customers", session.NewRegistry(), knownDevice)

	h := Guard(boot)(func(echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected 302 /login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestGuard_RejectsAPICall(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/api/loans", session.NewRegistry(), knownDevice)

	err := Guard(&stubBootstrapper{})(ok)(c)
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestGuard_AllowsAfterBootstrap(t *testing.T) {
	boot := &stubBootstrapper{login: &domain.Session{AccessToken: "at", Role: domain.RoleManager}}
	c, rec := newContext(http.MethodGet, "/loans", session.NewRegistry(), knownDevice)

	if err := Guard(boot)(ok)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || boot.calls != 1 {
		t.Fatalf("expected 200 after one bootstrap, got %d calls=%d", rec.Code, boot.calls)
	}
}

func TestWantsJSON(t *testing.T) {
	tests := []struct {
		path, accept string
		want         bool
	}{
		{"/api/customers", "", true},
		{"/session/menu", "application/json", true},
		{"/loans", "text/html,application/xhtml+xml,application/json;q=0.9", false},
		{"/loans", "", false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		req.Header.Set(echo.HeaderAccept, tt.accept)
		if got := WantsJSON(req); got != tt.want {
			t.Fatalf("WantsJSON(%s, %q) = %v, want %v", tt.path, tt.accept, got, tt.want)
		}
	}
}

func TestRBAC_Allows(t *testing.T) {
	reg := session.NewRegistry()
	reg.Device(knownDevice).Store.Login(domain.Session{Role: domain.RoleAdmin})
	c, rec := newContext(http.MethodGet, "/users", reg, knownDevice)

	if err := RBAC(domain.RoleSet{domain.RoleAdmin})(ok)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_Forbids(t *testing.T) {
	reg := session.NewRegistry()
	reg.Device(knownDevice).Store.Login(domain.Session{Role: domain.RoleCollector})
	c, _ := newContext(http.MethodGet, "/users", reg, knownDevice)

	h := RBAC(domain.RoleSet{domain.RoleAdmin})(func(echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})
	if err := h(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestResourceACL(t *testing.T) {
	tests := []struct {
		name     string
		role     domain.Role
		method   string
		resource string
		want     error
	}{
		{"collector reads loans", domain.RoleCollector, http.MethodGet, "loans", nil},
		{"collector writes installments", domain.RoleCollector, http.MethodPost, "installments", nil},
		{"collector reads line types", domain.RoleCollector, http.MethodGet, "line-types", nil},
		{"collector cannot write line types", domain.RoleCollector, http.MethodPut, "line-types", domain.ErrForbidden},
		{"manager cannot read users", domain.RoleManager, http.MethodGet, "users", domain.ErrForbidden},
		{"admin deletes expenses", domain.RoleAdmin, http.MethodDelete, "expenses", nil},
		{"unknown resource", domain.RoleAdmin, http.MethodGet, "payroll", domain.ErrUnknownResource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := session.NewRegistry()
			reg.Device(knownDevice).Store.Login(domain.Session{Role: tt.role})
			c, _ := newContext(tt.method, "/api/"+tt.resource, reg, knownDevice)
			c.SetParamNames("resource")
			c.SetParamValues(tt.resource)

			err := ResourceACL(domain.ResourceRules)(ok)(c)
			if tt.want == nil && err != nil {
				t.Fatalf("expected pass, got %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
