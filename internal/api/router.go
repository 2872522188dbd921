package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/elffinance/microfin-gateway/internal/api/handler"
	"github.com/elffinance/microfin-gateway/internal/api/middleware"
	"github.com/elffinance/microfin-gateway/internal/core/domain"
	"github.com/elffinance/microfin-gateway/internal/core/service"
	"github.com/elffinance/microfin-gateway/internal/core/session"
	opshttp "github.com/elffinance/microfin-gateway/internal/infrastructure/http"
	"github.com/elffinance/microfin-gateway/internal/infrastructure/http/handlers"
	"github.com/elffinance/microfin-gateway/internal/shell"
)

const (
	metricsSubsystem = "http"

	// maxResourceBody caps request bodies on the /api routes; larger ones get 413.
	maxResourceBody = "4M"
)

// Deps are the services the HTTP layer is built on.
type Deps struct {
	Registry     *session.Registry
	Sessions     handler.SessionManager
	Navigation   *service.Navigation
	Resources    handler.ResourceCaller
	Installments handler.InstallmentRecorder
	Dashboard    handler.DashboardReader
	Tenants      handler.TenantCreator
	Shell        *shell.Shell
	Health       map[string]handlers.Pinger
	CookieSecure bool

	// Registerer receives the HTTP metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	registerer := d.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "microfin_gateway",
		Subsystem:  metricsSubsystem,
		Registerer: registerer,
	}))
	e.Use(middleware.RequestLogger(d.Log))

	// --- Health, metrics, swagger (no device, no auth) ---
	opshttp.RegisterOps(e, d.Health)

	device := middleware.Device(d.Registry, d.CookieSecure)
	guard := middleware.Guard(d.Sessions)

	authHandler := handler.NewAuthHandler(d.Sessions, d.Navigation)
	sessionHandler := handler.NewSessionHandler(d.Sessions, d.Navigation)
	resourceHandler := handler.NewResourceHandler(d.Resources)
	installmentHandler := handler.NewInstallmentHandler(d.Installments)
	dashboardHandler := handler.NewDashboardHandler(d.Dashboard)
	tenantHandler := handler.NewTenantHandler(d.Tenants)
	shellHandler := handler.NewShellHandler(d.Shell)

	// --- Public ---
	e.POST("/auth/login", authHandler.Login, device)
	e.POST("/auth/logout", authHandler.Logout, device)
	e.GET("/session", sessionHandler.Get, device)
	e.POST("/tenants", tenantHandler.Create)
	e.GET("/shell/config", shellHandler.Config)
	e.GET("/shell/resolve", shellHandler.Resolve)

	// --- Guarded ---
	e.GET("/session/menu", sessionHandler.Menu, device, guard)
	e.GET("/dashboard/summary", dashboardHandler.Summary, device, guard)
	for _, item := range d.Navigation.Table() {
		e.GET(item.Path, sessionHandler.Page(item), device, guard, middleware.RBAC(item.Roles))
	}

	// Installment creation goes through the cash split; every other resource
	// call is proxied as is.
	resources := func(c echo.Context) error {
		if c.Param("resource") == "installments" && c.Param("*") == "" && c.Request().Method == http.MethodPost {
			return installmentHandler.Create(c)
		}
		return resourceHandler.Proxy(c)
	}
	acl := middleware.ResourceACL(domain.ResourceRules)
	limit := echomiddleware.BodyLimit(maxResourceBody)
	e.Any("/api/:resource", resources, limit, device, guard, acl)
	e.Any("/api/:resource/*", resources, limit, device, guard, acl)

	return e
}
