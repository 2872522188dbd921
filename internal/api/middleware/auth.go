package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/elffinance/microfin-gateway/internal/api/metrics"
	"github.com/elffinance/microfin-gateway/internal/core/domain"
	"github.com/elffinance/microfin-gateway/internal/core/service"
	"github.com/elffinance/microfin-gateway/internal/core/session"
)

// Bootstrapper runs a device's one-shot session bootstrap.
type Bootstrapper interface {
	Bootstrap(ctx context.Context, dev *session.Device) (domain.BootState, bool)
}

// Guard waits for the device's bootstrap and then lets only authenticated
// sessions through. Browsers are redirected to the login page; API callers
// get a 401.
func Guard(boot Bootstrapper) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			dev := DeviceFrom(c)
			if dev == nil {
				return domain.ErrUnauthenticated
			}

			state, ran := boot.Bootstrap(c.Request().Context(), dev)
			if ran {
				metrics.BootstrapsTotal.WithLabelValues(string(state)).Inc()
			}

			if service.Evaluate(dev.Store.Snapshot()) == service.Allow {
				return next(c)
			}

			metrics.GuardDenialsTotal.WithLabelValues("unauthenticated").Inc()
			if WantsJSON(c.Request()) {
				return domain.ErrUnauthenticated
			}
			return c.Redirect(http.StatusFound, service.LoginPath)
		}
	}
}

// WantsJSON reports whether r is an API call rather than a page navigation.
func WantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	accept := r.Header.Get(echo.HeaderAccept)
	return strings.Contains(accept, echo.MIMEApplicationJSON) && !strings.Contains(accept, echo.MIMETextHTML)
}
