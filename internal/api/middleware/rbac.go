package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elffinance/microfin-gateway/internal/api/metrics"
	"github.com/elffinance/microfin-gateway/internal/core/domain"
)

// RBAC lets through only sessions whose role is in allowed. It must run
// after Guard.
func RBAC(allowed domain.RoleSet) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !allowed.Has(sessionRole(c)) {
				metrics.GuardDenialsTotal.WithLabelValues("forbidden").Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// ResourceACL checks the :resource path param against rules. Unknown
// resources are 404; GET and HEAD count as reads.
func ResourceACL(rules map[string]domain.ResourceRule) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rule, ok := rules[c.Param("resource")]
			if !ok {
				return domain.ErrUnknownResource
			}

			method := c.Request().Method
			write := method != http.MethodGet && method != http.MethodHead
			if !rule.Allows(sessionRole(c), write) {
				metrics.GuardDenialsTotal.WithLabelValues("forbidden").Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

func sessionRole(c echo.Context) domain.Role {
	dev := DeviceFrom(c)
	if dev == nil {
		return domain.RoleNone
	}
	return dev.Store.Snapshot().Role
}
