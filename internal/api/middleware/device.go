package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/elffinance/microfin-gateway/internal/core/session"
)

const (
	// DeviceCookie carries the opaque device ID. It is the only state a
	// browser or the mobile shell keeps.
	DeviceCookie = "mf_device"
	DeviceKey    = "device"

	deviceCookieMaxAge = 400 * 24 * time.Hour
)

// Device resolves the request's device from its cookie, issuing a new ID when
// the cookie is missing or not a UUID, and stores it under DeviceKey.
func Device(registry *session.Registry, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if ck, err := c.Cookie(DeviceCookie); err == nil {
				if parsed, err := uuid.Parse(ck.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     DeviceCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(deviceCookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(DeviceKey, registry.Device(id))
			return next(c)
		}
	}
}

// DeviceFrom returns the device set by Device, or nil.
func DeviceFrom(c echo.Context) *session.Device {
	dev, _ := c.Get(DeviceKey).(*session.Device)
	return dev
}
