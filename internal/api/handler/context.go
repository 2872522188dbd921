package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/elffinance/microfin-gateway/internal/api/middleware"
	"github.com/elffinance/microfin-gateway/internal/core/domain"
	"github.com/elffinance/microfin-gateway/internal/core/session"
)

// ctxDevice returns the device bound by the Device middleware. Its absence
// means the route was mounted without it, which is treated as no session.
func ctxDevice(c echo.Context) (*session.Device, error) {
	dev := middleware.DeviceFrom(c)
	if dev == nil {
		return nil, domain.ErrUnauthenticated
	}
	return dev, nil
}
