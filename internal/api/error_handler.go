package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/elffinance/microfin-gateway/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain
// errors to status codes and renders {"error": "<message>"}. Unexpected
// errors are logged and answered with a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// AuthError carries the message meant for the user.
	var ae *domain.AuthError
	if errors.As(err, &ae) {
		if errors.Is(ae.Kind, domain.ErrNetwork) {
			return http.StatusBadGateway, ae.Message
		}
		return http.StatusUnauthorized, ae.Message
	}

	switch {
	case errors.Is(err, domain.ErrInvalidPhone), errors.Is(err, domain.ErrPasswordRequired):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusUnprocessableEntity, domain.ErrInvalidAmount.Error()
	case errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, domain.ErrSessionExpired.Error()
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, domain.ErrUnauthenticated.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.ErrForbidden.Error()
	case errors.Is(err, domain.ErrUnknownResource):
		return http.StatusNotFound, domain.ErrUnknownResource.Error()
	case errors.Is(err, domain.ErrNetwork):
		log.Warn().Err(err).Str("path", c.Path()).Msg("upstream unreachable")
		return http.StatusBadGateway, "Network error"
	}

	// Upstream 4xx answers keep their status; anything else is a bad gateway.
	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		if ue.Status >= 400 && ue.Status < 500 {
			return ue.Status, ue.Message
		}
		log.Warn().Int("upstream_status", ue.Status).Str("path", c.Path()).Msg(ue.Message)
		return http.StatusBadGateway, ue.Message
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
