package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elffinance/microfin-gateway/internal/api/metrics"
	"github.com/elffinance/microfin-gateway/internal/core/domain"
	"github.com/elffinance/microfin-gateway/internal/core/session"
)

// SessionManager signs devices in and out and restores their sessions.
type SessionManager interface {
	SignIn(ctx context.Context, dev *session.Device, phoneNumber, password string) (domain.Session, error)
	SignOut(ctx context.Context, dev *session.Device) error
	Bootstrap(ctx context.Context, dev *session.Device) (domain.BootState, bool)
}

// MenuProvider filters the navigation table by role.
type MenuProvider interface {
	Menu(role domain.Role) []domain.MenuItem
}

type AuthHandler struct {
	sessions SessionManager
	nav      MenuProvider
}

func NewAuthHandler(sessions SessionManager, nav MenuProvider) *AuthHandler {
	return &AuthHandler{sessions: sessions, nav: nav}
}

// Login authenticates the device against the upstream API.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Phone number and password"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	dev, err := ctxDevice(c)
	if err != nil {
		return err
	}

	sess, err := h.sessions.SignIn(c.Request().Context(), dev, req.PhoneNumber, req.Password)
	metrics.LoginAttemptsTotal.WithLabelValues(loginOutcome(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		User: sess.UserName,
		Role: sess.Role.String(),
		Menu: h.nav.Menu(sess.Role),
	})
}

// Logout clears the device's session and its persisted refresh token.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Failure      500  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	dev, err := ctxDevice(c)
	if err != nil {
		return err
	}
	if err := h.sessions.SignOut(c.Request().Context(), dev); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func loginOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidPhone), errors.Is(err, domain.ErrPasswordRequired):
		return "invalid"
	case errors.Is(err, domain.ErrNetwork):
		return "network"
	default:
		return "rejected"
	}
}
