package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elffinance/microfin-gateway/internal/api/metrics"
	"github.com/elffinance/microfin-gateway/internal/core/domain"
)

// SessionHandler exposes the device's session to the dashboard and answers
// guarded page checks.
type SessionHandler struct {
	sessions SessionManager
	nav      MenuProvider
}

func NewSessionHandler(sessions SessionManager, nav MenuProvider) *SessionHandler {
	return &SessionHandler{sessions: sessions, nav: nav}
}

// Get runs the device's bootstrap if needed and reports the outcome.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *SessionHandler) Get(c echo.Context) error {
	dev, err := ctxDevice(c)
	if err != nil {
		return err
	}

	state, ran := h.sessions.Bootstrap(c.Request().Context(), dev)
	if ran {
		metrics.BootstrapsTotal.WithLabelValues(string(state)).Inc()
	}

	// Once the bootstrap has finished, the store decides the state.
	sess := dev.Store.Snapshot()
	if state.Terminal() {
		state = domain.BootUnauthenticated
		if sess.IsAuthenticated {
			state = domain.BootAuthenticated
		}
	}
	return c.JSON(http.StatusOK, sessionResponse{
		State:         state,
		Authenticated: sess.IsAuthenticated,
		User:          sess.UserName,
		Role:          sess.Role.String(),
	})
}

// Menu returns the navigation entries the session's role may see.
//
// @Summary      Role-filtered menu
// @Tags         session
// @Produce      json
// @Success      200  {object}  menuResponse
// @Failure      401  {object}  map[string]string
// @Router       /session/menu [get]
func (h *SessionHandler) Menu(c echo.Context) error {
	dev, err := ctxDevice(c)
	if err != nil {
		return err
	}
	role := dev.Store.Snapshot().Role
	return c.JSON(http.StatusOK, menuResponse{Role: role.String(), Items: h.nav.Menu(role)})
}

// Page builds the answer for one navigation entry. Mounted behind Guard and
// RBAC, so only a session whose role may see the entry reaches it.
func (h *SessionHandler) Page(item domain.MenuItem) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, pageResponse{Page: item})
	}
}
