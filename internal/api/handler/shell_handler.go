package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/elffinance/microfin-gateway/internal/shell"
)

type ShellHandler struct {
	shell *shell.Shell
}

func NewShellHandler(s *shell.Shell) *ShellHandler {
	return &ShellHandler{shell: s}
}

// Config godoc
//
// @Summary      Mobile shell configuration
// @Tags         shell
// @Produce      json
// @Success      200  {object}  shellConfigResponse
// @Router       /shell/config [get]
func (h *ShellHandler) Config(c echo.Context) error {
	return c.JSON(http.StatusOK, shellConfigResponse{
		BaseURL:  h.shell.BaseURL(),
		Platform: h.shell.Platform(),
		Tabs:     shell.Tabs,
	})
}

// Resolve tells the shell whether to open a link in place or hand it to the
// OS, and for in-place links which tab to show.
//
// @Summary      Resolve a link
// @Tags         shell
// @Produce      json
// @Param        url  query     string  true  "Link to resolve"
// @Success      200  {object}  shellResolveResponse
// @Failure      400  {object}  map[string]string
// @Router       /shell/resolve [get]
func (h *ShellHandler) Resolve(c echo.Context) error {
	raw := c.QueryParam("url")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url is required")
	}

	resp := shellResolveResponse{URL: raw, Action: h.shell.Intercept(raw)}
	if resp.Action == shell.ActionLoad {
		path := "/"
		if u, err := url.Parse(raw); err == nil && u.Path != "" {
			path = u.Path
		}
		d := h.shell.Route(path)
		resp.Route = &d
	}
	return c.JSON(http.StatusOK, resp)
}
