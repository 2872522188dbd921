package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/elffinance/microfin-gateway/internal/core/ports"
	"github.com/elffinance/microfin-gateway/internal/core/session"
)

var errBadResourcePath = echo.NewHTTPError(http.StatusBadRequest, "invalid resource path")

// ResourceCaller sends authenticated upstream requests for a device.
type ResourceCaller interface {
	Do(ctx context.Context, dev *session.Device, req ports.ResourceRequest) (*ports.ResourceResponse, error)
}

// ResourceHandler proxies /api/:resource[/*] to the upstream API. The ACL has
// already run by the time it is reached.
type ResourceHandler struct {
	resources ResourceCaller
}

func NewResourceHandler(resources ResourceCaller) *ResourceHandler {
	return &ResourceHandler{resources: resources}
}

// Proxy forwards the request with the device's bearer token.
//
// @Summary      Upstream resource proxy
// @Tags         resources
// @Accept       json
// @Produce      json
// @Param        resource  path  string  true  "customers, loans, installments, line-types, loan-types, users, expenses or expenses-types"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/{resource} [get]
// @Router       /api/{resource} [post]
func (h *ResourceHandler) Proxy(c echo.Context) error {
	dev, err := ctxDevice(c)
	if err != nil {
		return err
	}

	path, err := resourcePath(c.Param("resource"), c.Param("*"))
	if err != nil {
		return err
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}

	resp, err := h.resources.Do(c.Request().Context(), dev, ports.ResourceRequest{
		Method: c.Request().Method,
		Path:   path,
		Query:  c.QueryParams(),
		Body:   body,
	})
	if err != nil {
		return err
	}
	return writeUpstream(c, resp)
}

// resourcePath rebuilds the upstream path from the route params. The tail is
// unescaped and checked segment by segment, so nothing can climb out of the
// resource the ACL approved.
func resourcePath(resource, rest string) (string, error) {
	path := "/" + url.PathEscape(resource)
	if rest == "" {
		return path, nil
	}

	unescaped, err := url.PathUnescape(rest)
	if err != nil {
		return "", errBadResourcePath
	}
	for _, seg := range strings.Split(unescaped, "/") {
		if seg == "" || seg == "." || seg == ".." || strings.Contains(seg, "\\") {
			return "", errBadResourcePath
		}
		path += "/" + url.PathEscape(seg)
	}
	return path, nil
}

// writeUpstream relays an upstream answer unchanged.
func writeUpstream(c echo.Context, resp *ports.ResourceResponse) error {
	if len(resp.Body) == 0 {
		return c.NoContent(resp.Status)
	}
	contentType := resp.ContentType
	if contentType == "" {
		contentType = echo.MIMEApplicationJSON
	}
	return c.Blob(resp.Status, contentType, resp.Body)
}
