package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/elffinance/microfin-gateway/internal/core/domain"
	"github.com/elffinance/microfin-gateway/internal/core/session"
)

const dayLayout = "2006-01-02"

// DashboardReader aggregates the dashboard figures for a day.
type DashboardReader interface {
	Summary(ctx context.Context, dev *session.Device, day time.Time) (*domain.DashboardSummary, error)
}

type DashboardHandler struct {
	dashboard DashboardReader
	now       func() time.Time
}

func NewDashboardHandler(dashboard DashboardReader) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, now: time.Now}
}

// Summary godoc
//
// @Summary      Dashboard summary
// @Tags         dashboard
// @Produce      json
// @Param        date  query     string  false  "Day as YYYY-MM-DD, defaults to today (UTC)"
// @Success      200   {object}  domain.DashboardSummary
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /dashboard/summary [get]
func (h *DashboardHandler) Summary(c echo.Context) error {
	day := h.now().UTC()
	if raw := c.QueryParam("date"); raw != "" {
		parsed, err := time.Parse(dayLayout, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		day = parsed
	}

	dev, err := ctxDevice(c)
	if err != nil {
		return err
	}

	summary, err := h.dashboard.Summary(c.Request().Context(), dev, day)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
