package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/elffinance/microfin-gateway/internal/core/ports"
	"github.com/elffinance/microfin-gateway/internal/core/service"
	"github.com/elffinance/microfin-gateway/internal/core/session"
)

// InstallmentRecorder records a payment with its cash split.
type InstallmentRecorder interface {
	Record(ctx context.Context, dev *session.Device, in service.InstallmentInput) (*ports.ResourceResponse, error)
}

type InstallmentHandler struct {
	installments InstallmentRecorder
	now          func() time.Time
}

func NewInstallmentHandler(installments InstallmentRecorder) *InstallmentHandler {
	return &InstallmentHandler{installments: installments, now: time.Now}
}

// Create records an installment. Offline payments are all cash in hand;
// online payments split the amount by cashInOnline.
//
// @Summary      Record an installment
// @Tags         installments
// @Accept       json
// @Produce      json
// @Param        body  body      installmentRequest  true  "Installment"
// @Success      201   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/installments [post]
func (h *InstallmentHandler) Create(c echo.Context) error {
	var req installmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	paidAt := h.now().UTC()
	if req.PaidAt != "" {
		t, err := time.Parse(time.RFC3339, req.PaidAt)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "paidAt must be RFC 3339")
		}
		paidAt = t
	}

	dev, err := ctxDevice(c)
	if err != nil {
		return err
	}

	resp, err := h.installments.Record(c.Request().Context(), dev, service.InstallmentInput{
		LoanID:       req.LoanID,
		Amount:       req.Amount,
		Online:       req.Online,
		CashInOnline: req.CashInOnline,
		PaidAt:       paidAt,
		Note:         req.Note,
	})
	if err != nil {
		return err
	}
	return writeUpstream(c, resp)
}
