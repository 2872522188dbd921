package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elffinance/microfin-gateway/internal/core/ports"
)

// TenantCreator onboards a company and its first admin.
type TenantCreator interface {
	Create(ctx context.Context, in ports.TenantInput) error
}

type TenantHandler struct {
	tenants TenantCreator
}

func NewTenantHandler(tenants TenantCreator) *TenantHandler {
	return &TenantHandler{tenants: tenants}
}

// Create godoc
//
// @Summary      Create a company
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        body  body      tenantRequest  true  "Company and admin user"
// @Success      201   {object}  statusResponse
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /tenants [post]
func (h *TenantHandler) Create(c echo.Context) error {
	var req tenantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	err := h.tenants.Create(c.Request().Context(), ports.TenantInput{
		Name:          req.Name,
		PhoneNumber:   req.PhoneNumber,
		IsActive:      req.IsActive,
		AdminName:     req.AdminName,
		AdminEmail:    req.AdminEmail,
		AdminPassword: req.AdminPassword,
		AdminPhone:    req.AdminPhone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, statusResponse{Status: "created"})
}
