package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/docushop/storefront/internal/core/ports"
)

// AdminHandler serves the dashboard figures and the storefront settings.
type AdminHandler struct {
	dashboard ports.DashboardService
	settings  ports.SettingsService
}

func NewAdminHandler(dashboard ports.DashboardService, settings ports.SettingsService) *AdminHandler {
	return &AdminHandler{dashboard: dashboard, settings: settings}
}

// Stats handles GET /admin/stats.
//
// @Summary      Dashboard statistics
// @Description  Revenue sums the totals of completed orders.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Router       /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.dashboard.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statsResponse{
		TotalAccounts: stats.TotalAccounts,
		TotalProducts: stats.TotalProducts,
		TotalOrders:   stats.TotalOrders,
		Revenue:       money(stats.Revenue),
	})
}

// GetSettings handles GET /settings.
//
// @Summary      Storefront settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  settingsResponse
// @Router       /settings [get]
func (h *AdminHandler) GetSettings(c echo.Context) error {
	s, err := h.settings.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSettingsResponse(s))
}

// UpdateSettings handles PUT /admin/settings.
//
// @Summary      Update storefront settings
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateSettingsRequest  true  "Fields to change"
// @Success      200   {object}  settingsResponse
// @Failure      400   {object}  errorResponse
// @Router       /admin/settings [put]
func (h *AdminHandler) UpdateSettings(c echo.Context) error {
	var req updateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.settings.Update(c.Request().Context(), req.patch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSettingsResponse(updated))
}
