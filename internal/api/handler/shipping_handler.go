package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/docushop/storefront/internal/core/ports"
)

type ShippingHandler struct {
	service ports.ShippingService
}

func NewShippingHandler(service ports.ShippingService) *ShippingHandler {
	return &ShippingHandler{service: service}
}

// Get handles GET /shipping.
//
// @Summary      Current shipping rates
// @Tags         shipping
// @Produce      json
// @Success      200  {object}  shippingRatesResponse
// @Router       /shipping [get]
func (h *ShippingHandler) Get(c echo.Context) error {
	rates, err := h.service.Rates(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShippingRatesResponse(rates))
}

// Set handles POST /shipping.
//
// @Summary      Replace shipping rates
// @Tags         shipping
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      shippingRatesRequest  true  "Both tier rates"
// @Success      200   {object}  shippingRatesResponse
// @Failure      400   {object}  errorResponse
// @Router       /shipping [post]
func (h *ShippingHandler) Set(c echo.Context) error {
	var req shippingRatesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	rates, err := h.service.SetRates(c.Request().Context(), *req.Discreet, *req.Express)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShippingRatesResponse(rates))
}
