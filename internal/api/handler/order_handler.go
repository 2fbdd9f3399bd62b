package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/docushop/storefront/internal/api/metrics"
	"github.com/docushop/storefront/internal/core/domain"
	"github.com/docushop/storefront/internal/core/ports"
)

// headerIdempotencyKey lets clients retry POST /orders safely.
const headerIdempotencyKey = "Idempotency-Key"

// OrderHandler handles HTTP requests for order operations.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Place handles POST /orders.
//
// @Summary      Place an order
// @Description  The total is computed server-side. A bearer token, when present, attaches the order to the account.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string             false  "Idempotency key to prevent duplicate orders"
// @Param        body             body      placeOrderRequest  true   "Line items, billing and shipping tier"
// @Success      201              {object}  placeOrderResponse
// @Failure      400              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      503              {object}  errorResponse
// @Router       /orders [post]
func (h *OrderHandler) Place(c echo.Context) error {
	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := req.toInput(optionalAccountID(c), c.Request().Header.Get(headerIdempotencyKey))
	result, err := h.service.Place(c.Request().Context(), input)
	if err != nil {
		return err
	}

	if result.Replayed {
		metrics.IdempotentReplaysTotal.Inc()
	} else {
		metrics.OrdersPlacedTotal.WithLabelValues(req.ShippingTier).Inc()
	}

	return c.JSON(http.StatusCreated, placeOrderResponse{
		OrderID: result.OrderID,
		Total:   money(result.Total),
	})
}

// Get handles GET /orders/:id.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  orderResponse
// @Failure      404  {object}  errorResponse
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	o, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// Cancel handles POST /orders/:id/cancel.
//
// @Summary      Cancel a pending order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  orderResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c echo.Context) error {
	return h.transition(c, h.service.Cancel)
}

// Complete handles POST /orders/:id/complete.
//
// @Summary      Complete a pending order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  orderResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /orders/{id}/complete [post]
func (h *OrderHandler) Complete(c echo.Context) error {
	return h.transition(c, h.service.Complete)
}

type transitionFunc func(ctx context.Context, id string) (*domain.Order, error)

func (h *OrderHandler) transition(c echo.Context, fn transitionFunc) error {
	o, err := fn(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	metrics.OrderTransitionsTotal.WithLabelValues(string(o.Status)).Inc()
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// List handles GET /admin/orders.
//
// @Summary      List orders
// @Description  Newest first. limit defaults to 20 and is capped at 100.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "pending, completed or cancelled"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 20, max 100)"
// @Success      200     {object}  listOrdersResponse
// @Failure      400     {object}  errorResponse
// @Router       /admin/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	page, limit, err := pageParams(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), ports.ListOrdersInput{
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	data := make([]orderResponse, 0, len(result.Items))
	for _, o := range result.Items {
		data = append(data, toOrderResponse(o))
	}
	return c.JSON(http.StatusOK, listOrdersResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}
