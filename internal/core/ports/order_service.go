package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/docushop/storefront/internal/core/domain"
)

// PlaceOrderInput carries everything needed to place an order.
type PlaceOrderInput struct {
	Lines          []domain.LineItem
	Billing        domain.Billing
	ShippingTier   string
	AccountID      string // optional
	IdempotencyKey string // optional
}

// PlaceOrderResult is returned after an order is placed.
type PlaceOrderResult struct {
	OrderID string
	Total   decimal.Decimal
	// Replayed is true when the Idempotency-Key matched an earlier order.
	Replayed bool
}

// ListOrdersInput carries the parameters for the admin order list.
type ListOrdersInput struct {
	Status string
	Page   int
	Limit  int
}

// ListOrdersResult is returned by OrderService.List.
type ListOrdersResult struct {
	Items      []*domain.Order
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	Place(ctx context.Context, input PlaceOrderInput) (*PlaceOrderResult, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	Cancel(ctx context.Context, id string) (*domain.Order, error)
	Complete(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, input ListOrdersInput) (*ListOrdersResult, error)
}
