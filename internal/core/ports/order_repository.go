package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/docushop/storefront/internal/core/domain"
)

// ListOrdersFilter carries the query parameters for listing orders.
type ListOrdersFilter struct {
	Status domain.OrderStatus // empty = any status
	Page   int                // 1-based
	Limit  int
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// TransitionStatus moves the order from one status to another only if it
	// is currently in from. It returns domain.ErrOrderNotFound when no order
	// has id and domain.ErrInvalidTransition when the status did not match.
	TransitionStatus(ctx context.Context, id string, from, to domain.OrderStatus, at time.Time) (*domain.Order, error)
	// List returns a page of orders, newest first, and the total match count.
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, int64, error)
	Count(ctx context.Context) (int64, error)
	// Revenue sums the totals of completed orders.
	Revenue(ctx context.Context) (decimal.Decimal, error)
}

// IdempotencyStore maps client-supplied idempotency keys to order ids. Each
// key is bound to the fingerprint of the request that first claimed it.
type IdempotencyStore interface {
	// Claim reserves key for a request with the given fingerprint. When the
	// key already exists, claimed is false and orderID holds the recorded
	// order, or is empty while the first request is still in flight. A key
	// held by a different fingerprint fails with domain.ErrIdempotencyKeyReused.
	Claim(ctx context.Context, key, fingerprint string) (orderID string, claimed bool, err error)
	// Complete records the order placed under a claimed key.
	Complete(ctx context.Context, key, fingerprint, orderID string) error
	// Release drops a claim whose placement failed.
	Release(ctx context.Context, key string) error
}
