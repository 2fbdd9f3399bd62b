package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/docushop/storefront/internal/core/domain"
)

type ShippingService interface {
	Rates(ctx context.Context) (domain.ShippingRates, error)
	SetRates(ctx context.Context, discreet, express decimal.Decimal) (domain.ShippingRates, error)
}

// PricingEngine is the only place order totals are computed.
type PricingEngine interface {
	ComputeTotal(ctx context.Context, lines []domain.LineItem, tier string) (*domain.Quote, error)
}
