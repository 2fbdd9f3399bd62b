package ports

import (
	"context"

	"github.com/docushop/storefront/internal/core/domain"
)

// ShippingRepository stores the shipping rate singleton.
type ShippingRepository interface {
	// Get returns domain.ErrRatesNotSet when rates were never saved.
	Get(ctx context.Context) (*domain.ShippingRates, error)
	// Set replaces the singleton in a single write.
	Set(ctx context.Context, rates domain.ShippingRates) error
}
