package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/docushop/storefront/internal/core/domain"
	"github.com/docushop/storefront/internal/core/ports"
)

const moneyPlaces = 2

// Pricing computes order quotes from the live catalog and shipping rates.
type Pricing struct {
	products ports.ProductRepository
	shipping ports.ShippingService
}

func NewPricing(products ports.ProductRepository, shipping ports.ShippingService) *Pricing {
	return &Pricing{products: products, shipping: shipping}
}

// ComputeTotal prices every line at the product's current price, adds the
// rate of tier and rounds the sum half-to-even to cents. Line subtotals are
// exact.
func (p *Pricing) ComputeTotal(ctx context.Context, lines []domain.LineItem, tier string) (*domain.Quote, error) {
	if len(lines) == 0 {
		return nil, domain.Invalidf("order must contain at least one line item")
	}

	quote := &domain.Quote{
		Lines:    make([]domain.OrderLine, 0, len(lines)),
		Subtotal: decimal.Zero,
	}
	for i, li := range lines {
		product, err := p.products.FindByID(ctx, li.ProductID)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if li.Quantity < 1 {
			return nil, domain.Invalidf("line %d: quantity must be at least 1", i+1)
		}
		if !product.Available {
			return nil, domain.Invalidf("line %d: product %q is not available", i+1, product.Name)
		}
		if li.Variant != "" && !product.HasVariant(li.Variant) {
			return nil, domain.Invalidf("line %d: product %q has no variant %q", i+1, product.Name, li.Variant)
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
		quote.Lines = append(quote.Lines, domain.OrderLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			Variant:     li.Variant,
			Quantity:    li.Quantity,
			UnitPrice:   product.Price,
			Subtotal:    subtotal,
		})
		quote.Subtotal = quote.Subtotal.Add(subtotal)
	}

	shippingTier, err := domain.ParseShippingTier(tier)
	if err != nil {
		return nil, err
	}
	rates, err := p.shipping.Rates(ctx)
	if err != nil {
		return nil, err
	}
	rate, err := rates.Rate(shippingTier)
	if err != nil {
		return nil, err
	}

	// Only the sum is rounded; Subtotal and Shipping are display values.
	quote.ShippingTier = shippingTier
	quote.Total = quote.Subtotal.Add(rate).RoundBank(moneyPlaces)
	quote.Subtotal = quote.Subtotal.RoundBank(moneyPlaces)
	quote.Shipping = rate.RoundBank(moneyPlaces)
	return quote, nil
}
