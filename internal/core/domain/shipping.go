package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShippingTier names a shipping-cost category selected per order.
type ShippingTier string

const (
	TierDiscreet ShippingTier = "discreet"
	TierExpress  ShippingTier = "express"
)

// ParseShippingTier converts s into a known tier.
func ParseShippingTier(s string) (ShippingTier, error) {
	switch tier := ShippingTier(s); tier {
	case TierDiscreet, TierExpress:
		return tier, nil
	default:
		return "", Invalidf("unknown shipping tier %q (want discreet or express)", s)
	}
}

// ShippingRates is the singleton holding the price of each tier.
type ShippingRates struct {
	Discreet  decimal.Decimal
	Express   decimal.Decimal
	UpdatedAt time.Time
}

// DefaultShippingRates is returned when rates have never been set.
func DefaultShippingRates() ShippingRates {
	return ShippingRates{
		Discreet: decimal.RequireFromString("30.00"),
		Express:  decimal.RequireFromString("50.00"),
	}
}

// Rate returns the price for tier.
func (r ShippingRates) Rate(tier ShippingTier) (decimal.Decimal, error) {
	switch tier {
	case TierDiscreet:
		return r.Discreet, nil
	case TierExpress:
		return r.Express, nil
	default:
		return decimal.Zero, Invalidf("unknown shipping tier %q (want discreet or express)", tier)
	}
}

// Validate checks both rates are non-negative storable amounts.
func (r ShippingRates) Validate() error {
	if err := validateAmount("discreet rate", r.Discreet); err != nil {
		return err
	}
	return validateAmount("express rate", r.Express)
}
