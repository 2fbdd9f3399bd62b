package domain

import "github.com/shopspring/decimal"

// Amount bounds. Anything outside them cannot be stored as a Decimal128
// without loss, so it is rejected up front.
const maxAmountScale = 8

var maxAmount = decimal.New(1, 12)

// validateAmount checks that d is a storable, non-negative money amount.
func validateAmount(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return Invalidf("%s must be greater than or equal to 0", field)
	}
	if d.GreaterThanOrEqual(maxAmount) {
		return Invalidf("%s must be less than %s", field, maxAmount.String())
	}
	if d.Exponent() < -maxAmountScale {
		return Invalidf("%s must have at most %d decimal places", field, maxAmountScale)
	}
	return nil
}
