// Package currency provides currency conversion at display precision.
// Rates are supplied by the caller; this package never fetches or caches
// them. Pure functions of their inputs.
package currency

import (
	"github.com/shopspring/decimal"

	"quotecalc/core/types"
	"quotecalc/internal/errors"
)

// Convert converts an amount from one currency to another using the given
// rate (1 unit of from in units of to), rounded to the currency display
// precision. Both codes must be in the supported set.
func Convert(amount decimal.Decimal, from, to types.Currency, rate decimal.Decimal) (decimal.Decimal, error) {
	if !from.Supported() {
		return decimal.Zero, errors.UnsupportedCurrency(string(from))
	}
	if !to.Supported() {
		return decimal.Zero, errors.UnsupportedCurrency(string(to))
	}
	return amount.Mul(rate).Round(types.DisplayPrecision), nil
}

// RoundDisplay rounds an amount to currency display precision
func RoundDisplay(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(types.DisplayPrecision)
}
