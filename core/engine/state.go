// Package engine - accumulated per-product state
package engine

import (
	"github.com/shopspring/decimal"

	"quotecalc/core/types"
)

// State is the accumulated input of every phase: the immutable commercial
// inputs plus the fields written by earlier phases. Phases mutate only
// Fields, and only by appending.
type State struct {
	Product  *types.ProductInput
	Quote    *types.QuoteInput
	Settings *types.OrganizationSettings
	Fields   *types.PhaseResult
}

// NewState builds a fresh state for one product
func NewState(product *types.ProductInput, quote *types.QuoteInput, settings *types.OrganizationSettings) *State {
	return &State{
		Product:  product,
		Quote:    quote,
		Settings: settings,
		Fields:   types.NewPhaseResult(),
	}
}

// Qty returns the product quantity as a decimal
func (s *State) Qty() decimal.Decimal {
	return decimal.NewFromInt(int64(s.Product.Quantity))
}

// pct converts a percentage to a multiplier: pct(15) = 0.15
func pct(p decimal.Decimal) decimal.Decimal {
	return p.Div(decimal.NewFromInt(100))
}

// costFields are the increments that sum to COGS, in phase order.
// Individual overheads are covered by overheads_total.
var costFields = []string{
	FieldPurchasePriceTotal,
	FieldLogisticsTotal,
	FieldCustomsDuty,
	FieldExciseAmount,
	FieldPackagingHandling,
	FieldInternalMarkup,
	FieldFinancialCommission,
	FieldOverheadsTotal,
}

// runningCost sums every cost increment written so far. Fields not yet
// written contribute nothing, so a phase sees the running total through
// its predecessors.
func (s *State) runningCost() decimal.Decimal {
	total := decimal.Zero
	for _, f := range costFields {
		if v, ok := s.Fields.Get(f); ok {
			total = total.Add(v)
		}
	}
	return total
}
