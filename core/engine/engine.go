// Package engine implements the quote calculation pipeline: an ordered
// sequence of pure phases that turns per-product commercial inputs into
// final sale prices, duties, logistics costs, VAT and profit.
//
// The engine is a single forward pass per product. It is deterministic:
// identical inputs produce identical results, so nothing here is ever
// retried. A product that fails validation or a phase aborts only its own
// result; the rest of the quote still computes.
package engine

import (
	"go.uber.org/zap"

	"quotecalc/core/types"
	"quotecalc/internal/logging"
)

// Engine runs the calculation pipeline
type Engine struct {
	phases []Phase
}

// New creates an engine with the standard pipeline
func New() *Engine {
	return &Engine{phases: Pipeline()}
}

// CalculateProduct runs all phases for one product and returns its full
// field set. Fails fast with a MissingOrInvalidInput error naming the
// field and phase; no partial result is returned.
func (e *Engine) CalculateProduct(product *types.ProductInput, quote *types.QuoteInput, settings *types.OrganizationSettings) (*types.PhaseResult, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := quote.Validate(); err != nil {
		return nil, err
	}

	state := NewState(product, quote, settings)
	for _, phase := range e.phases {
		if err := phase.Apply(state); err != nil {
			return nil, err
		}
	}
	return state.Fields, nil
}

// CalculateQuote runs the pipeline for every product and aggregates the
// quote-level totals. Per-product failures are recorded with attribution
// and do not abort the other products.
func (e *Engine) CalculateQuote(products []types.ProductInput, quote *types.QuoteInput, settings *types.OrganizationSettings) *types.QuoteCalculationResult {
	result := &types.QuoteCalculationResult{
		Products: make([]types.ProductResult, 0, len(products)),
	}

	for i := range products {
		product := &products[i]
		fields, err := e.CalculateProduct(product, quote, settings)
		if err != nil {
			logging.Warn("product calculation failed",
				zap.Int("product", i),
				zap.String("name", product.Name),
				zap.Error(err))
			result.Products = append(result.Products, types.ProductResult{
				Index: i,
				Name:  product.Name,
				Err:   err.Error(),
			})
			result.Failed++
			continue
		}

		result.Products = append(result.Products, types.ProductResult{
			Index:  i,
			Name:   product.Name,
			Fields: fields,
		})

		if v, ok := fields.Get(FieldSalePriceTotal); ok {
			result.TotalPreVAT = result.TotalPreVAT.Add(v)
		}
		if v, ok := fields.Get(FieldPriceWithVATTotal); ok {
			result.TotalWithVAT = result.TotalWithVAT.Add(v)
		}
		if v, ok := fields.Get(FieldProfitTotal); ok {
			result.TotalProfit = result.TotalProfit.Add(v)
		}
		if v, ok := fields.Get(FieldCOGSTotal); ok {
			result.TotalCOGS = result.TotalCOGS.Add(v)
		}
		if v, ok := fields.Get(FieldLogisticsTotal); ok {
			result.TotalLogistics = result.TotalLogistics.Add(v)
		}
		if v, ok := fields.Get(FieldCustomsDuty); ok {
			result.TotalCustomsDuty = result.TotalCustomsDuty.Add(v)
		}
	}

	return result
}
