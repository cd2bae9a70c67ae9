// Package types - calculation result types
package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"quotecalc/internal/errors"
)

// PhaseResult is an insertion-ordered mapping from field identifier to
// computed decimal value for one product. Append-only during a run; each
// phase writes only the fields it owns and may read anything written
// before it.
type PhaseResult struct {
	order  []string
	values map[string]decimal.Decimal
	phases map[string]string
}

// NewPhaseResult creates an empty result
func NewPhaseResult() *PhaseResult {
	return &PhaseResult{
		values: make(map[string]decimal.Decimal),
		phases: make(map[string]string),
	}
}

// Set records a field owned by the given phase. Writing a field twice is
// a phase-ownership violation.
func (r *PhaseResult) Set(phase, field string, value decimal.Decimal) error {
	if _, exists := r.values[field]; exists {
		return errors.Newf(errors.TypeInternal, "field %q already written by phase %q", field, r.phases[field]).
			WithContext("field", field).
			WithContext("phase", phase)
	}
	r.order = append(r.order, field)
	r.values[field] = value
	r.phases[field] = phase
	return nil
}

// Get retrieves a field value
func (r *PhaseResult) Get(field string) (decimal.Decimal, bool) {
	v, ok := r.values[field]
	return v, ok
}

// MustGet retrieves a field that an earlier phase is required to have
// written; a miss is a missing-input failure attributed to that phase.
func (r *PhaseResult) MustGet(phase, field string) (decimal.Decimal, error) {
	v, ok := r.values[field]
	if !ok {
		return decimal.Zero, errors.MissingInput(phase, field, "not computed by any earlier phase")
	}
	return v, nil
}

// Phase returns the name of the phase that wrote a field
func (r *PhaseResult) Phase(field string) string {
	return r.phases[field]
}

// Fields returns the field identifiers in write order
func (r *PhaseResult) Fields() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of fields written
func (r *PhaseResult) Len() int {
	return len(r.order)
}

// MarshalJSON renders the result as an ordered array of field entries
func (r *PhaseResult) MarshalJSON() ([]byte, error) {
	type entry struct {
		Field string          `json:"field"`
		Phase string          `json:"phase"`
		Value decimal.Decimal `json:"value"`
	}
	entries := make([]entry, 0, len(r.order))
	for _, f := range r.order {
		entries = append(entries, entry{Field: f, Phase: r.phases[f], Value: r.values[f]})
	}
	return json.Marshal(entries)
}

// ProductResult pairs one product's inputs with its computed fields, or
// with the error that aborted its computation
type ProductResult struct {
	// Index is the product's position in the quote
	Index int `json:"index"`

	// Name is the product label
	Name string `json:"name,omitempty"`

	// Fields is the full computed field set; nil when Err is set
	Fields *PhaseResult `json:"fields,omitempty"`

	// Err carries the per-product failure, attributed to field and phase
	Err string `json:"error,omitempty"`
}

// QuoteCalculationResult aggregates all products' results. Persisted for
// a finalized quote and compared against legacy results by the validator.
type QuoteCalculationResult struct {
	// Products holds per-product results in input order
	Products []ProductResult `json:"products"`

	// Totals in settlement currency across products that computed
	TotalPreVAT      decimal.Decimal `json:"total_pre_vat"`
	TotalWithVAT     decimal.Decimal `json:"total_with_vat"`
	TotalProfit      decimal.Decimal `json:"total_profit"`
	TotalCOGS        decimal.Decimal `json:"total_cogs"`
	TotalLogistics   decimal.Decimal `json:"total_logistics"`
	TotalCustomsDuty decimal.Decimal `json:"total_customs_duty"`

	// Failed counts products whose computation aborted
	Failed int `json:"failed"`
}
