// Package validate replays parsed legacy quotes through the calculation
// engine and scores agreement field by field. Comparison is idempotent
// and side-effect-free: two runs on the same inputs yield identical
// results.
package validate

import (
	"github.com/shopspring/decimal"

	"quotecalc/core/engine"
	"quotecalc/core/legacy"
	"quotecalc/core/types"
	"quotecalc/internal/errors"
)

// Mode selects how many fields are checked
type Mode string

const (
	// ModeSummary checks the three terminal fields; fast regression runs
	ModeSummary Mode = "summary"

	// ModeDetailed checks fields spanning every phase; root-cause runs
	ModeDetailed Mode = "detailed"
)

// Options configures a validation run
type Options struct {
	// Mode is summary or detailed
	Mode Mode

	// Tolerance is the maximum allowed absolute deviation per field, in
	// settlement-currency units. Explicitly a tolerance, not exactness:
	// it absorbs legacy rounding noise.
	Tolerance decimal.Decimal
}

// DefaultOptions returns summary mode with the standard 2.00 tolerance
func DefaultOptions() Options {
	return Options{
		Mode:      ModeSummary,
		Tolerance: decimal.RequireFromString("2.00"),
	}
}

// Validator scores parsed legacy quotes against the engine
type Validator struct {
	engine  *engine.Engine
	mapping []FieldMapping
	opts    Options
}

// New creates a validator
func New(opts Options) *Validator {
	if opts.Mode == "" {
		opts.Mode = ModeSummary
	}
	return &Validator{
		engine:  engine.New(),
		mapping: MappingTable(),
		opts:    opts,
	}
}

// ValidateParsed runs the engine on a parsed file's inputs and compares
// every checked field against the legacy expected values. The returned
// error is reserved for mapping-table defects; data disagreements are
// reported inside the result.
func (v *Validator) ValidateParsed(parsed *legacy.ParsedQuote, settings *types.OrganizationSettings) (*types.ValidationResult, error) {
	result := &types.ValidationResult{
		File:   parsed.File,
		Sheet:  parsed.Sheet,
		Passed: true,
	}

	for i := range parsed.Products {
		comp, err := v.compareProduct(i, &parsed.Products[i], &parsed.Quote, parsed.Expected[i], settings)
		if err != nil {
			return nil, err
		}
		result.Products = append(result.Products, *comp)
		if !comp.Passed {
			result.Passed = false
		}
		if comp.MaxDeviation.GreaterThan(result.MaxDeviation) {
			result.MaxDeviation = comp.MaxDeviation
		}
	}
	return result, nil
}

func (v *Validator) compareProduct(index int, product *types.ProductInput, quote *types.QuoteInput, expected map[string]decimal.Decimal, settings *types.OrganizationSettings) (*types.ProductComparison, error) {
	comp := &types.ProductComparison{
		Index:  index,
		Name:   product.Name,
		Passed: true,
	}

	fields, err := v.engine.CalculateProduct(product, quote, settings)
	if err != nil {
		comp.Passed = false
		comp.Err = err.Error()
		return comp, nil
	}

	for _, m := range v.mapping {
		if v.opts.Mode == ModeSummary && !m.Summary {
			continue
		}
		exp, ok := expected[m.LegacyField]
		if !ok {
			// cell absent in the legacy file; nothing to compare
			continue
		}
		actual, ok := fields.Get(m.EngineField)
		if !ok {
			// engine never wrote a mapped field: a defect in this
			// table, not a data problem
			return nil, errors.FieldMappingMissing(m.EngineField)
		}

		diff := exp.Sub(actual).Abs()
		fc := types.FieldComparison{
			Field:       m.EngineField,
			LegacyField: m.LegacyField,
			Phase:       m.Phase,
			Expected:    exp,
			Actual:      actual,
			Diff:        diff,
			Passed:      diff.LessThanOrEqual(v.opts.Tolerance),
		}
		comp.Fields = append(comp.Fields, fc)
		if !fc.Passed {
			comp.Passed = false
		}
		if diff.GreaterThan(comp.MaxDeviation) {
			comp.MaxDeviation = diff
		}
	}
	return comp, nil
}

// ValidateFile parses and validates one legacy file
func (v *Validator) ValidateFile(path string, settings *types.OrganizationSettings) *types.ValidationResult {
	parsed, err := legacy.NewParser().ParseFile(path)
	if err != nil {
		return &types.ValidationResult{File: path, Err: err.Error()}
	}
	result, err := v.ValidateParsed(parsed, settings)
	if err != nil {
		return &types.ValidationResult{File: path, Sheet: parsed.Sheet, Err: err.Error()}
	}
	return result
}
