// Package types - validation report types
//
// These are produced fresh on each validation run and never persisted as
// quote data.
package types

import (
	"github.com/shopspring/decimal"
)

// FieldComparison is the leaf of a validation report: one engine field
// against its legacy expected value
type FieldComparison struct {
	// Field is the engine field identifier
	Field string `json:"field"`

	// LegacyField is the legacy-side field identifier it was matched to
	LegacyField string `json:"legacy_field"`

	// Phase is the engine phase that owns the field, for diagnosis
	Phase string `json:"phase"`

	// Expected is the legacy-computed value
	Expected decimal.Decimal `json:"expected"`

	// Actual is the engine-computed value
	Actual decimal.Decimal `json:"actual"`

	// Diff is |Expected - Actual|
	Diff decimal.Decimal `json:"diff"`

	// Passed is true iff Diff <= tolerance
	Passed bool `json:"passed"`
}

// ProductComparison scores one product
type ProductComparison struct {
	// Index is the product's position in the parsed file
	Index int `json:"index"`

	// Name is the product label
	Name string `json:"name,omitempty"`

	// Fields holds the per-field comparisons in mapping-table order
	Fields []FieldComparison `json:"fields"`

	// Passed is true iff every checked field passed
	Passed bool `json:"passed"`

	// MaxDeviation is the largest Diff across Fields
	MaxDeviation decimal.Decimal `json:"max_deviation"`

	// Err carries a per-product engine failure, if any
	Err string `json:"error,omitempty"`
}

// ValidationResult scores one legacy file
type ValidationResult struct {
	// File is the source file path
	File string `json:"file"`

	// Sheet is the worksheet the parser located
	Sheet string `json:"sheet,omitempty"`

	// Products holds per-product comparisons
	Products []ProductComparison `json:"products"`

	// Passed is true iff every product passed
	Passed bool `json:"passed"`

	// MaxDeviation is the largest Diff across all products and fields;
	// ranks failing files by severity
	MaxDeviation decimal.Decimal `json:"max_deviation"`

	// Err carries a per-file failure (for example SheetNotFound); a file
	// error never aborts a batch
	Err string `json:"error,omitempty"`
}
