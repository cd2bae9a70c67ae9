// Package report renders human-readable summaries of batch validation
// runs: pass rate and the worst deviations. Pure presentation over
// validate.BatchResult.
package report

import (
	"io"
	"sort"

	"quotecalc/core/types"
	"quotecalc/core/validate"
	"quotecalc/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatText is a human-readable terminal summary
	FormatText Format = "text"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatHTML is an HTML report
	FormatHTML Format = "html"

	// FormatPDF is a printable PDF summary
	FormatPDF Format = "pdf"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given batch
	Render(w io.Writer, batch *validate.BatchResult) error
}

var formatters = map[Format]Formatter{}

// Register adds a formatter to the registry
func Register(f Formatter) {
	formatters[f.Format()] = f
}

// Get returns a formatter for a format type
func Get(format Format) (Formatter, error) {
	f, ok := formatters[format]
	if !ok {
		return nil, errors.Newf(errors.TypeConfig, "unknown report format %q", format)
	}
	return f, nil
}

func init() {
	Register(&TextFormatter{})
	Register(&JSONFormatter{})
	Register(&HTMLFormatter{})
	Register(&PDFFormatter{})
}

// WorstFiles returns up to n non-passing files ranked by severity:
// deviation failures first, largest deviation first, then files that
// errored outright. Ties break on file name so reports are stable.
func WorstFiles(batch *validate.BatchResult, n int) []types.ValidationResult {
	var failed []types.ValidationResult
	for _, f := range batch.Files {
		if !f.Passed || f.Err != "" {
			failed = append(failed, f)
		}
	}
	sort.Slice(failed, func(i, j int) bool {
		a, b := failed[i], failed[j]
		if !a.MaxDeviation.Equal(b.MaxDeviation) {
			return a.MaxDeviation.GreaterThan(b.MaxDeviation)
		}
		return a.File < b.File
	})
	if n > 0 && len(failed) > n {
		failed = failed[:n]
	}
	return failed
}

// FailingFields returns a file's failing field comparisons across all
// products, for the detail section of a report.
func FailingFields(result *types.ValidationResult) []types.FieldComparison {
	var out []types.FieldComparison
	for _, p := range result.Products {
		for _, f := range p.Fields {
			if !f.Passed {
				out = append(out, f)
			}
		}
	}
	return out
}
