// Package report - JSON renderer
package report

import (
	"encoding/json"
	"io"

	"quotecalc/core/validate"
)

// JSONFormatter renders the full batch result as indented JSON, for
// regression suites and downstream tooling
type JSONFormatter struct{}

// Format returns the format type
func (f *JSONFormatter) Format() Format { return FormatJSON }

// Render writes the batch as JSON
func (f *JSONFormatter) Render(w io.Writer, batch *validate.BatchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(batch)
}
