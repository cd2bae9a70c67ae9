// Package report - terminal text renderer
package report

import (
	"fmt"
	"io"

	"quotecalc/core/validate"
)

// TextFormatter renders a terminal summary
type TextFormatter struct{}

// Format returns the format type
func (f *TextFormatter) Format() Format { return FormatText }

// Render writes the summary
func (f *TextFormatter) Render(w io.Writer, batch *validate.BatchResult) error {
	fmt.Fprintf(w, "Validation run %s (%s mode, tolerance %s)\n", batch.RunID, batch.Mode, batch.Tolerance)
	fmt.Fprintf(w, "Files: %d total, %d passed, %d failed (%.1f%% pass rate)\n",
		len(batch.Files), batch.PassedCount, batch.FailedCount, batch.PassRate()*100)

	worst := WorstFiles(batch, 10)
	if len(worst) == 0 {
		fmt.Fprintln(w, "All files passed.")
		return nil
	}

	fmt.Fprintln(w, "\nWorst deviations:")
	for _, file := range worst {
		if file.Err != "" {
			fmt.Fprintf(w, "  %s: ERROR %s\n", file.File, file.Err)
			continue
		}
		fmt.Fprintf(w, "  %s: max deviation %s\n", file.File, file.MaxDeviation)
		for _, fc := range FailingFields(&file) {
			fmt.Fprintf(w, "    %s (%s): expected %s, got %s, diff %s\n",
				fc.Field, fc.Phase, fc.Expected, fc.Actual, fc.Diff)
		}
	}
	return nil
}
