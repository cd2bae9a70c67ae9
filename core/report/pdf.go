// Package report - PDF renderer
package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"quotecalc/core/validate"
)

// PDFFormatter renders a printable one-page-per-section PDF summary
type PDFFormatter struct{}

// Format returns the format type
func (f *PDFFormatter) Format() Format { return FormatPDF }

// Render writes the PDF report
func (f *PDFFormatter) Render(w io.Writer, batch *validate.BatchResult) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Quote Validation Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Run: %s", batch.RunID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Mode: %s, tolerance %s", batch.Mode, batch.Tolerance))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", batch.GeneratedAt.Format("2006-01-02 15:04:05")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Files: %d total, %d passed, %d failed (%.1f%% pass rate)",
		len(batch.Files), batch.PassedCount, batch.FailedCount, batch.PassRate()*100))
	pdf.Ln(10)

	worst := WorstFiles(batch, 10)
	if len(worst) == 0 {
		pdf.Cell(0, 6, "All files passed.")
	} else {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(90, 6, "File", "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, "Max deviation", "1", 0, "R", false, 0, "")
		pdf.CellFormat(60, 6, "Error", "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
		for _, file := range worst {
			pdf.CellFormat(90, 6, file.File, "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, file.MaxDeviation.String(), "1", 0, "R", false, 0, "")
			errMsg := file.Err
			if len(errMsg) > 40 {
				errMsg = errMsg[:40]
			}
			pdf.CellFormat(60, 6, errMsg, "1", 0, "L", false, 0, "")
			pdf.Ln(-1)
		}
	}

	return pdf.Output(w)
}
