// Package legacy parses historical spreadsheet quotes: it extracts the
// input variables the engine expects and the legacy-computed output
// values, without recomputing anything.
package legacy

import (
	"io"

	"github.com/xuri/excelize/v2"

	"quotecalc/internal/errors"
)

// Workbook is the narrow boundary between file I/O and the pure
// extraction logic. Only materialized cell values are exposed, never
// formulas: the parser reports whatever the legacy tool last computed.
type Workbook interface {
	// SheetNames returns the worksheet names in workbook order
	SheetNames() []string

	// CellValue returns the materialized value of a cell ("" when empty)
	CellValue(sheet, addr string) (string, error)
}

// XLSXWorkbook is an excelize-backed Workbook
type XLSXWorkbook struct {
	f *excelize.File
}

// OpenWorkbook opens an xlsx file from disk
func OpenWorkbook(path string) (*XLSXWorkbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Parsing("opening workbook "+path, err)
	}
	return &XLSXWorkbook{f: f}, nil
}

// ReadWorkbook reads an xlsx workbook from a stream
func ReadWorkbook(r io.Reader) (*XLSXWorkbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Parsing("reading workbook", err)
	}
	return &XLSXWorkbook{f: f}, nil
}

// SheetNames returns the worksheet names in workbook order
func (w *XLSXWorkbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// CellValue returns the materialized value of a cell
func (w *XLSXWorkbook) CellValue(sheet, addr string) (string, error) {
	v, err := w.f.GetCellValue(sheet, addr)
	if err != nil {
		return "", errors.Parsing("reading cell "+sheet+"!"+addr, err)
	}
	return v, nil
}

// Close releases the underlying file
func (w *XLSXWorkbook) Close() error {
	return w.f.Close()
}
