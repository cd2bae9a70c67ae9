// Package legacy - calculation worksheet location
package legacy

import (
	"strings"

	"quotecalc/internal/errors"
)

// LocateSheet finds the calculation worksheet using a three-level
// fallback, first success wins:
//
//  1. exact name match
//  2. case-insensitive substring match
//  3. structural detection: every marker cell present and non-empty
//
// On failure the error lists the sheets that were tried and the markers
// that were expected.
func LocateSheet(wb Workbook, m *CellMap) (string, error) {
	names := wb.SheetNames()

	for _, name := range names {
		if name == m.SheetName {
			return name, nil
		}
	}

	want := strings.ToLower(m.SheetName)
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), want) {
			return name, nil
		}
	}

	for _, name := range names {
		if hasAllMarkers(wb, name, m.Markers) {
			return name, nil
		}
	}

	return "", errors.SheetNotFound(names, m.Markers)
}

func hasAllMarkers(wb Workbook, sheet string, markers []string) bool {
	for _, addr := range markers {
		v, err := wb.CellValue(sheet, addr)
		if err != nil || strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
