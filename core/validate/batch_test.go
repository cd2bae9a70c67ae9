package validate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"quotecalc/core/legacy"
)

// writeFixtureFile renders the parsedFixture quote as a v1-layout xlsx.
func writeFixtureFile(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	const sheet = "Calculation"
	if _, err := f.NewSheet(sheet); err != nil {
		t.Fatal(err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		t.Fatal(err)
	}

	set := func(addr, value string) {
		if err := f.SetCellValue(sheet, addr, value); err != nil {
			t.Fatal(err)
		}
	}

	set("C2", "TradeCo LLC")
	set("C3", "commission")
	set("C4", "DAP")
	set("C5", "USD")
	set("C6", "RU")
	set("C7", "100")
	set("C8", "0")
	set("C9", "2024-06-01")
	set("B11", "Qty")
	set("D11", "Price")
	set("N11", "Purchase")
	set("R11", "Cost price")
	set("W11", "Profit")

	m := legacy.CellMapV1()
	row := m.FirstProductRow
	cell := func(col string) string { return fmt.Sprintf("%s%d", col, row) }
	product := fixtureProduct()
	set(cell("A"), product.Name)
	set(cell("B"), "10")
	set(cell("C"), "1")
	set(cell("D"), "100")
	set(cell("E"), "USD")
	set(cell("F"), "CN")
	set(cell("G"), "0")
	set(cell("H"), "90")
	set(cell("I"), "1")
	set(cell("J"), product.CustomsCode)
	set(cell("K"), "5")
	set(cell("L"), "0")
	set(cell("M"), "12000")
	for field, v := range engineExpected() {
		set(cell(m.ExpectedColumns[field]), v.String())
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
}

// A corrupt file must fail alone; the rest of the batch still runs.
func TestBatchContinuesPastBadFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "quote-001.xlsx")
	alsoGood := filepath.Join(dir, "quote-002.xlsx")
	corrupt := filepath.Join(dir, "quote-003.xlsx")

	writeFixtureFile(t, good)
	writeFixtureFile(t, alsoGood)
	if err := os.WriteFile(corrupt, []byte("not a workbook"), 0644); err != nil {
		t.Fatal(err)
	}

	v := New(Options{Mode: ModeDetailed, Tolerance: decimal.RequireFromString("2.00")})
	batch, err := v.ValidateBatch(context.Background(), []string{good, corrupt, alsoGood}, plainSettings(), 2)
	if err != nil {
		t.Fatalf("ValidateBatch: %v", err)
	}

	if len(batch.Files) != 3 {
		t.Fatalf("got %d file results, want 3", len(batch.Files))
	}
	if batch.PassedCount != 2 || batch.FailedCount != 1 {
		t.Errorf("passed=%d failed=%d, want 2/1", batch.PassedCount, batch.FailedCount)
	}
	// results keep input order
	if !batch.Files[0].Passed || !batch.Files[2].Passed {
		t.Error("good files should pass")
	}
	if batch.Files[1].Err == "" {
		t.Error("corrupt file should carry its error")
	}
	if batch.RunID == "" {
		t.Error("batch should carry a run ID")
	}
}

func TestValidateFileEndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quote.xlsx")
	writeFixtureFile(t, path)

	v := New(DefaultOptions())
	result := v.ValidateFile(path, plainSettings())

	if result.Err != "" {
		t.Fatalf("unexpected error: %s", result.Err)
	}
	if !result.Passed {
		t.Fatalf("expected pass, got %+v", result)
	}
	if result.Sheet != "Calculation" {
		t.Errorf("Sheet = %q", result.Sheet)
	}
}
