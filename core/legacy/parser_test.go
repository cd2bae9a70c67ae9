package legacy

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"quotecalc/core/types"
	"quotecalc/internal/errors"
)

type fixtureProduct struct {
	name     string
	qty      string
	weight   string
	price    string
	ccy      string
	country  string
	discount string
	rateSet  string
	rateQ    string
	hsCode   string
	tariff   string
	excise   string
	declared string
	expected map[string]string // legacy field -> raw cell value
}

func defaultFixtureProduct() fixtureProduct {
	return fixtureProduct{
		name:     "pump unit",
		qty:      "10",
		weight:   "1",
		price:    "100",
		ccy:      "USD",
		country:  "CN",
		discount: "0",
		rateSet:  "90",
		rateQ:    "1",
		hsCode:   "8413700000",
		tariff:   "5",
		excise:   "0",
		declared: "12000",
		expected: map[string]string{
			LegacyPurchaseTotal:    "90000",
			LegacyLogistics:        "20",
			LegacyDuty:             "4501",
			LegacyCostPrice:        "94521",
			LegacyPriceNoVAT:       "132000",
			LegacyVAT:              "26400",
			LegacyPriceUnitWithVAT: "15840",
			LegacyProfit:           "37479",
		},
	}
}

// buildWorkbook writes a v1-layout fixture with the given sheet name and
// product rows, plus optional decoy sheets before it.
func buildWorkbook(t *testing.T, sheetName string, products []fixtureProduct, decoys ...string) *XLSXWorkbook {
	t.Helper()
	f := excelize.NewFile()

	for _, d := range decoys {
		if _, err := f.NewSheet(d); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := f.NewSheet(sheetName); err != nil {
		t.Fatal(err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		t.Fatal(err)
	}

	set := func(addr, value string) {
		if err := f.SetCellValue(sheetName, addr, value); err != nil {
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

	// structural markers: the calculation header row
	set("B11", "Qty")
	set("D11", "Price")
	set("N11", "Purchase")
	set("R11", "Cost price")
	set("W11", "Profit")

	m := CellMapV1()
	for i, p := range products {
		row := m.FirstProductRow + i
		cell := func(col string) string { return fmt.Sprintf("%s%d", col, row) }
		set(cell("A"), p.name)
		set(cell("B"), p.qty)
		set(cell("C"), p.weight)
		set(cell("D"), p.price)
		set(cell("E"), p.ccy)
		set(cell("F"), p.country)
		set(cell("G"), p.discount)
		set(cell("H"), p.rateSet)
		set(cell("I"), p.rateQ)
		set(cell("J"), p.hsCode)
		set(cell("K"), p.tariff)
		set(cell("L"), p.excise)
		set(cell("M"), p.declared)
		for field, raw := range p.expected {
			set(cell(m.ExpectedColumns[field]), raw)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	wb, err := ReadWorkbook(&buf)
	if err != nil {
		t.Fatalf("ReadWorkbook: %v", err)
	}
	return wb
}

func TestParseExactSheetName(t *testing.T) {
	wb := buildWorkbook(t, "Calculation", []fixtureProduct{defaultFixtureProduct()})
	defer wb.Close()

	parsed, err := NewParser().Parse(wb)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if parsed.Sheet != "Calculation" {
		t.Errorf("Sheet = %q, want Calculation", parsed.Sheet)
	}
	if parsed.Quote.SaleType != types.SaleCommission {
		t.Errorf("SaleType = %q, want commission", parsed.Quote.SaleType)
	}
	if parsed.Quote.DisplayCurrency != types.CurrencyUSD {
		t.Errorf("DisplayCurrency = %q, want USD", parsed.Quote.DisplayCurrency)
	}
	if !parsed.Quote.AdvancePct.Equal(decimal.NewFromInt(100)) {
		t.Errorf("AdvancePct = %s, want 100", parsed.Quote.AdvancePct)
	}
	if len(parsed.Products) != 1 {
		t.Fatalf("got %d products, want 1", len(parsed.Products))
	}

	p := parsed.Products[0]
	if p.Quantity != 10 {
		t.Errorf("Quantity = %d, want 10", p.Quantity)
	}
	if !p.BasePrice.Equal(decimal.NewFromInt(100)) {
		t.Errorf("BasePrice = %s, want 100", p.BasePrice)
	}
	if p.Currency != types.CurrencyUSD {
		t.Errorf("Currency = %q, want USD", p.Currency)
	}
	if p.CustomsCode != "8413700000" {
		t.Errorf("CustomsCode = %q", p.CustomsCode)
	}
	if !p.RateToSettlement.Equal(decimal.NewFromInt(90)) {
		t.Errorf("RateToSettlement = %s, want 90", p.RateToSettlement)
	}

	exp := parsed.Expected[0]
	if !exp[LegacyCostPrice].Equal(decimal.NewFromInt(94521)) {
		t.Errorf("expected cost_price = %s, want 94521", exp[LegacyCostPrice])
	}
	if _, present := exp[LegacyPriceUnitNoVAT]; present {
		t.Error("absent expected cell should be an absent key")
	}
}

// A renamed calculation sheet must still be found via the substring
// fallback and parse identically to the exact-name file.
func TestParseSubstringFallback(t *testing.T) {
	exact := buildWorkbook(t, "Calculation", []fixtureProduct{defaultFixtureProduct()})
	defer exact.Close()
	renamed := buildWorkbook(t, "Final calculation 2024", []fixtureProduct{defaultFixtureProduct()}, "Notes")
	defer renamed.Close()

	parser := NewParser()
	a, err := parser.Parse(exact)
	if err != nil {
		t.Fatal(err)
	}
	b, err := parser.Parse(renamed)
	if err != nil {
		t.Fatal(err)
	}

	if b.Sheet != "Final calculation 2024" {
		t.Errorf("Sheet = %q", b.Sheet)
	}
	if len(a.Products) != len(b.Products) {
		t.Fatalf("product counts differ: %d vs %d", len(a.Products), len(b.Products))
	}
	if !a.Products[0].BasePrice.Equal(b.Products[0].BasePrice) ||
		a.Products[0].Quantity != b.Products[0].Quantity {
		t.Error("renamed sheet parsed differently from exact-name sheet")
	}
	if !a.Expected[0][LegacyCostPrice].Equal(b.Expected[0][LegacyCostPrice]) {
		t.Error("expected values differ between exact and renamed sheets")
	}
}

// A sheet with an unrelated name must be found via structural markers.
func TestParseStructuralFallback(t *testing.T) {
	wb := buildWorkbook(t, "Расчет КП", []fixtureProduct{defaultFixtureProduct()}, "Cover")
	defer wb.Close()

	parsed, err := NewParser().Parse(wb)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.Sheet != "Расчет КП" {
		t.Errorf("Sheet = %q", parsed.Sheet)
	}
}

func TestSheetNotFoundListsAttempts(t *testing.T) {
	f := excelize.NewFile()
	if _, err := f.NewSheet("Cover"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.NewSheet("Terms"); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	wb, err := ReadWorkbook(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer wb.Close()

	_, err = NewParser().Parse(wb)
	if err == nil {
		t.Fatal("expected SheetNotFound")
	}
	if !errors.IsType(err, errors.TypeSheetNotFound) {
		t.Fatalf("expected SHEET_NOT_FOUND, got %v", err)
	}
	msg := err.Error()
	for _, name := range []string{"Cover", "Terms", "B11"} {
		if !strings.Contains(msg, name) {
			t.Errorf("error should mention %q: %s", name, msg)
		}
	}
}

// Products occupy consecutive rows; the scan stops at the first empty
// anchor cell.
func TestRowExtentDetection(t *testing.T) {
	products := []fixtureProduct{defaultFixtureProduct(), defaultFixtureProduct(), defaultFixtureProduct()}
	products[1].name = "valve"
	products[1].qty = "3"
	products[2].name = "gasket kit"
	products[2].qty = "250"

	wb := buildWorkbook(t, "Calculation", products)
	defer wb.Close()

	parsed, err := NewParser().Parse(wb)
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed.Products) != 3 {
		t.Fatalf("got %d products, want 3", len(parsed.Products))
	}
	if parsed.Products[2].Quantity != 250 {
		t.Errorf("third product quantity = %d, want 250", parsed.Products[2].Quantity)
	}
	if len(parsed.Expected) != 3 {
		t.Errorf("got %d expected maps, want 3", len(parsed.Expected))
	}
}

func TestRegionalNumberFormats(t *testing.T) {
	p := defaultFixtureProduct()
	p.price = "1 234,56"
	p.rateSet = "92,5"

	wb := buildWorkbook(t, "Calculation", []fixtureProduct{p})
	defer wb.Close()

	parsed, err := NewParser().Parse(wb)
	if err != nil {
		t.Fatal(err)
	}
	if !parsed.Products[0].BasePrice.Equal(decimal.RequireFromString("1234.56")) {
		t.Errorf("BasePrice = %s, want 1234.56", parsed.Products[0].BasePrice)
	}
	if !parsed.Products[0].RateToSettlement.Equal(decimal.RequireFromString("92.5")) {
		t.Errorf("RateToSettlement = %s, want 92.5", parsed.Products[0].RateToSettlement)
	}
}

func TestEmptyCalculationSheetRejected(t *testing.T) {
	wb := buildWorkbook(t, "Calculation", nil)
	defer wb.Close()

	_, err := NewParser().Parse(wb)
	if err == nil {
		t.Fatal("expected error for sheet without product rows")
	}
	if !errors.IsType(err, errors.TypeParsing) {
		t.Errorf("expected PARSING_ERROR, got %v", err)
	}
}
