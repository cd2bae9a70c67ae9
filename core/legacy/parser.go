// Package legacy - input and expected-value extraction
package legacy

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"quotecalc/core/types"
	"quotecalc/internal/errors"
)

// ParsedQuote is the parser's output: the same shapes the engine
// consumes, plus the legacy-computed expected values per product.
type ParsedQuote struct {
	// File is the source path, when parsed from disk
	File string

	// Sheet is the worksheet the locator selected
	Sheet string

	// Quote holds the quote-level inputs
	Quote types.QuoteInput

	// Products holds the per-product inputs in row order
	Products []types.ProductInput

	// Expected holds, per product, the legacy output values keyed by
	// legacy field name; absent cells are absent keys
	Expected []map[string]decimal.Decimal
}

// Parser extracts a ParsedQuote from a legacy workbook
type Parser struct {
	// Map is the cell-address contract in effect
	Map *CellMap
}

// NewParser creates a parser bound to the current layout generation
func NewParser() *Parser {
	return &Parser{Map: CellMapV1()}
}

// ParseFile opens and parses a legacy quote file
func (p *Parser) ParseFile(path string) (*ParsedQuote, error) {
	wb, err := OpenWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	parsed, err := p.Parse(wb)
	if err != nil {
		return nil, err
	}
	parsed.File = path
	return parsed, nil
}

// Parse extracts inputs and expected outputs from a workbook
func (p *Parser) Parse(wb Workbook) (*ParsedQuote, error) {
	sheet, err := LocateSheet(wb, p.Map)
	if err != nil {
		return nil, err
	}

	quote, err := p.parseQuote(wb, sheet)
	if err != nil {
		return nil, err
	}

	parsed := &ParsedQuote{Sheet: sheet, Quote: quote}
	for row := p.Map.FirstProductRow; row < p.Map.FirstProductRow+p.Map.MaxProductRows; row++ {
		anchor, err := wb.CellValue(sheet, p.Map.AnchorColumn+strconv.Itoa(row))
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(anchor) == "" {
			break
		}

		product, err := p.parseProduct(wb, sheet, row)
		if err != nil {
			return nil, err
		}
		expected, err := p.parseExpected(wb, sheet, row)
		if err != nil {
			return nil, err
		}
		parsed.Products = append(parsed.Products, product)
		parsed.Expected = append(parsed.Expected, expected)
	}

	if len(parsed.Products) == 0 {
		return nil, errors.Newf(errors.TypeParsing, "sheet %q has no product rows at row %d", sheet, p.Map.FirstProductRow)
	}
	return parsed, nil
}

func (p *Parser) parseQuote(wb Workbook, sheet string) (types.QuoteInput, error) {
	var q types.QuoteInput

	get := func(field string) (string, error) {
		addr, ok := p.Map.QuoteCells[field]
		if !ok {
			return "", errors.FieldMappingMissing(field)
		}
		v, err := wb.CellValue(sheet, addr)
		return strings.TrimSpace(v), err
	}

	var err error
	if q.SellerEntity, err = get(QuoteFieldSellerEntity); err != nil {
		return q, err
	}
	rawSale, err := get(QuoteFieldSaleType)
	if err != nil {
		return q, err
	}
	if q.SaleType, err = parseSaleType(rawSale); err != nil {
		return q, err
	}
	if q.Incoterm, err = get(QuoteFieldIncoterm); err != nil {
		return q, err
	}
	rawCcy, err := get(QuoteFieldDisplayCurrency)
	if err != nil {
		return q, err
	}
	q.DisplayCurrency = types.Currency(strings.ToUpper(rawCcy))
	if q.DestinationCountry, err = get(QuoteFieldDestinationCountry); err != nil {
		return q, err
	}

	rawAdvance, err := get(QuoteFieldAdvancePct)
	if err != nil {
		return q, err
	}
	if q.AdvancePct, err = parseCellDecimal(sheet, p.Map.QuoteCells[QuoteFieldAdvancePct], rawAdvance); err != nil {
		return q, err
	}
	rawDays, err := get(QuoteFieldAdvanceDueDays)
	if err != nil {
		return q, err
	}
	if rawDays != "" {
		days, convErr := strconv.Atoi(rawDays)
		if convErr != nil {
			return q, errors.Parsing("advance_due_days is not an integer: "+rawDays, convErr)
		}
		q.AdvanceDueDays = days
	}
	rawDate, err := get(QuoteFieldSettlementDate)
	if err != nil {
		return q, err
	}
	q.SettlementDate = parseCellDate(rawDate)
	return q, nil
}

func (p *Parser) parseProduct(wb Workbook, sheet string, row int) (types.ProductInput, error) {
	var product types.ProductInput

	get := func(field string) (string, string, error) {
		col, ok := p.Map.ProductColumns[field]
		if !ok {
			return "", "", errors.FieldMappingMissing(field)
		}
		addr := col + strconv.Itoa(row)
		v, err := wb.CellValue(sheet, addr)
		return strings.TrimSpace(v), addr, err
	}
	dec := func(field string) (decimal.Decimal, error) {
		raw, addr, err := get(field)
		if err != nil {
			return decimal.Zero, err
		}
		return parseCellDecimal(sheet, addr, raw)
	}

	var err error
	if product.Name, _, err = get("name"); err != nil {
		return product, err
	}
	rawQty, addr, err := get("quantity")
	if err != nil {
		return product, err
	}
	qty, convErr := strconv.Atoi(rawQty)
	if convErr != nil {
		return product, errors.Parsing("quantity at "+sheet+"!"+addr+" is not an integer: "+rawQty, convErr)
	}
	product.Quantity = qty

	if product.UnitWeightKg, err = dec("unit_weight_kg"); err != nil {
		return product, err
	}
	if product.BasePrice, err = dec("base_price"); err != nil {
		return product, err
	}
	rawCcy, _, err := get("currency")
	if err != nil {
		return product, err
	}
	product.Currency = types.Currency(strings.ToUpper(rawCcy))
	if product.SupplierCountry, _, err = get("supplier_country"); err != nil {
		return product, err
	}
	if product.SupplierDiscountPct, err = dec("supplier_discount_pct"); err != nil {
		return product, err
	}
	if product.RateToSettlement, err = dec("rate_to_settlement"); err != nil {
		return product, err
	}
	if product.RateToQuote, err = dec("rate_to_quote"); err != nil {
		return product, err
	}
	if product.CustomsCode, _, err = get("customs_code"); err != nil {
		return product, err
	}
	if product.ImportTariffPct, err = dec("import_tariff_pct"); err != nil {
		return product, err
	}
	if product.ExciseTaxPct, err = dec("excise_tax_pct"); err != nil {
		return product, err
	}
	if product.DeclaredPriceUnit, err = dec("declared_price_unit"); err != nil {
		return product, err
	}
	return product, nil
}

func (p *Parser) parseExpected(wb Workbook, sheet string, row int) (map[string]decimal.Decimal, error) {
	expected := make(map[string]decimal.Decimal, len(p.Map.ExpectedColumns))
	for field, col := range p.Map.ExpectedColumns {
		addr := col + strconv.Itoa(row)
		raw, err := wb.CellValue(sheet, addr)
		if err != nil {
			return nil, err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		v, err := parseCellDecimal(sheet, addr, raw)
		if err != nil {
			return nil, err
		}
		expected[field] = v
	}
	return expected, nil
}

func parseSaleType(raw string) (types.SaleType, error) {
	switch strings.ToLower(raw) {
	case "direct", "direct sale":
		return types.SaleDirect, nil
	case "commission", "agency":
		return types.SaleCommission, nil
	default:
		return "", errors.Newf(errors.TypeParsing, "unknown sale type %q", raw)
	}
}

// parseCellDecimal tolerates the legacy files' regional formatting:
// comma decimal separators and space (including non-breaking) thousands
// grouping.
func parseCellDecimal(sheet, addr, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	clean := strings.NewReplacer(",", ".", " ", "", " ", "").Replace(raw)
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, errors.Parsing("cell "+sheet+"!"+addr+" is not numeric: "+raw, err)
	}
	return d, nil
}

// parseCellDate tries the date layouts seen in historical files; a cell
// that matches none yields the zero time (current VAT rate applies).
func parseCellDate(raw string) time.Time {
	layouts := []string{"2006-01-02", "02.01.2006", "01-02-06", time.RFC3339}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
