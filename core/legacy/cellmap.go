// Package legacy - versioned cell-address mapping
package legacy

// CellMap is the declarative cell-to-field contract for one generation of
// the legacy spreadsheet layout. Cell addresses are an external
// compatibility contract with thousands of historical files: a layout
// change gets a new map version, never an in-place edit.
type CellMap struct {
	// Version identifies the layout generation
	Version string

	// SheetName is the canonical calculation worksheet name
	SheetName string

	// Markers are cells that exist only in the calculation layout; a
	// sheet qualifies structurally only if all are non-empty
	Markers []string

	// QuoteCells maps quote-level field names to cell addresses
	QuoteCells map[string]string

	// FirstProductRow is the row of the first product line
	FirstProductRow int

	// AnchorColumn holds the per-row anchor cell (quantity); scanning
	// stops at the first empty anchor
	AnchorColumn string

	// ProductColumns maps engine input field names to column letters
	ProductColumns map[string]string

	// ExpectedColumns maps legacy output field names to column letters
	ExpectedColumns map[string]string

	// MaxProductRows caps the downward scan
	MaxProductRows int
}

// Quote-level field names used in CellMap.QuoteCells
const (
	QuoteFieldSellerEntity       = "seller_entity"
	QuoteFieldSaleType           = "sale_type"
	QuoteFieldIncoterm           = "incoterm"
	QuoteFieldDisplayCurrency    = "display_currency"
	QuoteFieldDestinationCountry = "destination_country"
	QuoteFieldAdvancePct         = "advance_pct"
	QuoteFieldAdvanceDueDays     = "advance_due_days"
	QuoteFieldSettlementDate     = "settlement_date"
)

// Legacy output field names produced by the expected-value extraction.
// The validator's field-mapping table translates engine fields to these.
const (
	LegacyPurchaseTotal    = "purchase_total"
	LegacyLogistics        = "logistics"
	LegacyDuty             = "duty"
	LegacyExcise           = "excise"
	LegacyCostPrice        = "cost_price"
	LegacyPriceNoVAT       = "price_no_vat"
	LegacyPriceUnitNoVAT   = "price_unit_no_vat"
	LegacyVAT              = "vat"
	LegacyPriceUnitWithVAT = "price_unit_with_vat"
	LegacyProfit           = "profit"
)

// CellMapV1 is the layout used by every historical file to date.
func CellMapV1() *CellMap {
	return &CellMap{
		Version:   "v1",
		SheetName: "Calculation",
		Markers:   []string{"B11", "D11", "N11", "R11", "W11"},
		QuoteCells: map[string]string{
			QuoteFieldSellerEntity:       "C2",
			QuoteFieldSaleType:           "C3",
			QuoteFieldIncoterm:           "C4",
			QuoteFieldDisplayCurrency:    "C5",
			QuoteFieldDestinationCountry: "C6",
			QuoteFieldAdvancePct:         "C7",
			QuoteFieldAdvanceDueDays:     "C8",
			QuoteFieldSettlementDate:     "C9",
		},
		FirstProductRow: 12,
		AnchorColumn:    "B",
		ProductColumns: map[string]string{
			"name":                  "A",
			"quantity":              "B",
			"unit_weight_kg":        "C",
			"base_price":            "D",
			"currency":              "E",
			"supplier_country":      "F",
			"supplier_discount_pct": "G",
			"rate_to_settlement":    "H",
			"rate_to_quote":         "I",
			"customs_code":          "J",
			"import_tariff_pct":     "K",
			"excise_tax_pct":        "L",
			"declared_price_unit":   "M",
		},
		ExpectedColumns: map[string]string{
			LegacyPurchaseTotal:    "N",
			LegacyLogistics:        "O",
			LegacyDuty:             "P",
			LegacyExcise:           "Q",
			LegacyCostPrice:        "R",
			LegacyPriceNoVAT:       "S",
			LegacyPriceUnitNoVAT:   "T",
			LegacyVAT:              "U",
			LegacyPriceUnitWithVAT: "V",
			LegacyProfit:           "W",
		},
		MaxProductRows: 500,
	}
}
