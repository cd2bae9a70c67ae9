// Package types - quote and product input types
package types

import (
	"time"

	"github.com/shopspring/decimal"

	"quotecalc/internal/errors"
)

// SaleType distinguishes how revenue is earned on a quote
type SaleType string

const (
	// SaleDirect is a direct resale: cost-plus markup on COGS
	SaleDirect SaleType = "direct"

	// SaleCommission is a commission/agency sale: commission on a
	// client-declared price
	SaleCommission SaleType = "commission"
)

// String returns the string representation
func (s SaleType) String() string {
	return string(s)
}

// ProductInput holds one line item's commercial facts. Created once when a
// quote is drafted or parsed from a legacy file and never mutated; a new
// quote revision creates new inputs.
type ProductInput struct {
	// Name is a human-readable product label
	Name string `json:"name,omitempty"`

	// Quantity is the number of units; must be positive
	Quantity int `json:"quantity"`

	// UnitWeightKg is the weight of one unit in kilograms
	UnitWeightKg decimal.Decimal `json:"unit_weight_kg"`

	// BasePrice is the supplier's unit price with tax, in Currency
	BasePrice decimal.Decimal `json:"base_price"`

	// Currency is the product's native currency
	Currency Currency `json:"currency"`

	// SupplierCountry is the origin country code (e.g. "CN", "TR")
	SupplierCountry string `json:"supplier_country"`

	// SupplierDiscountPct is the supplier discount percentage
	SupplierDiscountPct decimal.Decimal `json:"supplier_discount_pct"`

	// RateToSettlement expresses 1 unit of Currency in settlement currency
	RateToSettlement decimal.Decimal `json:"rate_to_settlement"`

	// RateToQuote expresses 1 unit of Currency in the quote display currency
	RateToQuote decimal.Decimal `json:"rate_to_quote"`

	// CustomsCode is the customs classification (HS) code
	CustomsCode string `json:"customs_code"`

	// ImportTariffPct is the import tariff percentage for CustomsCode
	ImportTariffPct decimal.Decimal `json:"import_tariff_pct"`

	// ExciseTaxPct is the excise percentage for CustomsCode
	ExciseTaxPct decimal.Decimal `json:"excise_tax_pct"`

	// DeclaredPriceUnit is the client-declared unit price in settlement
	// currency; required for commission sales, ignored otherwise
	DeclaredPriceUnit decimal.Decimal `json:"declared_price_unit,omitempty"`
}

// Validate enforces the ProductInput invariants
func (p *ProductInput) Validate() error {
	if p.Quantity <= 0 {
		return errors.Newf(errors.TypeMissingOrInvalidInput, "quantity must be positive, got %d", p.Quantity).
			WithContext("field", "quantity")
	}
	if !p.Currency.Supported() {
		return errors.UnsupportedCurrency(string(p.Currency))
	}
	if p.BasePrice.IsNegative() {
		return errors.Newf(errors.TypeMissingOrInvalidInput, "base_price must be non-negative, got %s", p.BasePrice).
			WithContext("field", "base_price")
	}
	if p.RateToSettlement.Sign() <= 0 {
		return errors.Newf(errors.TypeMissingOrInvalidInput, "rate_to_settlement must be positive, got %s", p.RateToSettlement).
			WithContext("field", "rate_to_settlement")
	}
	if p.RateToQuote.Sign() <= 0 {
		return errors.Newf(errors.TypeMissingOrInvalidInput, "rate_to_quote must be positive, got %s", p.RateToQuote).
			WithContext("field", "rate_to_quote")
	}
	for field, pct := range map[string]decimal.Decimal{
		"supplier_discount_pct": p.SupplierDiscountPct,
		"import_tariff_pct":     p.ImportTariffPct,
		"excise_tax_pct":        p.ExciseTaxPct,
	} {
		if pct.IsNegative() {
			return errors.Newf(errors.TypeMissingOrInvalidInput, "%s must be non-negative, got %s", field, pct).
				WithContext("field", field)
		}
	}
	if p.UnitWeightKg.IsNegative() {
		return errors.Newf(errors.TypeMissingOrInvalidInput, "unit_weight_kg must be non-negative, got %s", p.UnitWeightKg).
			WithContext("field", "unit_weight_kg")
	}
	return nil
}

// TotalWeightKg returns quantity * unit weight
func (p *ProductInput) TotalWeightKg() decimal.Decimal {
	return p.UnitWeightKg.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// QuoteInput holds quote-level facts shared by all products
type QuoteInput struct {
	// SellerEntity is the selling legal entity
	SellerEntity string `json:"seller_entity"`

	// SaleType is direct or commission
	SaleType SaleType `json:"sale_type"`

	// Incoterm is the delivery incoterm (e.g. "DAP", "EXW")
	Incoterm string `json:"incoterm"`

	// DisplayCurrency is the currency shown to the client
	DisplayCurrency Currency `json:"display_currency"`

	// DestinationCountry is the delivery country code; keys trade lanes
	DestinationCountry string `json:"destination_country"`

	// AdvancePct is the client advance payment percentage
	AdvancePct decimal.Decimal `json:"advance_pct"`

	// AdvanceDueDays is the number of days until the advance is due
	AdvanceDueDays int `json:"advance_due_days"`

	// SettlementDate selects the applicable VAT rate
	SettlementDate time.Time `json:"settlement_date"`
}

// Validate enforces the QuoteInput invariants
func (q *QuoteInput) Validate() error {
	switch q.SaleType {
	case SaleDirect, SaleCommission:
	default:
		return errors.Newf(errors.TypeMissingOrInvalidInput, "sale_type must be %q or %q, got %q", SaleDirect, SaleCommission, q.SaleType).
			WithContext("field", "sale_type")
	}
	if !q.DisplayCurrency.Supported() {
		return errors.UnsupportedCurrency(string(q.DisplayCurrency))
	}
	if q.DestinationCountry == "" {
		return errors.New(errors.TypeMissingOrInvalidInput, "destination_country is required").
			WithContext("field", "destination_country")
	}
	if q.AdvancePct.IsNegative() || q.AdvancePct.GreaterThan(decimal.NewFromInt(100)) {
		return errors.Newf(errors.TypeMissingOrInvalidInput, "advance_pct must be in [0,100], got %s", q.AdvancePct).
			WithContext("field", "advance_pct")
	}
	if q.AdvanceDueDays < 0 {
		return errors.Newf(errors.TypeMissingOrInvalidInput, "advance_due_days must be non-negative, got %d", q.AdvanceDueDays).
			WithContext("field", "advance_due_days")
	}
	return nil
}

// Lane returns the trade-lane key origin->destination for a product on
// this quote
func (q *QuoteInput) Lane(p *ProductInput) Lane {
	return Lane{Origin: p.SupplierCountry, Destination: q.DestinationCountry}
}
