// Package engine - field and phase identifiers
package engine

// Phase names, in pipeline order
const (
	PhaseCurrencyNormalization = "currency_normalization"
	PhasePurchasePrice         = "purchase_price"
	PhaseLogistics             = "logistics"
	PhaseCustomsDuty           = "customs_duty"
	PhasePackagingHandling     = "packaging_handling"
	PhaseInternalMarkup        = "internal_markup"
	PhaseFinancialCommission   = "financial_commission"
	PhaseOverheads             = "overheads"
	PhaseCOGS                  = "cogs"
	PhaseMargin                = "margin"
	PhaseSalesPrice            = "sales_price"
	PhaseVAT                   = "vat"
	PhaseProfit                = "profit"
)

// Field identifiers written by the phases. Everything is in settlement
// currency unless the name says otherwise.
const (
	// currency_normalization
	FieldUnitPriceSettlement = "unit_price_settlement"
	FieldDiscountAmount      = "discount_amount"
	FieldUnitPriceDiscounted = "unit_price_discounted"

	// purchase_price
	FieldWeightSurcharge    = "weight_surcharge"
	FieldSmallLotSurcharge  = "small_lot_surcharge"
	FieldPurchasePriceUnit  = "purchase_price_unit"
	FieldPurchasePriceTotal = "purchase_price_total"

	// logistics
	FieldLogisticsSupplierHub    = "logistics_supplier_hub"
	FieldLogisticsHubDestination = "logistics_hub_destination"
	FieldLogisticsTotal          = "logistics_total"

	// customs_duty
	FieldDutyBase     = "duty_base"
	FieldCustomsDuty  = "customs_duty"
	FieldExciseAmount = "excise_amount"

	// packaging_handling
	FieldPackagingHandling = "packaging_handling"

	// internal_markup
	FieldInternalMarkup = "internal_markup"

	// financial_commission
	FieldFinancialCommission = "financial_commission"

	// overheads; individual overheads appear as overhead_<name>
	FieldOverheadsTotal = "overheads_total"

	// cogs
	FieldCOGSUnit  = "cogs_unit"
	FieldCOGSTotal = "cogs_total"

	// margin
	FieldMarginAmount       = "margin_amount"
	FieldDeclaredPriceTotal = "declared_price_total"
	FieldCommissionAmount   = "commission_amount"
	FieldSalePreVATRaw      = "sale_pre_vat_raw"

	// sales_price
	FieldSalePriceUnit         = "sale_price_unit"
	FieldSalePriceTotal        = "sale_price_total"
	FieldSalePriceDisplayUnit  = "sale_price_display_unit"
	FieldSalePriceDisplayTotal = "sale_price_display_total"

	// vat
	FieldVATRatePct        = "vat_rate_pct"
	FieldVATAmount         = "vat_amount"
	FieldPriceWithVATUnit  = "price_with_vat_unit"
	FieldPriceWithVATTotal = "price_with_vat_total"

	// profit
	FieldProfitUnit      = "profit_unit"
	FieldProfitTotal     = "profit_total"
	FieldProfitMarginPct = "profit_margin_pct"
)

// OverheadField returns the field identifier for a named overhead
func OverheadField(name string) string {
	return "overhead_" + name
}
