// Package engine - the ordered calculation phases
//
// Each phase is a pure transform of the accumulated state: it may read any
// field written by an earlier phase and writes only fields it owns.
// Intermediate rounding happens only at currency-display boundaries
// (currency_normalization, sales_price, vat) to match the legacy
// spreadsheet's rounding behavior.
package engine

import (
	"github.com/shopspring/decimal"

	"quotecalc/core/currency"
	"quotecalc/core/types"
	"quotecalc/internal/errors"
)

// Phase is one ordered transformation step in the pipeline
type Phase interface {
	// Name returns the phase name used in field attribution
	Name() string

	// Apply advances the accumulated state
	Apply(s *State) error
}

// Pipeline returns the phases in required order
func Pipeline() []Phase {
	return []Phase{
		currencyNormalization{},
		purchasePrice{},
		logistics{},
		customsDuty{},
		packagingHandling{},
		internalMarkup{},
		financialCommission{},
		overheads{},
		cogs{},
		margin{},
		salesPrice{},
		vat{},
		profit{},
	}
}

// currencyNormalization converts the base price into settlement currency
// and applies the supplier discount multiplicatively.
type currencyNormalization struct{}

func (currencyNormalization) Name() string { return PhaseCurrencyNormalization }

func (p currencyNormalization) Apply(s *State) error {
	unitSettlement, err := currency.Convert(s.Product.BasePrice, s.Product.Currency, types.SettlementCurrency, s.Product.RateToSettlement)
	if err != nil {
		return err
	}

	discount := currency.RoundDisplay(unitSettlement.Mul(pct(s.Product.SupplierDiscountPct)))
	discounted := unitSettlement.Sub(discount)

	if err := s.Fields.Set(p.Name(), FieldUnitPriceSettlement, unitSettlement); err != nil {
		return err
	}
	if err := s.Fields.Set(p.Name(), FieldDiscountAmount, discount); err != nil {
		return err
	}
	return s.Fields.Set(p.Name(), FieldUnitPriceDiscounted, discounted)
}

// purchasePrice applies weight- and quantity-dependent adjustments to
// arrive at purchase cost per unit and in total.
type purchasePrice struct{}

func (purchasePrice) Name() string { return PhasePurchasePrice }

func (p purchasePrice) Apply(s *State) error {
	unit, err := s.Fields.MustGet(p.Name(), FieldUnitPriceDiscounted)
	if err != nil {
		return err
	}
	base := unit.Mul(s.Qty())

	weightSurcharge := decimal.Zero
	totalWeight := s.Product.TotalWeightKg()
	if s.Settings.HeavyWeightThresholdKg.Sign() > 0 && totalWeight.GreaterThan(s.Settings.HeavyWeightThresholdKg) {
		over := totalWeight.Sub(s.Settings.HeavyWeightThresholdKg)
		weightSurcharge = over.Mul(s.Settings.HeavyWeightSurchargePerKg)
	}

	smallLotSurcharge := decimal.Zero
	if s.Settings.SmallLotQty > 0 && s.Product.Quantity < s.Settings.SmallLotQty {
		smallLotSurcharge = base.Mul(pct(s.Settings.SmallLotSurchargePct))
	}

	total := base.Add(weightSurcharge).Add(smallLotSurcharge)

	if err := s.Fields.Set(p.Name(), FieldWeightSurcharge, weightSurcharge); err != nil {
		return err
	}
	if err := s.Fields.Set(p.Name(), FieldSmallLotSurcharge, smallLotSurcharge); err != nil {
		return err
	}
	if err := s.Fields.Set(p.Name(), FieldPurchasePriceUnit, total.Div(s.Qty())); err != nil {
		return err
	}
	return s.Fields.Set(p.Name(), FieldPurchasePriceTotal, total)
}

// logistics prices the supplier->hub and hub->destination legs from the
// per-lane rate table.
type logistics struct{}

func (logistics) Name() string { return PhaseLogistics }

func (p logistics) Apply(s *State) error {
	lane := s.Quote.Lane(s.Product)
	rate, ok := s.Settings.RouteRateForLane(lane)
	if !ok {
		return errors.MissingInput(p.Name(), "route_rates["+lane.String()+"]", "no route rate configured for lane")
	}

	weight := s.Product.TotalWeightKg()
	supplierHub := legCost(weight, rate.SupplierToHubPerKg, rate.MinCharge)
	hubDest := legCost(weight, rate.HubToDestinationPerKg, rate.MinCharge)

	if err := s.Fields.Set(p.Name(), FieldLogisticsSupplierHub, supplierHub); err != nil {
		return err
	}
	if err := s.Fields.Set(p.Name(), FieldLogisticsHubDestination, hubDest); err != nil {
		return err
	}
	return s.Fields.Set(p.Name(), FieldLogisticsTotal, supplierHub.Add(hubDest))
}

// legCost is weight * rate with a per-leg minimum charge
func legCost(weightKg, ratePerKg, minCharge decimal.Decimal) decimal.Decimal {
	cost := weightKg.Mul(ratePerKg)
	if cost.LessThan(minCharge) {
		return minCharge
	}
	return cost
}

// customsDuty applies the import tariff and excise percentages to the
// duty base. The base is purchase price plus the product's allocated
// logistics; logistics is computed per product from its own weight, so
// the allocation is weight-proportional by construction.
type customsDuty struct{}

func (customsDuty) Name() string { return PhaseCustomsDuty }

func (p customsDuty) Apply(s *State) error {
	purchase, err := s.Fields.MustGet(p.Name(), FieldPurchasePriceTotal)
	if err != nil {
		return err
	}
	logisticsTotal, err := s.Fields.MustGet(p.Name(), FieldLogisticsTotal)
	if err != nil {
		return err
	}

	base := purchase.Add(logisticsTotal)
	duty := base.Mul(pct(s.Product.ImportTariffPct))
	excise := base.Mul(pct(s.Product.ExciseTaxPct))

	if err := s.Fields.Set(p.Name(), FieldDutyBase, base); err != nil {
		return err
	}
	if err := s.Fields.Set(p.Name(), FieldCustomsDuty, duty); err != nil {
		return err
	}
	return s.Fields.Set(p.Name(), FieldExciseAmount, excise)
}

// packagingHandling adds the packaging and handling increments, both
// percentages of the purchase total.
type packagingHandling struct{}

func (packagingHandling) Name() string { return PhasePackagingHandling }

func (p packagingHandling) Apply(s *State) error {
	purchase, err := s.Fields.MustGet(p.Name(), FieldPurchasePriceTotal)
	if err != nil {
		return err
	}
	amount := purchase.Mul(pct(s.Settings.PackagingPct.Add(s.Settings.HandlingPct)))
	return s.Fields.Set(p.Name(), FieldPackagingHandling, amount)
}

// internalMarkup adds the trade-lane markup on the running cost total.
// Lane percentages come from the organization settings table; the table
// values are authoritative over anything a legacy file encodes.
type internalMarkup struct{}

func (internalMarkup) Name() string { return PhaseInternalMarkup }

func (p internalMarkup) Apply(s *State) error {
	markupPct := s.Settings.MarkupForLane(s.Quote.Lane(s.Product))
	amount := s.runningCost().Mul(pct(markupPct))
	return s.Fields.Set(p.Name(), FieldInternalMarkup, amount)
}

// financialCommission prices the financing of the non-advanced share of
// cost: monthly commission rate scaled by the advance due period.
type financialCommission struct{}

func (financialCommission) Name() string { return PhaseFinancialCommission }

func (p financialCommission) Apply(s *State) error {
	financed := s.runningCost().Mul(decimal.NewFromInt(1).Sub(pct(s.Quote.AdvancePct)))
	months := decimal.NewFromInt(int64(s.Quote.AdvanceDueDays)).Div(decimal.NewFromInt(30))
	amount := financed.Mul(pct(s.Settings.FinancialCommissionPct)).Mul(months)
	return s.Fields.Set(p.Name(), FieldFinancialCommission, amount)
}

// overheads adds each configured overhead as a named increment on the
// running cost total, in stable name order.
type overheads struct{}

func (overheads) Name() string { return PhaseOverheads }

func (p overheads) Apply(s *State) error {
	running := s.runningCost()
	total := decimal.Zero
	for _, name := range s.Settings.OverheadNames() {
		amount := running.Mul(pct(s.Settings.OverheadPcts[name]))
		if err := s.Fields.Set(p.Name(), OverheadField(name), amount); err != nil {
			return err
		}
		total = total.Add(amount)
	}
	return s.Fields.Set(p.Name(), FieldOverheadsTotal, total)
}

// cogs sums every cost increment into the terminal true-cost figure used
// as the profit baseline.
type cogs struct{}

func (cogs) Name() string { return PhaseCOGS }

func (p cogs) Apply(s *State) error {
	total := s.runningCost()
	if err := s.Fields.Set(p.Name(), FieldCOGSTotal, total); err != nil {
		return err
	}
	return s.Fields.Set(p.Name(), FieldCOGSUnit, total.Div(s.Qty()))
}

// margin applies the sale-type-dependent margin rule to produce the raw
// pre-VAT sale price.
type margin struct{}

func (margin) Name() string { return PhaseMargin }

func (p margin) Apply(s *State) error {
	cogsTotal, err := s.Fields.MustGet(p.Name(), FieldCOGSTotal)
	if err != nil {
		return err
	}

	switch s.Quote.SaleType {
	case types.SaleDirect:
		amount := cogsTotal.Mul(pct(s.Settings.SaleMarkupPct))
		if err := s.Fields.Set(p.Name(), FieldMarginAmount, amount); err != nil {
			return err
		}
		return s.Fields.Set(p.Name(), FieldSalePreVATRaw, cogsTotal.Add(amount))

	case types.SaleCommission:
		if s.Product.DeclaredPriceUnit.Sign() <= 0 {
			return errors.MissingInput(p.Name(), "declared_price_unit", "commission sales require a positive client-declared price")
		}
		declaredTotal := s.Product.DeclaredPriceUnit.Mul(s.Qty())
		commission := declaredTotal.Mul(pct(s.Settings.CommissionPct))
		if err := s.Fields.Set(p.Name(), FieldDeclaredPriceTotal, declaredTotal); err != nil {
			return err
		}
		if err := s.Fields.Set(p.Name(), FieldCommissionAmount, commission); err != nil {
			return err
		}
		if err := s.Fields.Set(p.Name(), FieldMarginAmount, commission); err != nil {
			return err
		}
		return s.Fields.Set(p.Name(), FieldSalePreVATRaw, declaredTotal.Add(commission))

	default:
		return errors.MissingInput(p.Name(), "sale_type", "unknown sale type "+string(s.Quote.SaleType))
	}
}

// salesPrice rounds the pre-VAT price to currency precision and derives
// the display-currency figures.
type salesPrice struct{}

func (salesPrice) Name() string { return PhaseSalesPrice }

func (p salesPrice) Apply(s *State) error {
	raw, err := s.Fields.MustGet(p.Name(), FieldSalePreVATRaw)
	if err != nil {
		return err
	}

	total := currency.RoundDisplay(raw)
	unit := currency.RoundDisplay(total.Div(s.Qty()))

	// settlement -> display rate derived from the two supplied rates
	displayRate := s.Product.RateToQuote.Div(s.Product.RateToSettlement)
	displayUnit, err := currency.Convert(unit, types.SettlementCurrency, s.Quote.DisplayCurrency, displayRate)
	if err != nil {
		return err
	}
	displayTotal, err := currency.Convert(total, types.SettlementCurrency, s.Quote.DisplayCurrency, displayRate)
	if err != nil {
		return err
	}

	if err := s.Fields.Set(p.Name(), FieldSalePriceTotal, total); err != nil {
		return err
	}
	if err := s.Fields.Set(p.Name(), FieldSalePriceUnit, unit); err != nil {
		return err
	}
	if err := s.Fields.Set(p.Name(), FieldSalePriceDisplayUnit, displayUnit); err != nil {
		return err
	}
	return s.Fields.Set(p.Name(), FieldSalePriceDisplayTotal, displayTotal)
}

// vat applies the VAT rate in force on the settlement date.
type vat struct{}

func (vat) Name() string { return PhaseVAT }

func (p vat) Apply(s *State) error {
	total, err := s.Fields.MustGet(p.Name(), FieldSalePriceTotal)
	if err != nil {
		return err
	}

	ratePct := s.Settings.VAT.RateAt(s.Quote.SettlementDate)
	vatAmount := currency.RoundDisplay(total.Mul(pct(ratePct)))
	withVAT := total.Add(vatAmount)
	withVATUnit := currency.RoundDisplay(withVAT.Div(s.Qty()))

	if err := s.Fields.Set(p.Name(), FieldVATRatePct, ratePct); err != nil {
		return err
	}
	if err := s.Fields.Set(p.Name(), FieldVATAmount, vatAmount); err != nil {
		return err
	}
	if err := s.Fields.Set(p.Name(), FieldPriceWithVATTotal, withVAT); err != nil {
		return err
	}
	return s.Fields.Set(p.Name(), FieldPriceWithVATUnit, withVATUnit)
}

// profit is pre-VAT sale price minus COGS, per unit and in total.
type profit struct{}

func (profit) Name() string { return PhaseProfit }

func (p profit) Apply(s *State) error {
	sale, err := s.Fields.MustGet(p.Name(), FieldSalePriceTotal)
	if err != nil {
		return err
	}
	cogsTotal, err := s.Fields.MustGet(p.Name(), FieldCOGSTotal)
	if err != nil {
		return err
	}

	profitTotal := sale.Sub(cogsTotal)
	marginPct := decimal.Zero
	if sale.Sign() != 0 {
		marginPct = profitTotal.Div(sale).Mul(decimal.NewFromInt(100))
	}

	if err := s.Fields.Set(p.Name(), FieldProfitTotal, profitTotal); err != nil {
		return err
	}
	if err := s.Fields.Set(p.Name(), FieldProfitUnit, profitTotal.Div(s.Qty())); err != nil {
		return err
	}
	return s.Fields.Set(p.Name(), FieldProfitMarginPct, marginPct)
}
