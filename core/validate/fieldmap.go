// Package validate - engine/legacy field mapping table
package validate

import (
	"quotecalc/core/engine"
	"quotecalc/core/legacy"
)

// FieldMapping aligns one engine output field with its legacy-file
// counterpart. The table is declarative data: the spreadsheet layout is
// an external contract, so alignment changes happen here, never in the
// comparison code.
type FieldMapping struct {
	// EngineField is the engine's field identifier
	EngineField string

	// LegacyField is the parser's expected-output field identifier
	LegacyField string

	// Phase is the engine phase that owns the field, for diagnosis
	Phase string

	// Summary marks fields checked in SUMMARY mode
	Summary bool
}

// MappingTable returns the full field alignment, in phase order. SUMMARY
// checks the three terminal fields; DETAILED checks everything.
func MappingTable() []FieldMapping {
	return []FieldMapping{
		{engine.FieldPurchasePriceTotal, legacy.LegacyPurchaseTotal, engine.PhasePurchasePrice, false},
		{engine.FieldLogisticsTotal, legacy.LegacyLogistics, engine.PhaseLogistics, false},
		{engine.FieldCustomsDuty, legacy.LegacyDuty, engine.PhaseCustomsDuty, false},
		{engine.FieldExciseAmount, legacy.LegacyExcise, engine.PhaseCustomsDuty, false},
		{engine.FieldCOGSTotal, legacy.LegacyCostPrice, engine.PhaseCOGS, false},
		{engine.FieldSalePriceTotal, legacy.LegacyPriceNoVAT, engine.PhaseSalesPrice, true},
		{engine.FieldSalePriceUnit, legacy.LegacyPriceUnitNoVAT, engine.PhaseSalesPrice, false},
		{engine.FieldVATAmount, legacy.LegacyVAT, engine.PhaseVAT, false},
		{engine.FieldPriceWithVATUnit, legacy.LegacyPriceUnitWithVAT, engine.PhaseVAT, true},
		{engine.FieldProfitTotal, legacy.LegacyProfit, engine.PhaseProfit, true},
	}
}
