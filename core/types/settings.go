// Package types - organization-level settings
package types

import (
	"os"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"quotecalc/internal/errors"
)

// Lane is an origin-country -> destination-country pairing used to key
// markup and route-rate tables.
type Lane struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// String returns the lane key in "XX->YY" form
func (l Lane) String() string {
	return l.Origin + "->" + l.Destination
}

// RouteRate holds per-kilogram transport rates for one trade lane, in
// settlement currency
type RouteRate struct {
	// SupplierToHubPerKg is the supplier -> consolidation hub rate
	SupplierToHubPerKg decimal.Decimal `json:"supplier_to_hub_per_kg"`

	// HubToDestinationPerKg is the hub -> destination rate
	HubToDestinationPerKg decimal.Decimal `json:"hub_to_destination_per_kg"`

	// MinCharge is the per-leg minimum charge
	MinCharge decimal.Decimal `json:"min_charge"`
}

// VATSchedule selects a VAT rate by settlement date. Covers scheduled
// statutory rate changes (18% -> 20% on 2019-01-01).
type VATSchedule struct {
	// RatePct applies on or after EffectiveFrom
	RatePct decimal.Decimal `json:"rate_pct"`

	// PriorRatePct applies before EffectiveFrom
	PriorRatePct decimal.Decimal `json:"prior_rate_pct"`

	// EffectiveFrom is the date the current rate took effect
	EffectiveFrom time.Time `json:"effective_from"`
}

// RateAt returns the VAT percentage applicable on the given date
func (v VATSchedule) RateAt(date time.Time) decimal.Decimal {
	if !v.EffectiveFrom.IsZero() && date.Before(v.EffectiveFrom) {
		return v.PriorRatePct
	}
	return v.RatePct
}

// OrganizationSettings holds tenant-level defaults that feed the pipeline.
// Read-only input to the engine; safe for concurrent reads. Mutated only
// through administrative configuration, never by the engine.
type OrganizationSettings struct {
	// FinancialCommissionPct is the monthly financing commission applied
	// to the non-advanced share of cost
	FinancialCommissionPct decimal.Decimal `json:"financial_commission_pct"`

	// PackagingPct is applied to the purchase total
	PackagingPct decimal.Decimal `json:"packaging_pct"`

	// HandlingPct is applied to the purchase total
	HandlingPct decimal.Decimal `json:"handling_pct"`

	// OverheadPcts are named overhead percentages applied to running cost
	OverheadPcts map[string]decimal.Decimal `json:"overhead_pcts"`

	// MarkupByLane is the internal markup percentage keyed by trade lane
	MarkupByLane map[string]decimal.Decimal `json:"markup_by_lane"`

	// DefaultMarkupPct applies when a lane has no MarkupByLane entry
	DefaultMarkupPct decimal.Decimal `json:"default_markup_pct"`

	// RouteRates holds transport rates keyed by trade lane
	RouteRates map[string]RouteRate `json:"route_rates"`

	// SaleMarkupPct is the cost-plus margin for direct sales
	SaleMarkupPct decimal.Decimal `json:"sale_markup_pct"`

	// CommissionPct is the commission on the declared price for
	// commission/agency sales
	CommissionPct decimal.Decimal `json:"commission_pct"`

	// VAT is the VAT rate schedule
	VAT VATSchedule `json:"vat"`

	// HeavyWeightThresholdKg triggers the per-kg purchase surcharge
	HeavyWeightThresholdKg decimal.Decimal `json:"heavy_weight_threshold_kg"`

	// HeavyWeightSurchargePerKg is charged per kg above the threshold
	HeavyWeightSurchargePerKg decimal.Decimal `json:"heavy_weight_surcharge_per_kg"`

	// SmallLotQty triggers the small-lot purchase surcharge
	SmallLotQty int `json:"small_lot_qty"`

	// SmallLotSurchargePct is applied to the purchase total below SmallLotQty
	SmallLotSurchargePct decimal.Decimal `json:"small_lot_surcharge_pct"`
}

// DefaultOrganizationSettings returns a settings baseline usable for tests
// and for bootstrapping a new tenant configuration file.
func DefaultOrganizationSettings() *OrganizationSettings {
	return &OrganizationSettings{
		FinancialCommissionPct: decimal.NewFromFloat(1.5),
		PackagingPct:           decimal.NewFromFloat(0.8),
		HandlingPct:            decimal.NewFromFloat(0.7),
		OverheadPcts: map[string]decimal.Decimal{
			"insurance":     decimal.NewFromFloat(0.5),
			"certification": decimal.NewFromFloat(0.3),
		},
		MarkupByLane: map[string]decimal.Decimal{
			"CN->RU": decimal.NewFromInt(2),
			"TR->RU": decimal.NewFromInt(2),
			"EU->RU": decimal.NewFromInt(3),
		},
		DefaultMarkupPct: decimal.NewFromInt(2),
		RouteRates: map[string]RouteRate{
			"CN->RU": {
				SupplierToHubPerKg:    decimal.NewFromFloat(1.20),
				HubToDestinationPerKg: decimal.NewFromFloat(2.40),
				MinCharge:             decimal.NewFromInt(50),
			},
			"TR->RU": {
				SupplierToHubPerKg:    decimal.NewFromFloat(0.90),
				HubToDestinationPerKg: decimal.NewFromFloat(1.80),
				MinCharge:             decimal.NewFromInt(40),
			},
		},
		SaleMarkupPct: decimal.NewFromInt(15),
		CommissionPct: decimal.NewFromInt(10),
		VAT: VATSchedule{
			RatePct:       decimal.NewFromInt(20),
			PriorRatePct:  decimal.NewFromInt(18),
			EffectiveFrom: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		HeavyWeightThresholdKg:    decimal.NewFromInt(1000),
		HeavyWeightSurchargePerKg: decimal.NewFromFloat(0.50),
		SmallLotQty:               5,
		SmallLotSurchargePct:      decimal.NewFromInt(3),
	}
}

// Validate enforces the settings invariants
func (s *OrganizationSettings) Validate() error {
	for name, pct := range map[string]decimal.Decimal{
		"financial_commission_pct": s.FinancialCommissionPct,
		"packaging_pct":            s.PackagingPct,
		"handling_pct":             s.HandlingPct,
		"default_markup_pct":       s.DefaultMarkupPct,
		"sale_markup_pct":          s.SaleMarkupPct,
		"commission_pct":           s.CommissionPct,
		"vat.rate_pct":             s.VAT.RatePct,
		"vat.prior_rate_pct":       s.VAT.PriorRatePct,
	} {
		if pct.IsNegative() {
			return errors.Newf(errors.TypeConfig, "setting %s must be non-negative, got %s", name, pct)
		}
	}
	for lane, pct := range s.MarkupByLane {
		if pct.IsNegative() {
			return errors.Newf(errors.TypeConfig, "markup_by_lane[%s] must be non-negative, got %s", lane, pct)
		}
	}
	for name, pct := range s.OverheadPcts {
		if pct.IsNegative() {
			return errors.Newf(errors.TypeConfig, "overhead_pcts[%s] must be non-negative, got %s", name, pct)
		}
	}
	return nil
}

// MarkupForLane returns the internal markup percentage for a lane,
// falling back to the default
func (s *OrganizationSettings) MarkupForLane(lane Lane) decimal.Decimal {
	if pct, ok := s.MarkupByLane[lane.String()]; ok {
		return pct
	}
	return s.DefaultMarkupPct
}

// RouteRateForLane returns the transport rates for a lane
func (s *OrganizationSettings) RouteRateForLane(lane Lane) (RouteRate, bool) {
	r, ok := s.RouteRates[lane.String()]
	return r, ok
}

// OverheadNames returns the overhead names in stable sorted order
func (s *OrganizationSettings) OverheadNames() []string {
	names := make([]string, 0, len(s.OverheadPcts))
	for name := range s.OverheadPcts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadOrganizationSettings reads settings from a YAML file
func LoadOrganizationSettings(path string) (*OrganizationSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config("reading organization settings", err)
	}
	s := &OrganizationSettings{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Config("parsing organization settings", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// SaveOrganizationSettings writes settings to a YAML file
func SaveOrganizationSettings(s *OrganizationSettings, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Config("encoding organization settings", err)
	}
	return os.WriteFile(path, data, 0644)
}
