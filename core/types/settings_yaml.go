// Package types - YAML codec for organization settings
//
// Decimal values travel as strings in YAML so that no binary floating
// point enters the pipeline through configuration.
package types

import (
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"quotecalc/internal/errors"
)

type routeRateYAML struct {
	SupplierToHubPerKg    string `yaml:"supplier_to_hub_per_kg"`
	HubToDestinationPerKg string `yaml:"hub_to_destination_per_kg"`
	MinCharge             string `yaml:"min_charge"`
}

type vatScheduleYAML struct {
	RatePct       string    `yaml:"rate_pct"`
	PriorRatePct  string    `yaml:"prior_rate_pct"`
	EffectiveFrom time.Time `yaml:"effective_from"`
}

type settingsYAML struct {
	FinancialCommissionPct    string                   `yaml:"financial_commission_pct"`
	PackagingPct              string                   `yaml:"packaging_pct"`
	HandlingPct               string                   `yaml:"handling_pct"`
	OverheadPcts              map[string]string        `yaml:"overhead_pcts"`
	MarkupByLane              map[string]string        `yaml:"markup_by_lane"`
	DefaultMarkupPct          string                   `yaml:"default_markup_pct"`
	RouteRates                map[string]routeRateYAML `yaml:"route_rates"`
	SaleMarkupPct             string                   `yaml:"sale_markup_pct"`
	CommissionPct             string                   `yaml:"commission_pct"`
	VAT                       vatScheduleYAML          `yaml:"vat"`
	HeavyWeightThresholdKg    string                   `yaml:"heavy_weight_threshold_kg"`
	HeavyWeightSurchargePerKg string                   `yaml:"heavy_weight_surcharge_per_kg"`
	SmallLotQty               int                      `yaml:"small_lot_qty"`
	SmallLotSurchargePct      string                   `yaml:"small_lot_surcharge_pct"`
}

func parseDec(name, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.Config("setting "+name+" is not a decimal value", err)
	}
	return d, nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (s *OrganizationSettings) UnmarshalYAML(value *yaml.Node) error {
	var raw settingsYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}

	var err error
	if s.FinancialCommissionPct, err = parseDec("financial_commission_pct", raw.FinancialCommissionPct); err != nil {
		return err
	}
	if s.PackagingPct, err = parseDec("packaging_pct", raw.PackagingPct); err != nil {
		return err
	}
	if s.HandlingPct, err = parseDec("handling_pct", raw.HandlingPct); err != nil {
		return err
	}
	if s.DefaultMarkupPct, err = parseDec("default_markup_pct", raw.DefaultMarkupPct); err != nil {
		return err
	}
	if s.SaleMarkupPct, err = parseDec("sale_markup_pct", raw.SaleMarkupPct); err != nil {
		return err
	}
	if s.CommissionPct, err = parseDec("commission_pct", raw.CommissionPct); err != nil {
		return err
	}
	if s.VAT.RatePct, err = parseDec("vat.rate_pct", raw.VAT.RatePct); err != nil {
		return err
	}
	if s.VAT.PriorRatePct, err = parseDec("vat.prior_rate_pct", raw.VAT.PriorRatePct); err != nil {
		return err
	}
	s.VAT.EffectiveFrom = raw.VAT.EffectiveFrom
	if s.HeavyWeightThresholdKg, err = parseDec("heavy_weight_threshold_kg", raw.HeavyWeightThresholdKg); err != nil {
		return err
	}
	if s.HeavyWeightSurchargePerKg, err = parseDec("heavy_weight_surcharge_per_kg", raw.HeavyWeightSurchargePerKg); err != nil {
		return err
	}
	s.SmallLotQty = raw.SmallLotQty
	if s.SmallLotSurchargePct, err = parseDec("small_lot_surcharge_pct", raw.SmallLotSurchargePct); err != nil {
		return err
	}

	s.OverheadPcts = make(map[string]decimal.Decimal, len(raw.OverheadPcts))
	for name, v := range raw.OverheadPcts {
		if s.OverheadPcts[name], err = parseDec("overhead_pcts."+name, v); err != nil {
			return err
		}
	}
	s.MarkupByLane = make(map[string]decimal.Decimal, len(raw.MarkupByLane))
	for lane, v := range raw.MarkupByLane {
		if s.MarkupByLane[lane], err = parseDec("markup_by_lane."+lane, v); err != nil {
			return err
		}
	}
	s.RouteRates = make(map[string]RouteRate, len(raw.RouteRates))
	for lane, rr := range raw.RouteRates {
		var r RouteRate
		if r.SupplierToHubPerKg, err = parseDec("route_rates."+lane+".supplier_to_hub_per_kg", rr.SupplierToHubPerKg); err != nil {
			return err
		}
		if r.HubToDestinationPerKg, err = parseDec("route_rates."+lane+".hub_to_destination_per_kg", rr.HubToDestinationPerKg); err != nil {
			return err
		}
		if r.MinCharge, err = parseDec("route_rates."+lane+".min_charge", rr.MinCharge); err != nil {
			return err
		}
		s.RouteRates[lane] = r
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (s OrganizationSettings) MarshalYAML() (interface{}, error) {
	raw := settingsYAML{
		FinancialCommissionPct: s.FinancialCommissionPct.String(),
		PackagingPct:           s.PackagingPct.String(),
		HandlingPct:            s.HandlingPct.String(),
		DefaultMarkupPct:       s.DefaultMarkupPct.String(),
		SaleMarkupPct:          s.SaleMarkupPct.String(),
		CommissionPct:          s.CommissionPct.String(),
		VAT: vatScheduleYAML{
			RatePct:       s.VAT.RatePct.String(),
			PriorRatePct:  s.VAT.PriorRatePct.String(),
			EffectiveFrom: s.VAT.EffectiveFrom,
		},
		HeavyWeightThresholdKg:    s.HeavyWeightThresholdKg.String(),
		HeavyWeightSurchargePerKg: s.HeavyWeightSurchargePerKg.String(),
		SmallLotQty:               s.SmallLotQty,
		SmallLotSurchargePct:      s.SmallLotSurchargePct.String(),
		OverheadPcts:              make(map[string]string, len(s.OverheadPcts)),
		MarkupByLane:              make(map[string]string, len(s.MarkupByLane)),
		RouteRates:                make(map[string]routeRateYAML, len(s.RouteRates)),
	}
	for name, v := range s.OverheadPcts {
		raw.OverheadPcts[name] = v.String()
	}
	for lane, v := range s.MarkupByLane {
		raw.MarkupByLane[lane] = v.String()
	}
	for lane, r := range s.RouteRates {
		raw.RouteRates[lane] = routeRateYAML{
			SupplierToHubPerKg:    r.SupplierToHubPerKg.String(),
			HubToDestinationPerKg: r.HubToDestinationPerKg.String(),
			MinCharge:             r.MinCharge.String(),
		}
	}
	return raw, nil
}
