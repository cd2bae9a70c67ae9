package types

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"quotecalc/internal/errors"
)

func validProduct() ProductInput {
	return ProductInput{
		Name:             "bearing assembly",
		Quantity:         10,
		UnitWeightKg:     decimal.NewFromInt(1),
		BasePrice:        decimal.NewFromInt(100),
		Currency:         CurrencyUSD,
		SupplierCountry:  "CN",
		RateToSettlement: decimal.NewFromInt(90),
		RateToQuote:      decimal.NewFromInt(90),
		ImportTariffPct:  decimal.NewFromInt(5),
	}
}

func TestProductInputValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*ProductInput)
		wantType errors.Type
		field    string
	}{
		{
			name:     "zero quantity",
			mutate:   func(p *ProductInput) { p.Quantity = 0 },
			wantType: errors.TypeMissingOrInvalidInput,
			field:    "quantity",
		},
		{
			name:     "negative quantity",
			mutate:   func(p *ProductInput) { p.Quantity = -3 },
			wantType: errors.TypeMissingOrInvalidInput,
			field:    "quantity",
		},
		{
			name:     "unsupported currency",
			mutate:   func(p *ProductInput) { p.Currency = Currency("GBP") },
			wantType: errors.TypeUnsupportedCurrency,
		},
		{
			name:     "empty currency",
			mutate:   func(p *ProductInput) { p.Currency = "" },
			wantType: errors.TypeUnsupportedCurrency,
		},
		{
			name:     "negative base price",
			mutate:   func(p *ProductInput) { p.BasePrice = decimal.NewFromInt(-1) },
			wantType: errors.TypeMissingOrInvalidInput,
			field:    "base_price",
		},
		{
			name:     "zero settlement rate",
			mutate:   func(p *ProductInput) { p.RateToSettlement = decimal.Zero },
			wantType: errors.TypeMissingOrInvalidInput,
			field:    "rate_to_settlement",
		},
		{
			name:     "negative quote rate",
			mutate:   func(p *ProductInput) { p.RateToQuote = decimal.NewFromInt(-90) },
			wantType: errors.TypeMissingOrInvalidInput,
			field:    "rate_to_quote",
		},
		{
			name:     "negative tariff",
			mutate:   func(p *ProductInput) { p.ImportTariffPct = decimal.NewFromInt(-5) },
			wantType: errors.TypeMissingOrInvalidInput,
			field:    "import_tariff_pct",
		},
		{
			name:     "negative weight",
			mutate:   func(p *ProductInput) { p.UnitWeightKg = decimal.NewFromFloat(-0.5) },
			wantType: errors.TypeMissingOrInvalidInput,
			field:    "unit_weight_kg",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(&p)
			err := p.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.IsType(err, tt.wantType) {
				t.Errorf("error type = %v, want %s", err, tt.wantType)
			}
			if tt.field != "" {
				e := err.(*errors.Error)
				if e.Context["field"] != tt.field {
					t.Errorf("field context = %v, want %s", e.Context["field"], tt.field)
				}
			}
		})
	}

	p := validProduct()
	if err := p.Validate(); err != nil {
		t.Errorf("valid product should pass: %v", err)
	}
}

func TestProductTotalWeight(t *testing.T) {
	p := validProduct()
	p.Quantity = 40
	p.UnitWeightKg = decimal.NewFromFloat(2.5)
	if !p.TotalWeightKg().Equal(decimal.NewFromInt(100)) {
		t.Errorf("TotalWeightKg() = %s, want 100", p.TotalWeightKg())
	}
}

func TestQuoteInputValidate(t *testing.T) {
	valid := QuoteInput{
		SellerEntity:       "Acme Trade LLC",
		SaleType:           SaleDirect,
		Incoterm:           "DAP",
		DisplayCurrency:    CurrencyUSD,
		DestinationCountry: "RU",
		AdvancePct:         decimal.NewFromInt(50),
		AdvanceDueDays:     30,
		SettlementDate:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid quote should pass: %v", err)
	}

	tests := []struct {
		name     string
		mutate   func(*QuoteInput)
		wantType errors.Type
	}{
		{"unknown sale type", func(q *QuoteInput) { q.SaleType = "barter" }, errors.TypeMissingOrInvalidInput},
		{"empty sale type", func(q *QuoteInput) { q.SaleType = "" }, errors.TypeMissingOrInvalidInput},
		{"unsupported display currency", func(q *QuoteInput) { q.DisplayCurrency = "JPY" }, errors.TypeUnsupportedCurrency},
		{"missing destination", func(q *QuoteInput) { q.DestinationCountry = "" }, errors.TypeMissingOrInvalidInput},
		{"advance above 100", func(q *QuoteInput) { q.AdvancePct = decimal.NewFromInt(101) }, errors.TypeMissingOrInvalidInput},
		{"negative advance", func(q *QuoteInput) { q.AdvancePct = decimal.NewFromInt(-1) }, errors.TypeMissingOrInvalidInput},
		{"negative due days", func(q *QuoteInput) { q.AdvanceDueDays = -1 }, errors.TypeMissingOrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := valid
			tt.mutate(&q)
			err := q.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.IsType(err, tt.wantType) {
				t.Errorf("error type = %v, want %s", err, tt.wantType)
			}
		})
	}
}

func TestQuoteLane(t *testing.T) {
	q := QuoteInput{DestinationCountry: "RU"}
	p := validProduct()
	if got := q.Lane(&p).String(); got != "CN->RU" {
		t.Errorf("Lane = %q, want CN->RU", got)
	}
}
