// Package types - currency types
package types

// Currency represents a currency code
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyRUB Currency = "RUB"
	CurrencyTRY Currency = "TRY"
	CurrencyCNY Currency = "CNY"
)

// SettlementCurrency is the fixed internal currency used for cross-product
// aggregation before display conversion.
const SettlementCurrency = CurrencyRUB

// DisplayPrecision is the number of decimal places at currency-display
// boundaries. All supported currencies use two.
const DisplayPrecision = 2

// supported is the closed set of currency codes. Unknown codes are
// rejected, never silently accepted.
var supported = map[Currency]bool{
	CurrencyUSD: true,
	CurrencyEUR: true,
	CurrencyRUB: true,
	CurrencyTRY: true,
	CurrencyCNY: true,
}

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Supported reports whether the code is in the supported set
func (c Currency) Supported() bool {
	return supported[c]
}

// SupportedCurrencies returns the supported set in stable order
func SupportedCurrencies() []Currency {
	return []Currency{CurrencyUSD, CurrencyEUR, CurrencyRUB, CurrencyTRY, CurrencyCNY}
}
