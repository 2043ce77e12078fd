// Package currencypkg provides common currency related functionality for apps.
package currencypkg

// Constants for all supported currencies.
const (
	KRW = "KRW"
	USD = "USD"
)

// SupportedCurrencies holds all the supported currencies.
var SupportedCurrencies = []string{
	KRW,
	USD,
}

// IsSupportedCurrency returns true if the currency is supported.
func IsSupportedCurrency(currency string) bool {
	for _, c := range SupportedCurrencies {
		if c == currency {
			return true
		}
	}

	return false
}
