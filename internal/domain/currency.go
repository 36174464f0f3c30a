package domain

import (
	"slices"
	"strings"
)

// CurrencyInfo describes the fixing conventions of a supported currency.
type CurrencyInfo struct {
	Code            string
	Name            string
	FixingReference string
	Administrator   string
	CommonTenors    []string
}

var currencyConfig = map[string]CurrencyInfo{
	"AUD": {
		Code:            "AUD",
		Name:            "Australian Dollar",
		FixingReference: "BBSW",
		Administrator:   "ASX",
		CommonTenors:    []string{"1M", "2M", "3M", "4M", "5M", "6M"},
	},
	"NZD": {
		Code:            "NZD",
		Name:            "New Zealand Dollar",
		FixingReference: "BKBM",
		Administrator:   "NZFMA",
		CommonTenors:    []string{"1M", "2M", "3M", "4M", "5M", "6M"},
	},
	"USD": {
		Code:            "USD",
		Name:            "US Dollar",
		FixingReference: "SOFR",
		Administrator:   "Federal Reserve Bank of NY",
		CommonTenors:    []string{"1M", "3M", "6M", "12M"},
	},
	"EUR": {
		Code:            "EUR",
		Name:            "Euro",
		FixingReference: "EURIBOR",
		Administrator:   "EMMI",
		CommonTenors:    []string{"1W", "1M", "3M", "6M", "12M"},
	},
	"GBP": {
		Code:            "GBP",
		Name:            "British Pound",
		FixingReference: "SONIA",
		Administrator:   "Bank of England",
		CommonTenors:    []string{"1M", "3M", "6M", "12M"},
	},
	"JPY": {
		Code:            "JPY",
		Name:            "Japanese Yen",
		FixingReference: "TONA",
		Administrator:   "Bank of Japan",
		CommonTenors:    []string{"1M", "3M", "6M", "12M"},
	},
	"CAD": {
		Code:            "CAD",
		Name:            "Canadian Dollar",
		FixingReference: "CORRA",
		Administrator:   "Bank of Canada",
		CommonTenors:    []string{"1M", "3M", "6M", "12M"},
	},
}

// SupportedCurrencies returns the configured currency codes, sorted.
func SupportedCurrencies() []string {
	codes := make([]string, 0, len(currencyConfig))
	for code := range currencyConfig {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// CurrencyByCode looks up the configuration for a currency code.
func CurrencyByCode(code string) (CurrencyInfo, bool) {
	info, ok := currencyConfig[strings.ToUpper(strings.TrimSpace(code))]
	return info, ok
}

// FixingReference expands a bare floating rate period to its full fixing
// label for the currency: ("AUD", "3M") -> "3M BBSW". Labels that already
// carry a reference are returned unchanged.
func FixingReference(currency, floatingRate string) string {
	info, ok := currencyConfig[strings.ToUpper(strings.TrimSpace(currency))]
	if !ok {
		return floatingRate
	}
	if strings.Contains(floatingRate, " ") {
		return floatingRate
	}
	return floatingRate + " " + info.FixingReference
}
