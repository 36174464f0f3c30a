package domain

import (
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// SwapRate is a single recorded observation for a currency/tenor pair.
// Rate is stored as a fraction of 1 (0.0423 means 4.23%).
type SwapRate struct {
	ID           int64
	Date         time.Time
	Currency     string
	Tenor        string
	FloatingRate string
	Rate         float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RatePercent returns the observation value in percent terms.
func (r SwapRate) RatePercent() float64 {
	return r.Rate * 100
}

// RateFilter narrows swap rate queries. Zero values mean "no filter".
type RateFilter struct {
	Currency  string
	Tenor     string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

// TenorMonths converts a tenor label to months for numerical sorting:
// "6M" -> 6, "1Y" -> 12, "10Y" -> 120. Unknown labels map to 0.
func TenorMonths(tenor string) int {
	t := strings.ToUpper(strings.TrimSpace(tenor))
	if t == "" {
		return 0
	}

	switch {
	case strings.HasSuffix(t, "M"):
		if n, err := strconv.Atoi(strings.TrimSuffix(t, "M")); err == nil {
			return n
		}
	case strings.HasSuffix(t, "Y"):
		if n, err := strconv.Atoi(strings.TrimSuffix(t, "Y")); err == nil {
			return n * 12
		}
	}

	// Fallback: a bare number is treated as years. Labels with an
	// unknown suffix ("1W", "ON") map to 0, not a guessed duration.
	for _, r := range t {
		if !unicode.IsDigit(r) {
			return 0
		}
	}
	if n, err := strconv.Atoi(t); err == nil {
		return n * 12
	}
	return 0
}

// SortByTenor orders rates by tenor length, shortest first.
func SortByTenor(rates []SwapRate) {
	slices.SortStableFunc(rates, func(a, b SwapRate) int {
		return TenorMonths(a.Tenor) - TenorMonths(b.Tenor)
	})
}
