package rate

import (
	"fmt"
	"math"
	"slices"

	"github.com/wpo70/RateEdge/internal/domain"
)

// ForwardResult is the implied forward rate between two points on a
// zero curve. Rates are fractions of 1, Percent fields are *100.
type ForwardResult struct {
	Currency       string
	StartTenor     string
	EndTenor       string
	StartZero      float64
	EndZero        float64
	Forward        float64
	ForwardPercent float64
}

type curvePoint struct {
	months int
	rate   float64
}

// ForwardRate derives the implied forward between startTenor and
// endTenor from the supplied curve observations. Zero rates are linearly
// interpolated by tenor months; discounting is continuous, so the
// forward over (t1, t2) is (r2*t2 - r1*t1) / (t2 - t1).
func ForwardRate(curve []domain.SwapRate, currency, startTenor, endTenor string) (ForwardResult, error) {
	points := buildCurve(curve)
	if len(points) == 0 {
		return ForwardResult{}, domain.ErrEmptyCurve
	}

	startMonths := domain.TenorMonths(startTenor)
	endMonths := domain.TenorMonths(endTenor)
	if startMonths <= 0 {
		return ForwardResult{}, fmt.Errorf("start tenor %q: %w", startTenor, ErrTenorInvalid)
	}
	if endMonths <= 0 {
		return ForwardResult{}, fmt.Errorf("end tenor %q: %w", endTenor, ErrTenorInvalid)
	}
	if endMonths <= startMonths {
		return ForwardResult{}, fmt.Errorf("end tenor %q must be longer than start tenor %q", endTenor, startTenor)
	}

	startZero := interpolateZero(points, startMonths)
	endZero := interpolateZero(points, endMonths)

	t1 := float64(startMonths) / 12
	t2 := float64(endMonths) / 12
	forward := (endZero*t2 - startZero*t1) / (t2 - t1)

	return ForwardResult{
		Currency:       currency,
		StartTenor:     startTenor,
		EndTenor:       endTenor,
		StartZero:      startZero,
		EndZero:        endZero,
		Forward:        forward,
		ForwardPercent: forward * 100,
	}, nil
}

// DiscountFactor under continuous compounding for a zero rate and a
// time in years.
func DiscountFactor(zeroRate, years float64) float64 {
	return math.Exp(-zeroRate * years)
}

func buildCurve(rates []domain.SwapRate) []curvePoint {
	points := make([]curvePoint, 0, len(rates))
	for _, r := range rates {
		if m := domain.TenorMonths(r.Tenor); m > 0 {
			points = append(points, curvePoint{months: m, rate: r.Rate})
		}
	}
	slices.SortFunc(points, func(a, b curvePoint) int { return a.months - b.months })
	return points
}

// interpolateZero returns the linearly interpolated zero rate at the
// given tenor. Outside the quoted range the nearest point is used flat.
func interpolateZero(points []curvePoint, months int) float64 {
	if months <= points[0].months {
		return points[0].rate
	}
	last := points[len(points)-1]
	if months >= last.months {
		return last.rate
	}

	for i := 1; i < len(points); i++ {
		if months <= points[i].months {
			lower, upper := points[i-1], points[i]
			if lower.months == upper.months {
				return lower.rate
			}
			weight := float64(months-lower.months) / float64(upper.months-lower.months)
			return lower.rate + weight*(upper.rate-lower.rate)
		}
	}
	return last.rate
}
