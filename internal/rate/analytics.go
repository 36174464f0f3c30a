package rate

import (
	"errors"
	"math"
	"slices"
	"time"

	"github.com/wpo70/RateEdge/internal/domain"
)

var (
	ErrNoObservations   = errors.New("no observations for currency and tenor")
	ErrInsufficientData = errors.New("not enough observations for the requested window")
)

const (
	defaultVolatilityWindow = 30
	defaultOutlierThreshold = 3.0
	tradingDaysPerYear      = 252
)

// PairStatistics summarises the observed history of one currency/tenor
// pair. All rate values are in percent terms; change fields cover the
// last 1, 5, 21 and 63 observations respectively.
type PairStatistics struct {
	Count        int
	Current      float64
	Mean         float64
	Median       float64
	StdDev       float64
	Min          float64
	Max          float64
	Range        float64
	Percentile25 float64
	Percentile75 float64
	FirstDate    time.Time
	LastDate     time.Time
	Change1D     float64
	Change1W     float64
	Change1M     float64
	Change3M     float64
}

// ComputePairStatistics expects the observations most-recent-first, the
// order the store returns them in.
func ComputePairStatistics(rates []domain.SwapRate) (PairStatistics, error) {
	if len(rates) == 0 {
		return PairStatistics{}, ErrNoObservations
	}

	values := make([]float64, len(rates))
	for i, r := range rates {
		values[i] = r.RatePercent()
	}

	minV, maxV := slices.Min(values), slices.Max(values)
	return PairStatistics{
		Count:        len(values),
		Current:      values[0],
		Mean:         mean(values),
		Median:       percentile(values, 50),
		StdDev:       stdDev(values),
		Min:          minV,
		Max:          maxV,
		Range:        maxV - minV,
		Percentile25: percentile(values, 25),
		Percentile75: percentile(values, 75),
		FirstDate:    rates[len(rates)-1].Date,
		LastDate:     rates[0].Date,
		Change1D:     changeOver(values, 1),
		Change1W:     changeOver(values, 5),
		Change1M:     changeOver(values, 21),
		Change3M:     changeOver(values, 63),
	}, nil
}

// SpreadPoint is one common observation date of a tenor pair, with the
// spread Rate2 - Rate1 in percent terms.
type SpreadPoint struct {
	Date   time.Time
	Rate1  float64
	Rate2  float64
	Spread float64
}

type SpreadStatistics struct {
	Count   int
	Current float64
	Mean    float64
	Median  float64
	StdDev  float64
	Min     float64
	Max     float64
}

// ComputeSpread joins the two observation series on date and reports
// the spread for every common date, most recent first. Both inputs are
// expected most-recent-first.
func ComputeSpread(rates1, rates2 []domain.SwapRate) ([]SpreadPoint, SpreadStatistics, error) {
	byDate := make(map[time.Time]float64, len(rates2))
	for _, r := range rates2 {
		byDate[dateOnly(r.Date)] = r.RatePercent()
	}

	points := make([]SpreadPoint, 0, len(rates1))
	for _, r := range rates1 {
		d := dateOnly(r.Date)
		r2, ok := byDate[d]
		if !ok {
			continue
		}
		r1 := r.RatePercent()
		points = append(points, SpreadPoint{Date: d, Rate1: r1, Rate2: r2, Spread: r2 - r1})
	}
	if len(points) == 0 {
		return nil, SpreadStatistics{}, ErrNoObservations
	}

	spreads := make([]float64, len(points))
	for i, p := range points {
		spreads[i] = p.Spread
	}
	stats := SpreadStatistics{
		Count:   len(spreads),
		Current: spreads[0],
		Mean:    mean(spreads),
		Median:  percentile(spreads, 50),
		StdDev:  sampleStdDev(spreads),
		Min:     slices.Min(spreads),
		Max:     slices.Max(spreads),
	}
	return points, stats, nil
}

// VolatilityPoint is the rolling standard deviation of day-over-day
// rate moves ending at Date, with its annualised equivalent.
type VolatilityPoint struct {
	Date       time.Time
	Volatility float64
	Annualized float64
}

// ComputeVolatility needs more observations than the window holds; the
// result is reported most recent first.
func ComputeVolatility(rates []domain.SwapRate, window int) ([]VolatilityPoint, error) {
	if window < 2 {
		window = defaultVolatilityWindow
	}
	if len(rates) <= window {
		return nil, ErrInsufficientData
	}

	ordered := slices.Clone(rates)
	slices.SortFunc(ordered, func(a, b domain.SwapRate) int {
		return a.Date.Compare(b.Date)
	})

	changes := make([]float64, 0, len(ordered)-1)
	for i := 1; i < len(ordered); i++ {
		changes = append(changes, ordered[i].RatePercent()-ordered[i-1].RatePercent())
	}

	points := make([]VolatilityPoint, 0, len(changes)-window+1)
	for i := window - 1; i < len(changes); i++ {
		vol := sampleStdDev(changes[i-window+1 : i+1])
		points = append(points, VolatilityPoint{
			Date:       ordered[i+1].Date,
			Volatility: vol,
			Annualized: vol * math.Sqrt(tradingDaysPerYear),
		})
	}
	slices.Reverse(points)
	return points, nil
}

// Outlier is an observation whose z-score against the series mean
// exceeds the detection threshold.
type Outlier struct {
	Date      time.Time
	Rate      float64
	ZScore    float64
	Deviation float64
}

type OutlierReport struct {
	Outliers  []Outlier
	Mean      float64
	StdDev    float64
	Threshold float64
}

func DetectOutliers(rates []domain.SwapRate, threshold float64) (OutlierReport, error) {
	if len(rates) == 0 {
		return OutlierReport{}, ErrNoObservations
	}
	if threshold <= 0 {
		threshold = defaultOutlierThreshold
	}

	values := make([]float64, len(rates))
	for i, r := range rates {
		values[i] = r.RatePercent()
	}
	m := mean(values)
	sd := stdDev(values)

	report := OutlierReport{Outliers: []Outlier{}, Mean: m, StdDev: sd, Threshold: threshold}
	if sd == 0 {
		return report, nil
	}
	for i, v := range values {
		z := math.Abs((v - m) / sd)
		if z > threshold {
			report.Outliers = append(report.Outliers, Outlier{
				Date:      rates[i].Date,
				Rate:      v,
				ZScore:    z,
				Deviation: v - m,
			})
		}
	}
	return report, nil
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the population standard deviation.
func stdDev(values []float64) float64 {
	m := mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)))
}

// sampleStdDev applies Bessel's correction; a single value has no
// dispersion to measure and yields 0.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}

// percentile interpolates linearly between the two nearest ranks of the
// sorted values.
func percentile(values []float64, p float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// changeOver is the move from the observation `period` steps back to
// the current one; series shorter than that report 0.
func changeOver(values []float64, period int) float64 {
	if len(values) <= period {
		return 0
	}
	return values[0] - values[period]
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
