package domain

import "time"

// StatisticsSummary aggregates the whole rate dataset. Built fresh from
// the repository (or served from cache); never mutated after receipt.
type StatisticsSummary struct {
	TotalRecords      int64
	Currencies        int
	CurrencyBreakdown map[string]int64
	EarliestDate      *time.Time
	LatestDate        *time.Time
}
