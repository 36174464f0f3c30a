package dashboard

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"
)

type statisticsFetcher interface {
	GetStatistics(ctx context.Context) (StatisticsData, error)
}

// StatisticsLoader fetches the aggregate dataset statistics once and
// writes them into the three statistics targets. Any failure is logged
// and the existing placeholder text stays up; there are no retries and
// no user-facing error.
type StatisticsLoader struct {
	api  statisticsFetcher
	page *Page
}

func NewStatisticsLoader(api statisticsFetcher, page *Page) *StatisticsLoader {
	return &StatisticsLoader{api: api, page: page}
}

func (l *StatisticsLoader) Load(ctx context.Context) {
	stats, err := l.api.GetStatistics(ctx)
	if err != nil {
		logrus.WithError(err).Warn("statistics refresh failed, keeping current display")
		return
	}

	total := int64(0)
	if stats.TotalRecords != nil {
		total = *stats.TotalRecords
	}
	l.page.SetText(ElemTotalRecords, formatCount(total))

	currencies := Placeholder
	if stats.Currencies != nil {
		currencies = strconv.FormatInt(*stats.Currencies, 10)
	}
	l.page.SetText(ElemCurrencies, currencies)

	latestDate := Placeholder
	if stats.LatestDate != nil {
		latestDate = *stats.LatestDate
	}
	l.page.SetText(ElemLatestDate, latestDate)
}
