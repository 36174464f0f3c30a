package adapters

import (
	"context"
	"time"

	"github.com/wpo70/RateEdge/internal/domain"

	"github.com/google/uuid"
)

type RateRepository interface {
	Query(ctx context.Context, filter domain.RateFilter) ([]domain.SwapRate, error)
	Latest(ctx context.Context, currency string) ([]domain.SwapRate, error)
	Statistics(ctx context.Context) (domain.StatisticsSummary, error)
	Currencies(ctx context.Context) ([]string, error)
	Tenors(ctx context.Context, currency string) ([]string, error)
	Dates(ctx context.Context, currency string) ([]time.Time, error)
	Upsert(ctx context.Context, rate domain.SwapRate) error
	UpsertBatch(ctx context.Context, rates []domain.SwapRate) (int, error)
	Delete(ctx context.Context, currency string, start, end *time.Time) (int64, error)
}

type AlertRepository interface {
	Create(ctx context.Context, alert domain.Alert) error
	List(ctx context.Context) ([]domain.Alert, error)
	ListEnabled(ctx context.Context) ([]domain.Alert, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RecordCheck(ctx context.Context, id uuid.UUID, triggered bool, at time.Time) error
	InsertTrigger(ctx context.Context, trigger domain.TriggeredAlert) error
	RecentTriggers(ctx context.Context, limit int) ([]domain.TriggeredAlert, error)
}

// MarketCache keeps hot read paths (statistics, latest curves) away from
// the database between writes.
type MarketCache interface {
	GetStatistics() (domain.StatisticsSummary, bool)
	SetStatistics(summary domain.StatisticsSummary)
	GetLatest(currency string) ([]domain.SwapRate, bool)
	SetLatest(currency string, rates []domain.SwapRate)
	Invalidate()
}
