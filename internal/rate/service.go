package rate

import (
	"context"
	"time"

	"github.com/wpo70/RateEdge/internal/adapters"
	"github.com/wpo70/RateEdge/internal/domain"
)

// Service fronts the rate store with a read-through cache. Any write
// path invalidates the cache wholesale; statistics and latest curves are
// cheap to rebuild.
type Service struct {
	repo  adapters.RateRepository
	cache adapters.MarketCache
}

func NewService(repo adapters.RateRepository, cache adapters.MarketCache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) Statistics(ctx context.Context) (domain.StatisticsSummary, error) {
	if summary, ok := s.cache.GetStatistics(); ok {
		return summary, nil
	}
	summary, err := s.repo.Statistics(ctx)
	if err != nil {
		return domain.StatisticsSummary{}, err
	}
	s.cache.SetStatistics(summary)
	return summary, nil
}

func (s *Service) Query(ctx context.Context, filter domain.RateFilter) ([]domain.SwapRate, error) {
	return s.repo.Query(ctx, filter)
}

func (s *Service) Latest(ctx context.Context, currency string) ([]domain.SwapRate, error) {
	if rates, ok := s.cache.GetLatest(currency); ok {
		return rates, nil
	}
	rates, err := s.repo.Latest(ctx, currency)
	if err != nil {
		return nil, err
	}
	s.cache.SetLatest(currency, rates)
	return rates, nil
}

func (s *Service) Currencies(ctx context.Context) ([]string, error) {
	return s.repo.Currencies(ctx)
}

func (s *Service) Tenors(ctx context.Context, currency string) ([]string, error) {
	return s.repo.Tenors(ctx, currency)
}

func (s *Service) Dates(ctx context.Context, currency string) ([]time.Time, error) {
	return s.repo.Dates(ctx, currency)
}

func (s *Service) Add(ctx context.Context, rate domain.SwapRate) error {
	if err := s.repo.Upsert(ctx, rate); err != nil {
		return err
	}
	s.cache.Invalidate()
	return nil
}

func (s *Service) AddBatch(ctx context.Context, rates []domain.SwapRate) (int, error) {
	count, err := s.repo.UpsertBatch(ctx, rates)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.cache.Invalidate()
	}
	return count, nil
}

func (s *Service) Delete(ctx context.Context, currency string, start, end *time.Time) (int64, error) {
	count, err := s.repo.Delete(ctx, currency, start, end)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.cache.Invalidate()
	}
	return count, nil
}
