package postgres

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/wpo70/RateEdge/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultQueryLimit = 1000

type RateRepository struct {
	pool *pgxpool.Pool
}

func NewRateRepository(pool *pgxpool.Pool) *RateRepository {
	return &RateRepository{pool: pool}
}

func (r *RateRepository) Query(ctx context.Context, filter domain.RateFilter) ([]domain.SwapRate, error) {
	var (
		conds []string
		args  []any
	)
	addCond := func(expr string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if filter.Currency != "" {
		addCond("currency = $%d", filter.Currency)
	}
	if filter.Tenor != "" {
		addCond("tenor = $%d", filter.Tenor)
	}
	if filter.StartDate != nil {
		addCond("date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		addCond("date <= $%d", *filter.EndDate)
	}

	q := `select id, date, currency, tenor, floating_rate, rate, created_at, updated_at from swap_rates`
	if len(conds) > 0 {
		q += " where " + strings.Join(conds, " and ")
	}
	q += " order by date desc, currency, tenor"

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	q += " limit " + strconv.Itoa(limit)

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query swap rates: %w", err)
	}
	defer rows.Close()

	return scanRates(rows)
}

// Latest returns the rates observed on the most recent stored date,
// optionally narrowed to one currency, sorted by tenor length.
func (r *RateRepository) Latest(ctx context.Context, currency string) ([]domain.SwapRate, error) {
	q := `
        select id, date, currency, tenor, floating_rate, rate, created_at, updated_at
        from swap_rates
        where date = (select max(date) from swap_rates)
    `
	var args []any
	if currency != "" {
		q += " and currency = $1"
		args = append(args, currency)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest rates: %w", err)
	}
	defer rows.Close()

	rates, err := scanRates(rows)
	if err != nil {
		return nil, err
	}
	domain.SortByTenor(rates)
	return rates, nil
}

func (r *RateRepository) Statistics(ctx context.Context) (domain.StatisticsSummary, error) {
	var summary domain.StatisticsSummary

	const totalsQ = `select count(*), min(date), max(date) from swap_rates`
	if err := r.pool.QueryRow(ctx, totalsQ).Scan(
		&summary.TotalRecords,
		&summary.EarliestDate,
		&summary.LatestDate,
	); err != nil {
		return domain.StatisticsSummary{}, fmt.Errorf("failed to aggregate swap rates: %w", err)
	}

	const breakdownQ = `select currency, count(*) from swap_rates group by currency`
	rows, err := r.pool.Query(ctx, breakdownQ)
	if err != nil {
		return domain.StatisticsSummary{}, fmt.Errorf("failed to query currency breakdown: %w", err)
	}
	defer rows.Close()

	summary.CurrencyBreakdown = make(map[string]int64)
	for rows.Next() {
		var (
			code  string
			count int64
		)
		if err = rows.Scan(&code, &count); err != nil {
			return domain.StatisticsSummary{}, fmt.Errorf("failed to scan currency breakdown: %w", err)
		}
		summary.CurrencyBreakdown[code] = count
	}
	if err = rows.Err(); err != nil {
		return domain.StatisticsSummary{}, fmt.Errorf("error iterating currency breakdown: %w", err)
	}
	summary.Currencies = len(summary.CurrencyBreakdown)
	return summary, nil
}

func (r *RateRepository) Currencies(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `select distinct currency from swap_rates order by currency`)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	codes := make([]string, 0, 8)
	for rows.Next() {
		var c string
		if err = rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", err)
		}
		codes = append(codes, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currencies: %w", err)
	}
	return codes, nil
}

func (r *RateRepository) Tenors(ctx context.Context, currency string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `select distinct tenor from swap_rates where currency = $1`, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenors for %q: %w", currency, err)
	}
	defer rows.Close()

	tenors := make([]string, 0, 16)
	for rows.Next() {
		var t string
		if err = rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan tenor: %w", err)
		}
		tenors = append(tenors, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenors: %w", err)
	}

	slices.SortFunc(tenors, func(a, b string) int {
		return domain.TenorMonths(a) - domain.TenorMonths(b)
	})
	return tenors, nil
}

// Dates lists the distinct observation dates, most recent first,
// optionally narrowed to one currency.
func (r *RateRepository) Dates(ctx context.Context, currency string) ([]time.Time, error) {
	q := `select distinct date from swap_rates`
	var args []any
	if currency != "" {
		q += " where currency = $1"
		args = append(args, currency)
	}
	q += " order by date desc"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query observation dates: %w", err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0, 64)
	for rows.Next() {
		var d time.Time
		if err = rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan observation date: %w", err)
		}
		dates = append(dates, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating observation dates: %w", err)
	}
	return dates, nil
}

const upsertQ = `
    insert into swap_rates (date, currency, tenor, floating_rate, rate)
    values ($1, $2, $3, $4, $5)
    on conflict (date, currency, tenor, floating_rate)
    do update set rate = excluded.rate, updated_at = now()
`

func (r *RateRepository) Upsert(ctx context.Context, rate domain.SwapRate) error {
	_, err := r.pool.Exec(ctx, upsertQ, rate.Date, rate.Currency, rate.Tenor, rate.FloatingRate, rate.Rate)
	if err != nil {
		return fmt.Errorf("failed to upsert rate %s/%s@%s: %w",
			rate.Currency, rate.Tenor, rate.Date.Format("2006-01-02"), err)
	}
	return nil
}

func (r *RateRepository) UpsertBatch(ctx context.Context, rates []domain.SwapRate) (int, error) {
	if len(rates) == 0 {
		return 0, nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, rate := range rates {
		if _, err = tx.Exec(ctx, upsertQ, rate.Date, rate.Currency, rate.Tenor, rate.FloatingRate, rate.Rate); err != nil {
			return 0, fmt.Errorf("failed to upsert rate %s/%s@%s: %w",
				rate.Currency, rate.Tenor, rate.Date.Format("2006-01-02"), err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(rates), nil
}

func (r *RateRepository) Delete(ctx context.Context, currency string, start, end *time.Time) (int64, error) {
	var (
		conds []string
		args  []any
	)
	addCond := func(expr string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if currency != "" {
		addCond("currency = $%d", currency)
	}
	if start != nil {
		addCond("date >= $%d", *start)
	}
	if end != nil {
		addCond("date <= $%d", *end)
	}

	q := `delete from swap_rates`
	if len(conds) > 0 {
		q += " where " + strings.Join(conds, " and ")
	}

	tag, err := r.pool.Exec(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete rates: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanRates(rows pgx.Rows) ([]domain.SwapRate, error) {
	rates := make([]domain.SwapRate, 0, 64)
	for rows.Next() {
		var sr domain.SwapRate
		if err := rows.Scan(&sr.ID, &sr.Date, &sr.Currency, &sr.Tenor, &sr.FloatingRate, &sr.Rate, &sr.CreatedAt, &sr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan swap rate: %w", err)
		}
		rates = append(rates, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating swap rates: %w", err)
	}
	return rates, nil
}
