package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/wpo70/RateEdge/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AlertRepository struct {
	pool *pgxpool.Pool
}

func NewAlertRepository(pool *pgxpool.Pool) *AlertRepository {
	return &AlertRepository{pool: pool}
}

func (r *AlertRepository) Create(ctx context.Context, alert domain.Alert) error {
	const q = `
        insert into alerts (id, name, currency, tenor, condition, threshold, enabled, created_at)
        values ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err := r.pool.Exec(ctx, q,
		alert.ID, alert.Name, alert.Currency, alert.Tenor,
		string(alert.Condition), alert.Threshold, alert.Enabled, alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert alert %q: %w", alert.Name, err)
	}
	return nil
}

const alertColumns = `id, name, currency, tenor, condition, threshold, enabled,
    created_at, last_checked, last_triggered, trigger_count`

func (r *AlertRepository) List(ctx context.Context) ([]domain.Alert, error) {
	return r.list(ctx, `select `+alertColumns+` from alerts order by created_at`)
}

func (r *AlertRepository) ListEnabled(ctx context.Context) ([]domain.Alert, error) {
	return r.list(ctx, `select `+alertColumns+` from alerts where enabled order by created_at`)
}

func (r *AlertRepository) list(ctx context.Context, q string) ([]domain.Alert, error) {
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]domain.Alert, 0, 16)
	for rows.Next() {
		var (
			a    domain.Alert
			cond string
		)
		if err = rows.Scan(
			&a.ID, &a.Name, &a.Currency, &a.Tenor, &cond, &a.Threshold, &a.Enabled,
			&a.CreatedAt, &a.LastChecked, &a.LastTriggered, &a.TriggerCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		a.Condition = domain.AlertCondition(cond)
		alerts = append(alerts, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alerts: %w", err)
	}
	return alerts, nil
}

func (r *AlertRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `delete from alerts where id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete alert %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlertNotFound
	}
	return nil
}

func (r *AlertRepository) RecordCheck(ctx context.Context, id uuid.UUID, triggered bool, at time.Time) error {
	const q = `
        update alerts
        set last_checked = $2,
            last_triggered = case when $3 then $2 else last_triggered end,
            trigger_count = trigger_count + case when $3 then 1 else 0 end
        where id = $1
    `
	if _, err := r.pool.Exec(ctx, q, id, at, triggered); err != nil {
		return fmt.Errorf("failed to record check for alert %s: %w", id, err)
	}
	return nil
}

func (r *AlertRepository) InsertTrigger(ctx context.Context, trigger domain.TriggeredAlert) error {
	const q = `
        insert into alert_triggers (alert_id, name, currency, tenor, condition, threshold, rate_percent, message, triggered_at)
        values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	_, err := r.pool.Exec(ctx, q,
		trigger.AlertID, trigger.Name, trigger.Currency, trigger.Tenor,
		string(trigger.Condition), trigger.Threshold, trigger.RatePercent,
		trigger.Message, trigger.TriggeredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trigger for alert %s: %w", trigger.AlertID, err)
	}
	return nil
}

func (r *AlertRepository) RecentTriggers(ctx context.Context, limit int) ([]domain.TriggeredAlert, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
        select alert_id, name, currency, tenor, condition, threshold, rate_percent, message, triggered_at
        from alert_triggers
        order by triggered_at desc
        limit $1
    `
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent triggers: %w", err)
	}
	defer rows.Close()

	return scanTriggers(rows)
}

func scanTriggers(rows pgx.Rows) ([]domain.TriggeredAlert, error) {
	triggers := make([]domain.TriggeredAlert, 0, 16)
	for rows.Next() {
		var (
			tr   domain.TriggeredAlert
			cond string
		)
		if err := rows.Scan(
			&tr.AlertID, &tr.Name, &tr.Currency, &tr.Tenor, &cond,
			&tr.Threshold, &tr.RatePercent, &tr.Message, &tr.TriggeredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trigger: %w", err)
		}
		tr.Condition = domain.AlertCondition(cond)
		triggers = append(triggers, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating triggers: %w", err)
	}
	return triggers, nil
}
