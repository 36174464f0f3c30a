package alert

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/wpo70/RateEdge/internal/adapters"
	"github.com/wpo70/RateEdge/internal/domain"

	"github.com/sirupsen/logrus"
)

// CheckAlerts evaluates every enabled alert against the stored rates.
// A failure for one alert is logged and does not stop the rest.
func CheckAlerts(ctx context.Context, execID string, alertRepo adapters.AlertRepository, rateRepo adapters.RateRepository) error {
	enabled, err := alertRepo.ListEnabled(ctx)
	if err != nil {
		return fmt.Errorf("failed to list enabled alerts: %w", err)
	}

	if len(enabled) == 0 {
		logrus.Infof("No enabled alerts to check; execID: %s", execID)
		return nil
	}

	now := time.Now().UTC()
	triggeredCount := 0

	for _, a := range enabled {
		triggered, trigger, evalErr := evaluate(ctx, a, rateRepo, now)
		if evalErr != nil {
			logrus.WithError(evalErr).Warnf("Alert %q wasn't evaluated this time; execID: %s", a.Name, execID)
			continue
		}

		if triggered {
			if insertErr := alertRepo.InsertTrigger(ctx, trigger); insertErr != nil {
				logrus.WithError(insertErr).Errorf("Failed to record trigger for alert %q; execID: %s", a.Name, execID)
				continue
			}
			triggeredCount++
		}
		if recordErr := alertRepo.RecordCheck(ctx, a.ID, triggered, now); recordErr != nil {
			logrus.WithError(recordErr).Errorf("Failed to record check for alert %q; execID: %s", a.Name, execID)
		}
	}

	logrus.Infof("%d of %d alerts triggered; execID: %s", triggeredCount, len(enabled), execID)
	return nil
}

// evaluate pulls the most recent observation(s) for the alert's pair and
// applies the condition in percent terms.
func evaluate(ctx context.Context, a domain.Alert, rateRepo adapters.RateRepository, now time.Time) (bool, domain.TriggeredAlert, error) {
	// "change" compares the two most recent observations, the static
	// conditions only need the latest one.
	limit := 1
	if a.Condition == domain.ConditionChange {
		limit = 2
	}

	observations, err := rateRepo.Query(ctx, domain.RateFilter{
		Currency: a.Currency,
		Tenor:    a.Tenor,
		Limit:    limit,
	})
	if err != nil {
		return false, domain.TriggeredAlert{}, err
	}
	if len(observations) == 0 {
		return false, domain.TriggeredAlert{}, fmt.Errorf("no observations for %s/%s", a.Currency, a.Tenor)
	}

	current := observations[0].RatePercent()
	var (
		triggered bool
		message   string
	)

	switch a.Condition {
	case domain.ConditionAbove:
		triggered = current > a.Threshold
		message = fmt.Sprintf("%s %s rate %.2f%% is above %.2f%%", a.Currency, a.Tenor, current, a.Threshold)
	case domain.ConditionBelow:
		triggered = current < a.Threshold
		message = fmt.Sprintf("%s %s rate %.2f%% is below %.2f%%", a.Currency, a.Tenor, current, a.Threshold)
	case domain.ConditionChange:
		if len(observations) < 2 {
			return false, domain.TriggeredAlert{}, fmt.Errorf("not enough history for %s/%s", a.Currency, a.Tenor)
		}
		previous := observations[1].RatePercent()
		move := math.Abs(current - previous)
		triggered = move > a.Threshold
		message = fmt.Sprintf("%s %s rate moved %.2f points (%.2f%% -> %.2f%%), threshold %.2f", a.Currency, a.Tenor, move, previous, current, a.Threshold)
	default:
		return false, domain.TriggeredAlert{}, fmt.Errorf("unknown condition %q", a.Condition)
	}

	if !triggered {
		return false, domain.TriggeredAlert{}, nil
	}

	return true, domain.TriggeredAlert{
		AlertID:     a.ID,
		Name:        a.Name,
		Currency:    a.Currency,
		Tenor:       a.Tenor,
		Condition:   a.Condition,
		Threshold:   a.Threshold,
		RatePercent: current,
		Message:     message,
		TriggeredAt: now,
	}, nil
}
