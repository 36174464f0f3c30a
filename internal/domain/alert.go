package domain

import (
	"time"

	"github.com/google/uuid"
)

type AlertCondition string

const (
	ConditionAbove  AlertCondition = "above"
	ConditionBelow  AlertCondition = "below"
	ConditionChange AlertCondition = "change"
)

// ValidCondition reports whether c is one of the supported conditions.
func ValidCondition(c AlertCondition) bool {
	switch c {
	case ConditionAbove, ConditionBelow, ConditionChange:
		return true
	}
	return false
}

// Alert is a persisted rate watch. Threshold is expressed in percent
// terms (4.25 means 4.25%), matching how rates are displayed.
type Alert struct {
	ID            uuid.UUID
	Name          string
	Currency      string
	Tenor         string
	Condition     AlertCondition
	Threshold     float64
	Enabled       bool
	CreatedAt     time.Time
	LastChecked   *time.Time
	LastTriggered *time.Time
	TriggerCount  int
}

// TriggeredAlert records one firing of an alert.
type TriggeredAlert struct {
	AlertID     uuid.UUID
	Name        string
	Currency    string
	Tenor       string
	Condition   AlertCondition
	Threshold   float64
	RatePercent float64
	Message     string
	TriggeredAt time.Time
}
