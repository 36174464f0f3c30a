package alert

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/wpo70/RateEdge/internal/adapters"
	"github.com/wpo70/RateEdge/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrNameRequired     = errors.New("alert name is required")
	ErrInvalidCondition = errors.New("condition must be one of above, below, change")
	ErrInvalidThreshold = errors.New("threshold must be a finite percent value")
)

type CurrencyValidator interface {
	ValidateCurrency(code string) error
	ValidateTenor(tenor string) error
}

type Service struct {
	repo      adapters.AlertRepository
	validator CurrencyValidator
}

func NewService(repo adapters.AlertRepository, validator CurrencyValidator) *Service {
	return &Service{repo: repo, validator: validator}
}

// NewAlertRequest carries the caller-supplied fields of an alert;
// identity and bookkeeping are assigned here.
type NewAlertRequest struct {
	Name      string
	Currency  string
	Tenor     string
	Condition domain.AlertCondition
	Threshold float64
	Enabled   bool
}

func (s *Service) Create(ctx context.Context, req NewAlertRequest) (domain.Alert, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Alert{}, ErrNameRequired
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if err := s.validator.ValidateCurrency(currency); err != nil {
		return domain.Alert{}, err
	}
	tenor := strings.ToUpper(strings.TrimSpace(req.Tenor))
	if err := s.validator.ValidateTenor(tenor); err != nil {
		return domain.Alert{}, err
	}
	if !domain.ValidCondition(req.Condition) {
		return domain.Alert{}, ErrInvalidCondition
	}
	if math.IsNaN(req.Threshold) || math.IsInf(req.Threshold, 0) {
		return domain.Alert{}, ErrInvalidThreshold
	}

	alert := domain.Alert{
		ID:        uuid.New(),
		Name:      name,
		Currency:  currency,
		Tenor:     tenor,
		Condition: req.Condition,
		Threshold: req.Threshold,
		Enabled:   req.Enabled,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, alert); err != nil {
		return domain.Alert{}, err
	}
	return alert, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Alert, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) RecentTriggers(ctx context.Context, limit int) ([]domain.TriggeredAlert, error) {
	return s.repo.RecentTriggers(ctx, limit)
}
