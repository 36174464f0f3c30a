package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/wpo70/RateEdge/internal/alert"
	"github.com/wpo70/RateEdge/internal/domain"
	"github.com/wpo70/RateEdge/internal/rate"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AlertService interface {
	Create(ctx context.Context, req alert.NewAlertRequest) (domain.Alert, error)
	List(ctx context.Context) ([]domain.Alert, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RecentTriggers(ctx context.Context, limit int) ([]domain.TriggeredAlert, error)
}

type Handler struct {
	service AlertService
}

func NewAlertHandler(service AlertService) *Handler {
	return &Handler{service: service}
}

type dataEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Count   *int `json:"count,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeData(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(dataEnvelope{Success: true, Data: data})
}

func writeDataCount(w http.ResponseWriter, statusCode int, data any, count int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(dataEnvelope{Success: true, Data: data, Count: &count})
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: errorMsg})
}

type AlertItem struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Currency      string   `json:"currency"`
	Tenor         string   `json:"tenor"`
	Condition     string   `json:"condition"`
	Threshold     float64  `json:"threshold"`
	Enabled       bool     `json:"enabled"`
	CreatedAt     string   `json:"created"`
	LastChecked   *string  `json:"last_checked"`
	LastTriggered *string  `json:"last_triggered"`
	TriggerCount  int      `json:"trigger_count"`
}

func toAlertItem(a domain.Alert) AlertItem {
	item := AlertItem{
		ID:           a.ID.String(),
		Name:         a.Name,
		Currency:     a.Currency,
		Tenor:        a.Tenor,
		Condition:    string(a.Condition),
		Threshold:    a.Threshold,
		Enabled:      a.Enabled,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		TriggerCount: a.TriggerCount,
	}
	if a.LastChecked != nil {
		s := a.LastChecked.Format(time.RFC3339)
		item.LastChecked = &s
	}
	if a.LastTriggered != nil {
		s := a.LastTriggered.Format(time.RFC3339)
		item.LastTriggered = &s
	}
	return item
}

type CreateAlertRequest struct {
	Name      string  `json:"name"`
	Currency  string  `json:"currency"`
	Tenor     string  `json:"tenor"`
	Condition string  `json:"condition"`
	Threshold float64 `json:"threshold"`
	Enabled   *bool   `json:"enabled"`
}

func (h *Handler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1024)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req CreateAlertRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	created, err := h.service.Create(r.Context(), alert.NewAlertRequest{
		Name:      req.Name,
		Currency:  req.Currency,
		Tenor:     req.Tenor,
		Condition: domain.AlertCondition(req.Condition),
		Threshold: req.Threshold,
		Enabled:   enabled,
	})
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		msg := "failed to create alert"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "CreateAlert", "name": req.Name}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeData(w, http.StatusCreated, toAlertItem(created))
}

func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.service.List(r.Context())
	if err != nil {
		msg := "failed to list alerts"
		logrus.WithError(err).WithField("handler", "ListAlerts").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	items := make([]AlertItem, 0, len(alerts))
	for _, a := range alerts {
		items = append(items, toAlertItem(a))
	}
	writeDataCount(w, http.StatusOK, items, len(items))
}

func (h *Handler) DeleteAlert(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid alert ID format")
		return
	}

	if err = h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrAlertNotFound) {
			writeError(w, http.StatusNotFound, "alert not found")
			return
		}
		msg := "failed to delete alert"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "DeleteAlert", "id": id}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeData(w, http.StatusOK, map[string]string{"id": id.String()})
}

type TriggerItem struct {
	AlertID     string  `json:"alert_id"`
	Name        string  `json:"name"`
	Currency    string  `json:"currency"`
	Tenor       string  `json:"tenor"`
	Condition   string  `json:"condition"`
	Threshold   float64 `json:"threshold"`
	RatePercent float64 `json:"rate_percent"`
	Message     string  `json:"message"`
	TriggeredAt string  `json:"triggered_at"`
}

func (h *Handler) RecentTriggers(w http.ResponseWriter, r *http.Request) {
	triggers, err := h.service.RecentTriggers(r.Context(), 20)
	if err != nil {
		msg := "failed to list recent triggers"
		logrus.WithError(err).WithField("handler", "RecentTriggers").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	items := make([]TriggerItem, 0, len(triggers))
	for _, tr := range triggers {
		items = append(items, TriggerItem{
			AlertID:     tr.AlertID.String(),
			Name:        tr.Name,
			Currency:    tr.Currency,
			Tenor:       tr.Tenor,
			Condition:   string(tr.Condition),
			Threshold:   tr.Threshold,
			RatePercent: tr.RatePercent,
			Message:     tr.Message,
			TriggeredAt: tr.TriggeredAt.Format(time.RFC3339),
		})
	}
	writeDataCount(w, http.StatusOK, items, len(items))
}

func isValidationError(err error) bool {
	return errors.Is(err, alert.ErrNameRequired) ||
		errors.Is(err, alert.ErrInvalidCondition) ||
		errors.Is(err, alert.ErrInvalidThreshold) ||
		errors.Is(err, rate.ErrCurrencyRequired) ||
		errors.Is(err, rate.ErrCurrencyUnsupported) ||
		errors.Is(err, rate.ErrTenorRequired) ||
		errors.Is(err, rate.ErrTenorInvalid)
}
