package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/wpo70/RateEdge/internal/domain"
)

type RateService interface {
	Statistics(ctx context.Context) (domain.StatisticsSummary, error)
	Query(ctx context.Context, filter domain.RateFilter) ([]domain.SwapRate, error)
	Latest(ctx context.Context, currency string) ([]domain.SwapRate, error)
	Currencies(ctx context.Context) ([]string, error)
	Tenors(ctx context.Context, currency string) ([]string, error)
	Dates(ctx context.Context, currency string) ([]time.Time, error)
	Add(ctx context.Context, rate domain.SwapRate) error
	AddBatch(ctx context.Context, rates []domain.SwapRate) (int, error)
	Delete(ctx context.Context, currency string, start, end *time.Time) (int64, error)
}

type Validator interface {
	ValidateCurrency(code string) error
	ValidateTenor(tenor string) error
	ValidateNewRate(rate domain.SwapRate) error
}

type Handler struct {
	validator Validator
	service   RateService
}

func NewRateHandler(validator Validator, service RateService) *Handler {
	return &Handler{validator: validator, service: service}
}

// Every response carries the {success, ...} envelope the dashboard and
// the other API consumers key off.

type dataEnvelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeData(w http.ResponseWriter, statusCode int, data any) {
	writeEnvelope(w, statusCode, dataEnvelope{Success: true, Data: data})
}

func writeDataCount(w http.ResponseWriter, statusCode int, data any, count int) {
	writeEnvelope(w, statusCode, dataEnvelope{Success: true, Data: data, Count: &count})
}

func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	writeEnvelope(w, statusCode, dataEnvelope{Success: true, Message: message})
}

func writeEnvelope(w http.ResponseWriter, statusCode int, env dataEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(env)
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: errorMsg})
}

// pairFilter parses the currency/tenor/date-range selection shared by
// the analytics endpoints. On a bad parameter the 400 is already
// written and ok is false.
func (h *Handler) pairFilter(w http.ResponseWriter, r *http.Request) (domain.RateFilter, bool) {
	q := r.URL.Query()

	currency := strings.ToUpper(strings.TrimSpace(q.Get("currency")))
	if err := h.validator.ValidateCurrency(currency); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return domain.RateFilter{}, false
	}
	tenor := strings.ToUpper(strings.TrimSpace(q.Get("tenor")))
	if err := h.validator.ValidateTenor(tenor); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return domain.RateFilter{}, false
	}

	startDate, err := parseDateParam(q.Get("start_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
		return domain.RateFilter{}, false
	}
	endDate, err := parseDateParam(q.Get("end_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date, expected YYYY-MM-DD")
		return domain.RateFilter{}, false
	}

	return domain.RateFilter{
		Currency:  currency,
		Tenor:     tenor,
		StartDate: startDate,
		EndDate:   endDate,
	}, true
}

// parseDateParam parses an optional YYYY-MM-DD query value.
func parseDateParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
