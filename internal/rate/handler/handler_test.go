package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wpo70/RateEdge/internal/domain"
	"github.com/wpo70/RateEdge/internal/rate"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockValidator struct{ mock.Mock }

func (m *MockValidator) ValidateCurrency(code string) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockValidator) ValidateTenor(tenor string) error {
	args := m.Called(tenor)
	return args.Error(0)
}

func (m *MockValidator) ValidateNewRate(r domain.SwapRate) error {
	args := m.Called(r)
	return args.Error(0)
}

type MockService struct{ mock.Mock }

func (m *MockService) Statistics(ctx context.Context) (domain.StatisticsSummary, error) {
	args := m.Called(ctx)
	summary, _ := args.Get(0).(domain.StatisticsSummary)
	return summary, args.Error(1)
}

func (m *MockService) Query(ctx context.Context, filter domain.RateFilter) ([]domain.SwapRate, error) {
	args := m.Called(ctx, filter)
	rates, _ := args.Get(0).([]domain.SwapRate)
	return rates, args.Error(1)
}

func (m *MockService) Latest(ctx context.Context, currency string) ([]domain.SwapRate, error) {
	args := m.Called(ctx, currency)
	rates, _ := args.Get(0).([]domain.SwapRate)
	return rates, args.Error(1)
}

func (m *MockService) Currencies(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	codes, _ := args.Get(0).([]string)
	return codes, args.Error(1)
}

func (m *MockService) Tenors(ctx context.Context, currency string) ([]string, error) {
	args := m.Called(ctx, currency)
	tenors, _ := args.Get(0).([]string)
	return tenors, args.Error(1)
}

func (m *MockService) Dates(ctx context.Context, currency string) ([]time.Time, error) {
	args := m.Called(ctx, currency)
	dates, _ := args.Get(0).([]time.Time)
	return dates, args.Error(1)
}

func (m *MockService) Add(ctx context.Context, r domain.SwapRate) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockService) AddBatch(ctx context.Context, rates []domain.SwapRate) (int, error) {
	args := m.Called(ctx, rates)
	return args.Int(0), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, currency string, start, end *time.Time) (int64, error) {
	args := m.Called(ctx, currency, start, end)
	count, _ := args.Get(0).(int64)
	return count, args.Error(1)
}

type errorJSON struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// --- GetStatistics ---

func TestHandler_GetStatistics_Success(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	earliest := time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC)
	latest := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	summary := domain.StatisticsSummary{
		TotalRecords:      15234,
		Currencies:        4,
		CurrencyBreakdown: map[string]int64{"AUD": 8000, "USD": 7234},
		EarliestDate:      &earliest,
		LatestDate:        &latest,
	}
	mockService.On("Statistics", mock.Anything).Return(summary, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/statistics", nil)
	rr := httptest.NewRecorder()

	h.GetStatistics(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var env struct {
		Success bool               `json:"success"`
		Data    StatisticsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.Equal(t, int64(15234), env.Data.TotalRecords)
	require.Equal(t, 4, env.Data.Currencies)
	require.NotNil(t, env.Data.LatestDate)
	require.Equal(t, "2024-03-14", *env.Data.LatestDate)
	require.NotNil(t, env.Data.EarliestDate)
	require.Equal(t, "2020-01-06", *env.Data.EarliestDate)
	mockService.AssertExpectations(t)
}

func TestHandler_GetStatistics_InternalError(t *testing.T) {
	mockService := new(MockService)
	h := NewRateHandler(new(MockValidator), mockService)

	mockService.On("Statistics", mock.Anything).Return(domain.StatisticsSummary{}, errors.New("db failed")).Once()

	rr := httptest.NewRecorder()
	h.GetStatistics(rr, httptest.NewRequest(http.MethodGet, "/api/statistics", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "failed to compute dataset statistics", ej.Error)
	mockService.AssertExpectations(t)
}

// --- GetRates ---

func TestHandler_GetRates_Success(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	rates := []domain.SwapRate{
		{Date: time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), Currency: "AUD", Tenor: "10Y", FloatingRate: "6M", Rate: 0.0423},
	}

	mockValidator.On("ValidateCurrency", "AUD").Return(nil).Once()
	filter := domain.RateFilter{Currency: "AUD"}
	mockService.On("Query", mock.Anything, filter).Return(rates, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/rates?currency=aud", nil)
	rr := httptest.NewRecorder()

	h.GetRates(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var env struct {
		Success bool       `json:"success"`
		Data    []RateItem `json:"data"`
		Count   int        `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.Equal(t, 1, env.Count)
	require.Len(t, env.Data, 1)
	require.Equal(t, "2024-03-14", env.Data[0].Date)
	require.InDelta(t, 0.0423, env.Data[0].Rate, 1e-12)
	require.InDelta(t, 4.23, env.Data[0].RatePercent, 1e-9)
	mockValidator.AssertExpectations(t)
	mockService.AssertExpectations(t)
}

func TestHandler_GetRates_BadParams(t *testing.T) {
	cases := []struct {
		name    string
		query   string
		setup   func(v *MockValidator)
		wantMsg string
	}{
		{
			name:  "unsupported currency",
			query: "currency=xxx",
			setup: func(v *MockValidator) {
				v.On("ValidateCurrency", "XXX").Return(rate.ErrCurrencyUnsupported).Once()
			},
			wantMsg: rate.ErrCurrencyUnsupported.Error(),
		},
		{
			name:  "invalid tenor",
			query: "tenor=spot",
			setup: func(v *MockValidator) {
				v.On("ValidateTenor", "SPOT").Return(rate.ErrTenorInvalid).Once()
			},
			wantMsg: rate.ErrTenorInvalid.Error(),
		},
		{
			name:    "bad start date",
			query:   "start_date=14-03-2024",
			setup:   func(v *MockValidator) {},
			wantMsg: "invalid start_date, expected YYYY-MM-DD",
		},
		{
			name:    "bad limit",
			query:   "limit=zero",
			setup:   func(v *MockValidator) {},
			wantMsg: "invalid limit, expected a positive integer",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockValidator := new(MockValidator)
			mockService := new(MockService)
			h := NewRateHandler(mockValidator, mockService)
			tc.setup(mockValidator)

			req := httptest.NewRequest(http.MethodGet, "/api/rates?"+tc.query, nil)
			rr := httptest.NewRecorder()

			h.GetRates(rr, req)

			require.Equal(t, http.StatusBadRequest, rr.Code)
			var ej errorJSON
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
			require.Equal(t, tc.wantMsg, ej.Error)
			mockService.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
			mockValidator.AssertExpectations(t)
		})
	}
}

// --- GetLatest ---

func TestHandler_GetLatest_Success(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	curve := []domain.SwapRate{
		{Date: time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), Currency: "USD", Tenor: "5Y", FloatingRate: "3M SOFR", Rate: 0.0388},
		{Date: time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), Currency: "USD", Tenor: "10Y", FloatingRate: "3M SOFR", Rate: 0.0401},
	}
	mockValidator.On("ValidateCurrency", "USD").Return(nil).Once()
	mockService.On("Latest", mock.Anything, "USD").Return(curve, nil).Once()

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/latest/usd", nil), "currency", "usd")
	rr := httptest.NewRecorder()

	h.GetLatest(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var env struct {
		Success bool       `json:"success"`
		Data    []RateItem `json:"data"`
		Count   int        `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, 2, env.Count)
	require.Equal(t, "5Y", env.Data[0].Tenor)
	mockValidator.AssertExpectations(t)
	mockService.AssertExpectations(t)
}

func TestHandler_GetLatest_UnsupportedCurrency(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	mockValidator.On("ValidateCurrency", "XXX").Return(rate.ErrCurrencyUnsupported).Once()

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/latest/xxx", nil), "currency", "xxx")
	rr := httptest.NewRecorder()

	h.GetLatest(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertNotCalled(t, "Latest", mock.Anything, mock.Anything)
	mockValidator.AssertExpectations(t)
}

// --- AddRate ---

func TestHandler_AddRate_Success(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	want := domain.SwapRate{
		Date:         time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		Currency:     "AUD",
		Tenor:        "10Y",
		FloatingRate: "6M",
		Rate:         0.0423,
	}
	mockValidator.On("ValidateNewRate", want).Return(nil).Once()
	mockService.On("Add", mock.Anything, want).Return(nil).Once()

	body := `{"date":"2024-03-14","currency":" aud ","tenor":"10y","rate":0.0423}`
	req := httptest.NewRequest(http.MethodPost, "/api/rates", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.AddRate(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	var env struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.Equal(t, "rate added successfully", env.Message)
	mockValidator.AssertExpectations(t)
	mockService.AssertExpectations(t)
}

func TestHandler_AddRate_BadBody(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: "{"},
		{name: "unknown field", body: `{"date":"2024-03-14","currency":"AUD","tenor":"10Y","rate":0.04,"extra":1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockValidator := new(MockValidator)
			mockService := new(MockService)
			h := NewRateHandler(mockValidator, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/rates", bytes.NewBufferString(tc.body))
			rr := httptest.NewRecorder()

			h.AddRate(rr, req)

			require.Equal(t, http.StatusBadRequest, rr.Code)
			var ej errorJSON
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
			require.Equal(t, "invalid request body", ej.Error)
			mockService.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_AddRate_BadDate(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	body := `{"date":"14/03/2024","currency":"AUD","tenor":"10Y","rate":0.0423}`
	req := httptest.NewRequest(http.MethodPost, "/api/rates", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.AddRate(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "invalid date, expected YYYY-MM-DD", ej.Error)
	mockService.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestHandler_AddRate_ValidationError(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	mockValidator.On("ValidateNewRate", mock.Anything).Return(rate.ErrRateOutOfRange).Once()

	body := `{"date":"2024-03-14","currency":"AUD","tenor":"10Y","rate":4.23}`
	req := httptest.NewRequest(http.MethodPost, "/api/rates", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.AddRate(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, rate.ErrRateOutOfRange.Error(), ej.Error)
	mockService.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	mockValidator.AssertExpectations(t)
}

// --- DeleteRates ---

func TestHandler_DeleteRates_RequiresFilter(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	req := httptest.NewRequest(http.MethodDelete, "/api/rates", nil)
	rr := httptest.NewRecorder()

	h.DeleteRates(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "at least one of currency, start_date or end_date is required", ej.Error)
	mockService.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_DeleteRates_Success(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	mockValidator.On("ValidateCurrency", "AUD").Return(nil).Once()
	mockService.On("Delete", mock.Anything, "AUD", (*time.Time)(nil), (*time.Time)(nil)).Return(int64(12), nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/rates?currency=AUD", nil)
	rr := httptest.NewRecorder()

	h.DeleteRates(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var env struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, "12 rates deleted", env.Message)
	mockValidator.AssertExpectations(t)
	mockService.AssertExpectations(t)
}

// --- ForwardPricing ---

func TestHandler_ForwardPricing_Success(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	curve := []domain.SwapRate{
		{Currency: "AUD", Tenor: "5Y", Rate: 0.03},
		{Currency: "AUD", Tenor: "10Y", Rate: 0.04},
	}
	mockValidator.On("ValidateCurrency", "AUD").Return(nil).Once()
	mockValidator.On("ValidateTenor", "5Y").Return(nil).Once()
	mockValidator.On("ValidateTenor", "10Y").Return(nil).Once()
	mockService.On("Latest", mock.Anything, "AUD").Return(curve, nil).Once()

	body := `{"currency":"aud","start_tenor":"5y","end_tenor":"10y"}`
	req := httptest.NewRequest(http.MethodPost, "/api/forward-pricing", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.ForwardPricing(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var env struct {
		Success bool                   `json:"success"`
		Data    ForwardPricingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.InDelta(t, 0.05, env.Data.ForwardRate, 1e-12)
	require.InDelta(t, 5.0, env.Data.ForwardPercent, 1e-9)
	mockValidator.AssertExpectations(t)
	mockService.AssertExpectations(t)
}

func TestHandler_ForwardPricing_EmptyCurve(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	mockValidator.On("ValidateCurrency", "NZD").Return(nil).Once()
	mockValidator.On("ValidateTenor", "5Y").Return(nil).Once()
	mockValidator.On("ValidateTenor", "10Y").Return(nil).Once()
	mockService.On("Latest", mock.Anything, "NZD").Return([]domain.SwapRate{}, nil).Once()

	body := `{"currency":"NZD","start_tenor":"5Y","end_tenor":"10Y"}`
	req := httptest.NewRequest(http.MethodPost, "/api/forward-pricing", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.ForwardPricing(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "no curve data for currency", ej.Error)
	mockValidator.AssertExpectations(t)
	mockService.AssertExpectations(t)
}

func TestHandler_ForwardPricing_BadTenor(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	mockValidator.On("ValidateCurrency", "AUD").Return(nil).Once()
	mockValidator.On("ValidateTenor", "SPOT").Return(rate.ErrTenorInvalid).Once()

	body := `{"currency":"AUD","start_tenor":"spot","end_tenor":"10Y"}`
	req := httptest.NewRequest(http.MethodPost, "/api/forward-pricing", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.ForwardPricing(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "start_tenor: "+rate.ErrTenorInvalid.Error(), ej.Error)
	mockService.AssertNotCalled(t, "Latest", mock.Anything, mock.Anything)
	mockValidator.AssertExpectations(t)
}
