package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/wpo70/RateEdge/internal/domain"
	"github.com/wpo70/RateEdge/internal/rate"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func analyticsObs(dayOffset int, percent float64) domain.SwapRate {
	return domain.SwapRate{
		Date:     time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -dayOffset),
		Currency: "AUD",
		Tenor:    "10Y",
		Rate:     percent / 100,
	}
}

// --- GetPairStatistics ---

func TestHandler_GetPairStatistics_Success(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	mockValidator.On("ValidateCurrency", "AUD").Return(nil).Once()
	mockValidator.On("ValidateTenor", "10Y").Return(nil).Once()

	rates := []domain.SwapRate{
		analyticsObs(0, 4.0),
		analyticsObs(1, 5.0),
		analyticsObs(2, 3.0),
		analyticsObs(3, 6.0),
		analyticsObs(4, 2.0),
	}
	mockService.On("Query", mock.Anything, domain.RateFilter{Currency: "AUD", Tenor: "10Y"}).Return(rates, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/statistics?currency=aud&tenor=10y", nil)
	rr := httptest.NewRecorder()

	h.GetPairStatistics(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var env struct {
		Success bool                   `json:"success"`
		Data    PairStatisticsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.Equal(t, "AUD", env.Data.Currency)
	require.Equal(t, "10Y", env.Data.Tenor)
	require.Equal(t, 5, env.Data.Count)
	require.InDelta(t, 4.0, env.Data.Current, 1e-9)
	require.InDelta(t, 4.0, env.Data.Mean, 1e-9)
	require.InDelta(t, math.Sqrt(2), env.Data.StdDev, 1e-9)
	require.InDelta(t, 3.0, env.Data.Percentile25, 1e-9)
	require.InDelta(t, 5.0, env.Data.Percentile75, 1e-9)
	require.Equal(t, "2024-03-10", env.Data.FirstDate)
	require.Equal(t, "2024-03-14", env.Data.LastDate)
	require.InDelta(t, -1.0, env.Data.Change1D, 1e-9)
	mockService.AssertExpectations(t)
	mockValidator.AssertExpectations(t)
}

func TestHandler_GetPairStatistics_NoObservations(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	mockValidator.On("ValidateCurrency", "NZD").Return(nil).Once()
	mockValidator.On("ValidateTenor", "10Y").Return(nil).Once()
	mockService.On("Query", mock.Anything, mock.Anything).Return([]domain.SwapRate{}, nil).Once()

	rr := httptest.NewRecorder()
	h.GetPairStatistics(rr, httptest.NewRequest(http.MethodGet, "/api/analytics/statistics?currency=NZD&tenor=10Y", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "no observations for currency and tenor", ej.Error)
}

func TestHandler_GetPairStatistics_BadParams(t *testing.T) {
	cases := []struct {
		name    string
		target  string
		setup   func(v *MockValidator)
		wantErr string
	}{
		{
			name:    "unsupported currency",
			target:  "/api/analytics/statistics?currency=XXX&tenor=10Y",
			setup:   func(v *MockValidator) { v.On("ValidateCurrency", "XXX").Return(rate.ErrCurrencyUnsupported) },
			wantErr: "currency not supported",
		},
		{
			name:   "invalid tenor",
			target: "/api/analytics/statistics?currency=AUD&tenor=junk",
			setup: func(v *MockValidator) {
				v.On("ValidateCurrency", "AUD").Return(nil)
				v.On("ValidateTenor", "JUNK").Return(rate.ErrTenorInvalid)
			},
			wantErr: "tenor is not a valid maturity label",
		},
		{
			name:   "bad start date",
			target: "/api/analytics/statistics?currency=AUD&tenor=10Y&start_date=14-03-2024",
			setup: func(v *MockValidator) {
				v.On("ValidateCurrency", "AUD").Return(nil)
				v.On("ValidateTenor", "10Y").Return(nil)
			},
			wantErr: "invalid start_date, expected YYYY-MM-DD",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockValidator := new(MockValidator)
			mockService := new(MockService)
			h := NewRateHandler(mockValidator, mockService)
			tc.setup(mockValidator)

			rr := httptest.NewRecorder()
			h.GetPairStatistics(rr, httptest.NewRequest(http.MethodGet, tc.target, nil))

			require.Equal(t, http.StatusBadRequest, rr.Code)
			var ej errorJSON
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
			require.Equal(t, tc.wantErr, ej.Error)
			mockService.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
		})
	}
}

// --- GetSpread ---

func TestHandler_GetSpread_Success(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	mockValidator.On("ValidateCurrency", "AUD").Return(nil).Once()
	mockValidator.On("ValidateTenor", "2Y").Return(nil).Once()
	mockValidator.On("ValidateTenor", "10Y").Return(nil).Once()

	near := []domain.SwapRate{analyticsObs(0, 4.0), analyticsObs(1, 3.9), analyticsObs(2, 3.8)}
	far := []domain.SwapRate{analyticsObs(0, 4.5), analyticsObs(2, 4.2)}
	mockService.On("Query", mock.Anything, domain.RateFilter{Currency: "AUD", Tenor: "2Y"}).Return(near, nil).Once()
	mockService.On("Query", mock.Anything, domain.RateFilter{Currency: "AUD", Tenor: "10Y"}).Return(far, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/spread?currency=AUD&tenor1=2Y&tenor2=10Y", nil)
	rr := httptest.NewRecorder()

	h.GetSpread(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var env struct {
		Success bool           `json:"success"`
		Data    SpreadResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.Equal(t, "2Y", env.Data.Tenor1)
	require.Equal(t, "10Y", env.Data.Tenor2)
	require.Len(t, env.Data.Data, 2)
	require.Equal(t, "2024-03-14", env.Data.Data[0].Date)
	require.InDelta(t, 0.5, env.Data.Data[0].Spread, 1e-9)
	require.InDelta(t, 0.5, env.Data.Stats.CurrentSpread, 1e-9)
	require.InDelta(t, 0.45, env.Data.Stats.MeanSpread, 1e-9)
	require.InDelta(t, 0.4, env.Data.Stats.MinSpread, 1e-9)
	mockService.AssertExpectations(t)
}

func TestHandler_GetSpread_NoOverlap(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	mockValidator.On("ValidateCurrency", "AUD").Return(nil).Once()
	mockValidator.On("ValidateTenor", "2Y").Return(nil).Once()
	mockValidator.On("ValidateTenor", "10Y").Return(nil).Once()
	mockService.On("Query", mock.Anything, domain.RateFilter{Currency: "AUD", Tenor: "2Y"}).
		Return([]domain.SwapRate{analyticsObs(0, 4.0)}, nil).Once()
	mockService.On("Query", mock.Anything, domain.RateFilter{Currency: "AUD", Tenor: "10Y"}).
		Return([]domain.SwapRate{analyticsObs(1, 4.5)}, nil).Once()

	rr := httptest.NewRecorder()
	h.GetSpread(rr, httptest.NewRequest(http.MethodGet, "/api/analytics/spread?currency=AUD&tenor1=2Y&tenor2=10Y", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "no overlapping observations for the tenor pair", ej.Error)
}

// --- GetVolatility ---

func TestHandler_GetVolatility_Success(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	mockValidator.On("ValidateCurrency", "AUD").Return(nil).Once()
	mockValidator.On("ValidateTenor", "10Y").Return(nil).Once()

	rates := []domain.SwapRate{
		analyticsObs(0, 4.3),
		analyticsObs(1, 4.3),
		analyticsObs(2, 3.9),
		analyticsObs(3, 4.1),
		analyticsObs(4, 4.0),
	}
	mockService.On("Query", mock.Anything, mock.Anything).Return(rates, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/volatility?currency=AUD&tenor=10Y&window=2", nil)
	rr := httptest.NewRecorder()

	h.GetVolatility(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var env struct {
		Success bool               `json:"success"`
		Data    VolatilityResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.Equal(t, 2, env.Data.Window)
	require.Len(t, env.Data.Data, 3)
	require.Equal(t, "2024-03-14", env.Data.Data[0].Date)
	require.InDelta(t, math.Sqrt(0.08), env.Data.Data[0].Volatility, 1e-9)
	require.InDelta(t, math.Sqrt(0.08)*math.Sqrt(252), env.Data.Data[0].VolatilityAnnualized, 1e-9)
}

func TestHandler_GetVolatility_InsufficientData(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	mockValidator.On("ValidateCurrency", "AUD").Return(nil).Once()
	mockValidator.On("ValidateTenor", "10Y").Return(nil).Once()
	mockService.On("Query", mock.Anything, mock.Anything).
		Return([]domain.SwapRate{analyticsObs(0, 4.0), analyticsObs(1, 4.1)}, nil).Once()

	rr := httptest.NewRecorder()
	h.GetVolatility(rr, httptest.NewRequest(http.MethodGet, "/api/analytics/volatility?currency=AUD&tenor=10Y", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "not enough observations for the requested window", ej.Error)
}

func TestHandler_GetVolatility_BadWindow(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	mockValidator.On("ValidateCurrency", "AUD").Return(nil).Once()
	mockValidator.On("ValidateTenor", "10Y").Return(nil).Once()

	rr := httptest.NewRecorder()
	h.GetVolatility(rr, httptest.NewRequest(http.MethodGet, "/api/analytics/volatility?currency=AUD&tenor=10Y&window=1", nil))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "invalid window, expected an integer of at least 2", ej.Error)
	mockService.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
}

// --- GetOutliers ---

func TestHandler_GetOutliers_Success(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	mockValidator.On("ValidateCurrency", "AUD").Return(nil).Once()
	mockValidator.On("ValidateTenor", "10Y").Return(nil).Once()

	rates := make([]domain.SwapRate, 0, 11)
	for i := 0; i < 10; i++ {
		rates = append(rates, analyticsObs(i, 4.0))
	}
	rates = append(rates, analyticsObs(10, 5.0))
	mockService.On("Query", mock.Anything, mock.Anything).Return(rates, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/outliers?currency=AUD&tenor=10Y", nil)
	rr := httptest.NewRecorder()

	h.GetOutliers(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var env struct {
		Success bool             `json:"success"`
		Data    OutliersResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.Equal(t, 1, env.Data.Count)
	require.Len(t, env.Data.Outliers, 1)
	require.Equal(t, "2024-03-04", env.Data.Outliers[0].Date)
	require.InDelta(t, math.Sqrt(10), env.Data.Outliers[0].ZScore, 1e-9)
	require.InDelta(t, 3.0, env.Data.Threshold, 1e-9)
}

func TestHandler_GetOutliers_BadThreshold(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	mockValidator.On("ValidateCurrency", "AUD").Return(nil).Once()
	mockValidator.On("ValidateTenor", "10Y").Return(nil).Once()

	rr := httptest.NewRecorder()
	h.GetOutliers(rr, httptest.NewRequest(http.MethodGet, "/api/analytics/outliers?currency=AUD&tenor=10Y&threshold=-1", nil))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "invalid threshold, expected a positive number", ej.Error)
	mockService.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
}

// --- ExportRates ---

func TestHandler_ExportRates_Success(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	rates := []domain.SwapRate{
		{
			Date:         time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
			Currency:     "AUD",
			Tenor:        "10Y",
			FloatingRate: "6M",
			Rate:         0.0423,
		},
		{
			Date:         time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC),
			Currency:     "USD",
			Tenor:        "5Y",
			FloatingRate: "3M",
			Rate:         0.0388,
		},
	}
	mockService.On("Query", mock.Anything, domain.RateFilter{Limit: exportQueryLimit}).Return(rates, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/export", nil)
	rr := httptest.NewRecorder()

	h.ExportRates(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
	require.Equal(t, `attachment; filename="swap_rates_export.csv"`, rr.Header().Get("Content-Disposition"))

	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "date,currency,tenor,floating_rate,rate", lines[0])
	require.Equal(t, "2024-03-14,AUD,10Y,6M,0.0423", lines[1])
	require.Equal(t, "2024-03-13,USD,5Y,3M,0.0388", lines[2])
	mockService.AssertExpectations(t)
}

func TestHandler_ExportRates_BadDate(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	rr := httptest.NewRecorder()
	h.ExportRates(rr, httptest.NewRequest(http.MethodGet, "/api/export?start_date=yesterday", nil))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "invalid start_date, expected YYYY-MM-DD", ej.Error)
	mockService.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
}

// --- GetDates ---

func TestHandler_GetDates_Success(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	dates := []time.Time{
		time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC),
	}
	mockService.On("Dates", mock.Anything, "").Return(dates, nil).Once()

	rr := httptest.NewRecorder()
	h.GetDates(rr, httptest.NewRequest(http.MethodGet, "/api/metadata/dates", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var env struct {
		Success bool     `json:"success"`
		Count   int      `json:"count"`
		Data    []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.Equal(t, 2, env.Count)
	require.Equal(t, []string{"2024-03-14", "2024-03-13"}, env.Data)
	mockService.AssertExpectations(t)
}

func TestHandler_GetDates_UnsupportedCurrency(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	mockValidator.On("ValidateCurrency", "XXX").Return(rate.ErrCurrencyUnsupported).Once()

	rr := httptest.NewRecorder()
	h.GetDates(rr, httptest.NewRequest(http.MethodGet, "/api/metadata/dates?currency=xxx", nil))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "currency not supported", ej.Error)
	mockService.AssertNotCalled(t, "Dates", mock.Anything, mock.Anything)
}
