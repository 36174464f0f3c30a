package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/wpo70/RateEdge/internal/rate"

	"github.com/sirupsen/logrus"
)

type VolatilityPointItem struct {
	Date                 string  `json:"date"`
	Volatility           float64 `json:"volatility"`
	VolatilityAnnualized float64 `json:"volatility_annualized"`
}

type VolatilityResponse struct {
	Currency string                `json:"currency"`
	Tenor    string                `json:"tenor"`
	Window   int                   `json:"window"`
	Data     []VolatilityPointItem `json:"data"`
}

// GetVolatility reports the rolling standard deviation of daily rate
// moves for one pair, annualised over 252 trading days.
func (h *Handler) GetVolatility(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.pairFilter(w, r)
	if !ok {
		return
	}

	window := 30
	if raw := r.URL.Query().Get("window"); raw != "" {
		var err error
		window, err = strconv.Atoi(raw)
		if err != nil || window < 2 {
			writeError(w, http.StatusBadRequest, "invalid window, expected an integer of at least 2")
			return
		}
	}

	rates, err := h.service.Query(r.Context(), filter)
	if err != nil {
		msg := "failed to load observations"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetVolatility", "currency": filter.Currency, "tenor": filter.Tenor}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	points, err := rate.ComputeVolatility(rates, window)
	if err != nil {
		if errors.Is(err, rate.ErrInsufficientData) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items := make([]VolatilityPointItem, 0, len(points))
	for _, p := range points {
		items = append(items, VolatilityPointItem{
			Date:                 p.Date.Format("2006-01-02"),
			Volatility:           p.Volatility,
			VolatilityAnnualized: p.Annualized,
		})
	}

	writeData(w, http.StatusOK, VolatilityResponse{
		Currency: filter.Currency,
		Tenor:    filter.Tenor,
		Window:   window,
		Data:     items,
	})
}
