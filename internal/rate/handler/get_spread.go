package handler

import (
	"net/http"
	"strings"

	"github.com/wpo70/RateEdge/internal/domain"
	"github.com/wpo70/RateEdge/internal/rate"

	"github.com/sirupsen/logrus"
)

type SpreadPointItem struct {
	Date   string  `json:"date"`
	Rate1  float64 `json:"rate1"`
	Rate2  float64 `json:"rate2"`
	Spread float64 `json:"spread"`
}

type SpreadStatsItem struct {
	MeanSpread    float64 `json:"mean_spread"`
	MedianSpread  float64 `json:"median_spread"`
	StdSpread     float64 `json:"std_spread"`
	MinSpread     float64 `json:"min_spread"`
	MaxSpread     float64 `json:"max_spread"`
	CurrentSpread float64 `json:"current_spread"`
}

type SpreadResponse struct {
	Currency string            `json:"currency"`
	Tenor1   string            `json:"tenor1"`
	Tenor2   string            `json:"tenor2"`
	Stats    SpreadStatsItem   `json:"stats"`
	Data     []SpreadPointItem `json:"data"`
}

// GetSpread reports tenor2 minus tenor1 over the dates both tenors were
// observed, most recent first.
func (h *Handler) GetSpread(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	currency := strings.ToUpper(strings.TrimSpace(q.Get("currency")))
	if err := h.validator.ValidateCurrency(currency); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tenor1 := strings.ToUpper(strings.TrimSpace(q.Get("tenor1")))
	if err := h.validator.ValidateTenor(tenor1); err != nil {
		writeError(w, http.StatusBadRequest, "tenor1: "+err.Error())
		return
	}
	tenor2 := strings.ToUpper(strings.TrimSpace(q.Get("tenor2")))
	if err := h.validator.ValidateTenor(tenor2); err != nil {
		writeError(w, http.StatusBadRequest, "tenor2: "+err.Error())
		return
	}

	startDate, err := parseDateParam(q.Get("start_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
		return
	}
	endDate, err := parseDateParam(q.Get("end_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date, expected YYYY-MM-DD")
		return
	}

	query := func(tenor string) ([]domain.SwapRate, error) {
		return h.service.Query(r.Context(), domain.RateFilter{
			Currency:  currency,
			Tenor:     tenor,
			StartDate: startDate,
			EndDate:   endDate,
		})
	}

	rates1, err := query(tenor1)
	if err != nil {
		msg := "failed to load observations"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetSpread", "currency": currency, "tenor": tenor1}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	rates2, err := query(tenor2)
	if err != nil {
		msg := "failed to load observations"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetSpread", "currency": currency, "tenor": tenor2}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	points, stats, err := rate.ComputeSpread(rates1, rates2)
	if err != nil {
		writeError(w, http.StatusNotFound, "no overlapping observations for the tenor pair")
		return
	}

	items := make([]SpreadPointItem, 0, len(points))
	for _, p := range points {
		items = append(items, SpreadPointItem{
			Date:   p.Date.Format("2006-01-02"),
			Rate1:  p.Rate1,
			Rate2:  p.Rate2,
			Spread: p.Spread,
		})
	}

	writeData(w, http.StatusOK, SpreadResponse{
		Currency: currency,
		Tenor1:   tenor1,
		Tenor2:   tenor2,
		Stats: SpreadStatsItem{
			MeanSpread:    stats.Mean,
			MedianSpread:  stats.Median,
			StdSpread:     stats.StdDev,
			MinSpread:     stats.Min,
			MaxSpread:     stats.Max,
			CurrentSpread: stats.Current,
		},
		Data: items,
	})
}
