package handler

import (
	"net/http"

	"github.com/wpo70/RateEdge/internal/rate"

	"github.com/sirupsen/logrus"
)

type PairStatisticsResponse struct {
	Currency     string  `json:"currency"`
	Tenor        string  `json:"tenor"`
	Count        int     `json:"count"`
	Current      float64 `json:"current"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	StdDev       float64 `json:"std_dev"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Range        float64 `json:"range"`
	Percentile25 float64 `json:"percentile_25"`
	Percentile75 float64 `json:"percentile_75"`
	FirstDate    string  `json:"first_date"`
	LastDate     string  `json:"last_date"`
	Change1D     float64 `json:"change_1d"`
	Change1W     float64 `json:"change_1w"`
	Change1M     float64 `json:"change_1m"`
	Change3M     float64 `json:"change_3m"`
}

// GetPairStatistics godoc
// @Summary Per-pair rate statistics
// @Description Descriptive statistics and recent changes for one currency/tenor pair, in percent terms
// @Tags Analytics
// @Produce json
// @Param currency query string true "Currency code"
// @Param tenor query string true "Tenor label, e.g. 10Y"
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Success 200 {object} PairStatisticsResponse
// @Failure 404 {object} errorResponse "no observations for currency and tenor"
// @Router /analytics/statistics [get]
func (h *Handler) GetPairStatistics(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.pairFilter(w, r)
	if !ok {
		return
	}

	rates, err := h.service.Query(r.Context(), filter)
	if err != nil {
		msg := "failed to load observations"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetPairStatistics", "currency": filter.Currency, "tenor": filter.Tenor}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	stats, err := rate.ComputePairStatistics(rates)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeData(w, http.StatusOK, PairStatisticsResponse{
		Currency:     filter.Currency,
		Tenor:        filter.Tenor,
		Count:        stats.Count,
		Current:      stats.Current,
		Mean:         stats.Mean,
		Median:       stats.Median,
		StdDev:       stats.StdDev,
		Min:          stats.Min,
		Max:          stats.Max,
		Range:        stats.Range,
		Percentile25: stats.Percentile25,
		Percentile75: stats.Percentile75,
		FirstDate:    stats.FirstDate.Format("2006-01-02"),
		LastDate:     stats.LastDate.Format("2006-01-02"),
		Change1D:     stats.Change1D,
		Change1W:     stats.Change1W,
		Change1M:     stats.Change1M,
		Change3M:     stats.Change3M,
	})
}
