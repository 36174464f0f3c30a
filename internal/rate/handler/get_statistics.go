package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

type StatisticsResponse struct {
	TotalRecords      int64            `json:"total_records"`
	Currencies        int              `json:"currencies"`
	CurrencyBreakdown map[string]int64 `json:"currency_breakdown"`
	EarliestDate      *string          `json:"earliest_date"`
	LatestDate        *string          `json:"latest_date"`
}

// GetStatistics godoc
// @Summary Dataset statistics
// @Description Aggregate counts and date bounds over the stored swap rates
// @Tags Statistics
// @Produce json
// @Success 200 {object} StatisticsResponse
// @Router /statistics [get]
func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Statistics(r.Context())
	if err != nil {
		msg := "failed to compute dataset statistics"
		logrus.WithError(err).WithField("handler", "GetStatistics").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	res := StatisticsResponse{
		TotalRecords:      summary.TotalRecords,
		Currencies:        summary.Currencies,
		CurrencyBreakdown: summary.CurrencyBreakdown,
	}
	if summary.EarliestDate != nil {
		d := summary.EarliestDate.Format("2006-01-02")
		res.EarliestDate = &d
	}
	if summary.LatestDate != nil {
		d := summary.LatestDate.Format("2006-01-02")
		res.LatestDate = &d
	}
	writeData(w, http.StatusOK, res)
}
