package handler

import (
	"net/http"
	"strconv"

	"github.com/wpo70/RateEdge/internal/rate"

	"github.com/sirupsen/logrus"
)

type OutlierItem struct {
	Date              string  `json:"date"`
	Rate              float64 `json:"rate"`
	ZScore            float64 `json:"z_score"`
	DeviationFromMean float64 `json:"deviation_from_mean"`
}

type OutliersResponse struct {
	Currency  string        `json:"currency"`
	Tenor     string        `json:"tenor"`
	Outliers  []OutlierItem `json:"outliers"`
	Count     int           `json:"count"`
	Mean      float64       `json:"mean"`
	StdDev    float64       `json:"std_dev"`
	Threshold float64       `json:"threshold"`
}

// GetOutliers flags observations whose z-score against the series mean
// exceeds the threshold (default 3 standard deviations).
func (h *Handler) GetOutliers(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.pairFilter(w, r)
	if !ok {
		return
	}

	threshold := 0.0
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		var err error
		threshold, err = strconv.ParseFloat(raw, 64)
		if err != nil || threshold <= 0 {
			writeError(w, http.StatusBadRequest, "invalid threshold, expected a positive number")
			return
		}
	}

	rates, err := h.service.Query(r.Context(), filter)
	if err != nil {
		msg := "failed to load observations"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetOutliers", "currency": filter.Currency, "tenor": filter.Tenor}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	report, err := rate.DetectOutliers(rates, threshold)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	items := make([]OutlierItem, 0, len(report.Outliers))
	for _, o := range report.Outliers {
		items = append(items, OutlierItem{
			Date:              o.Date.Format("2006-01-02"),
			Rate:              o.Rate,
			ZScore:            o.ZScore,
			DeviationFromMean: o.Deviation,
		})
	}

	writeData(w, http.StatusOK, OutliersResponse{
		Currency:  filter.Currency,
		Tenor:     filter.Tenor,
		Outliers:  items,
		Count:     len(items),
		Mean:      report.Mean,
		StdDev:    report.StdDev,
		Threshold: report.Threshold,
	})
}
