package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/wpo70/RateEdge/internal/domain"

	"github.com/sirupsen/logrus"
)

const exportQueryLimit = 250000

// ExportRates streams the matching observations as a CSV attachment in
// the same column layout the import endpoint accepts, so an export can
// be loaded back without edits.
func (h *Handler) ExportRates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	currency := strings.ToUpper(strings.TrimSpace(q.Get("currency")))
	if currency != "" {
		if err := h.validator.ValidateCurrency(currency); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	tenor := strings.ToUpper(strings.TrimSpace(q.Get("tenor")))
	if tenor != "" {
		if err := h.validator.ValidateTenor(tenor); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
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

	rates, err := h.service.Query(r.Context(), domain.RateFilter{
		Currency:  currency,
		Tenor:     tenor,
		StartDate: startDate,
		EndDate:   endDate,
		Limit:     exportQueryLimit,
	})
	if err != nil {
		msg := "failed to export rates"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "ExportRates", "currency": currency, "tenor": tenor}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="swap_rates_export.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"date", "currency", "tenor", "floating_rate", "rate"})
	for _, sr := range rates {
		_ = cw.Write([]string{
			sr.Date.Format("2006-01-02"),
			sr.Currency,
			sr.Tenor,
			sr.FloatingRate,
			strconv.FormatFloat(sr.Rate, 'f', -1, 64),
		})
	}
	cw.Flush()
	if err = cw.Error(); err != nil {
		// Headers are gone; all we can do is log the broken stream.
		logrus.WithError(err).WithField("handler", "ExportRates").Error("failed to write csv export")
	}
}
