package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

func (h *Handler) DeleteRates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	currency := strings.ToUpper(strings.TrimSpace(q.Get("currency")))
	if currency != "" {
		if err := h.validator.ValidateCurrency(currency); err != nil {
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

	// An unfiltered delete wipes the whole dataset; require intent.
	if currency == "" && startDate == nil && endDate == nil {
		writeError(w, http.StatusBadRequest, "at least one of currency, start_date or end_date is required")
		return
	}

	count, err := h.service.Delete(r.Context(), currency, startDate, endDate)
	if err != nil {
		msg := "failed to delete rates"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "DeleteRates", "currency": currency}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeMessage(w, http.StatusOK, fmt.Sprintf("%d rates deleted", count))
}
