package handler

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// GetDates lists every distinct observation date, most recent first,
// optionally narrowed to one currency.
func (h *Handler) GetDates(w http.ResponseWriter, r *http.Request) {
	currency := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("currency")))
	if currency != "" {
		if err := h.validator.ValidateCurrency(currency); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	dates, err := h.service.Dates(r.Context(), currency)
	if err != nil {
		msg := "failed to list observation dates"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetDates", "currency": currency}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	items := make([]string, 0, len(dates))
	for _, d := range dates {
		items = append(items, d.Format("2006-01-02"))
	}
	writeDataCount(w, http.StatusOK, items, len(items))
}
