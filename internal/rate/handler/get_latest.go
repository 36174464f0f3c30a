package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// GetLatest returns the most recent observation per tenor for one
// currency, shortest tenor first.
func (h *Handler) GetLatest(w http.ResponseWriter, r *http.Request) {
	currency := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "currency")))
	if err := h.validator.ValidateCurrency(currency); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rates, err := h.service.Latest(r.Context(), currency)
	if err != nil {
		msg := "failed to get latest rates"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetLatest", "currency": currency}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	items := toRateItems(rates)
	writeDataCount(w, http.StatusOK, items, len(items))
}
