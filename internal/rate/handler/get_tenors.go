package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func (h *Handler) GetTenors(w http.ResponseWriter, r *http.Request) {
	currency := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "currency")))
	if err := h.validator.ValidateCurrency(currency); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tenors, err := h.service.Tenors(r.Context(), currency)
	if err != nil {
		msg := "failed to list tenors"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetTenors", "currency": currency}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	writeData(w, http.StatusOK, tenors)
}
