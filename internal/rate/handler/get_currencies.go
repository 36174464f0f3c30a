package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

func (h *Handler) GetCurrencies(w http.ResponseWriter, r *http.Request) {
	codes, err := h.service.Currencies(r.Context())
	if err != nil {
		msg := "failed to list currencies"
		logrus.WithError(err).WithField("handler", "GetCurrencies").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	writeData(w, http.StatusOK, codes)
}
