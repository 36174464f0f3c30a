package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/wpo70/RateEdge/internal/domain"

	"github.com/sirupsen/logrus"
)

type AddRateRequest struct {
	Date         string  `json:"date"`
	Currency     string  `json:"currency"`
	Tenor        string  `json:"tenor"`
	FloatingRate string  `json:"floating_rate"`
	Rate         float64 `json:"rate"`
}

func (req AddRateRequest) toDomain() (domain.SwapRate, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
	if err != nil {
		return domain.SwapRate{}, err
	}
	floating := strings.TrimSpace(req.FloatingRate)
	if floating == "" {
		floating = "6M"
	}
	return domain.SwapRate{
		Date:         date,
		Currency:     strings.ToUpper(strings.TrimSpace(req.Currency)),
		Tenor:        strings.ToUpper(strings.TrimSpace(req.Tenor)),
		FloatingRate: floating,
		Rate:         req.Rate,
	}, nil
}

func (h *Handler) AddRate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1024)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req AddRateRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rate, err := req.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	if err = h.validator.ValidateNewRate(rate); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err = h.service.Add(r.Context(), rate); err != nil {
		msg := "failed to add rate"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "AddRate", "currency": rate.Currency, "tenor": rate.Tenor}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeMessage(w, http.StatusCreated, "rate added successfully")
}
