package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/wpo70/RateEdge/internal/domain"

	"github.com/sirupsen/logrus"
)

const maxBulkBody = 10 << 20 // 10 MiB

func (h *Handler) BulkAddRates(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBulkBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var reqs []AddRateRequest
	if err := dec.Decode(&reqs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body, expected an array of rates")
		return
	}
	if len(reqs) == 0 {
		writeError(w, http.StatusBadRequest, "empty rates array")
		return
	}

	rates := make([]domain.SwapRate, 0, len(reqs))
	for i, req := range reqs {
		rate, err := req.toDomain()
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("item %d: invalid date, expected YYYY-MM-DD", i))
			return
		}
		if err = h.validator.ValidateNewRate(rate); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("item %d: %s", i, err))
			return
		}
		rates = append(rates, rate)
	}

	count, err := h.service.AddBatch(r.Context(), rates)
	if err != nil {
		msg := "failed to add rates"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "BulkAddRates", "count": len(rates)}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeMessage(w, http.StatusCreated, fmt.Sprintf("%d rates added successfully", count))
}
