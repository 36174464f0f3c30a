package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/wpo70/RateEdge/internal/domain"
	"github.com/wpo70/RateEdge/internal/rate"

	"github.com/sirupsen/logrus"
)

type ForwardPricingRequest struct {
	Currency   string `json:"currency"`
	StartTenor string `json:"start_tenor"`
	EndTenor   string `json:"end_tenor"`
}

type ForwardPricingResponse struct {
	Currency       string  `json:"currency"`
	StartTenor     string  `json:"start_tenor"`
	EndTenor       string  `json:"end_tenor"`
	StartZero      float64 `json:"start_zero"`
	EndZero        float64 `json:"end_zero"`
	ForwardRate    float64 `json:"forward_rate"`
	ForwardPercent float64 `json:"forward_percent"`
}

// ForwardPricing godoc
// @Summary Implied forward rate
// @Description Derive the forward rate between two tenors from the latest curve of a currency
// @Tags Analytics
// @Accept json
// @Produce json
// @Param request body ForwardPricingRequest true "Pricing request"
// @Success 200 {object} ForwardPricingResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse "no curve data for currency"
// @Router /forward-pricing [post]
func (h *Handler) ForwardPricing(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 512)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req ForwardPricingRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	startTenor := strings.ToUpper(strings.TrimSpace(req.StartTenor))
	endTenor := strings.ToUpper(strings.TrimSpace(req.EndTenor))

	if err := h.validator.ValidateCurrency(currency); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validator.ValidateTenor(startTenor); err != nil {
		writeError(w, http.StatusBadRequest, "start_tenor: "+err.Error())
		return
	}
	if err := h.validator.ValidateTenor(endTenor); err != nil {
		writeError(w, http.StatusBadRequest, "end_tenor: "+err.Error())
		return
	}

	curve, err := h.service.Latest(r.Context(), currency)
	if err != nil {
		msg := "failed to load curve"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "ForwardPricing", "currency": currency}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	result, err := rate.ForwardRate(curve, currency, startTenor, endTenor)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCurve) {
			writeError(w, http.StatusNotFound, "no curve data for currency")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeData(w, http.StatusOK, ForwardPricingResponse{
		Currency:       result.Currency,
		StartTenor:     result.StartTenor,
		EndTenor:       result.EndTenor,
		StartZero:      result.StartZero,
		EndZero:        result.EndZero,
		ForwardRate:    result.Forward,
		ForwardPercent: result.ForwardPercent,
	})
}
