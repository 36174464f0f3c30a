package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/wpo70/RateEdge/internal/domain"

	"github.com/sirupsen/logrus"
)

type RateItem struct {
	Date         string  `json:"date"`
	Currency     string  `json:"currency"`
	Tenor        string  `json:"tenor"`
	FloatingRate string  `json:"floating_rate"`
	Rate         float64 `json:"rate"`
	RatePercent  float64 `json:"rate_percent"`
}

func toRateItems(rates []domain.SwapRate) []RateItem {
	items := make([]RateItem, 0, len(rates))
	for _, r := range rates {
		items = append(items, RateItem{
			Date:         r.Date.Format("2006-01-02"),
			Currency:     r.Currency,
			Tenor:        r.Tenor,
			FloatingRate: r.FloatingRate,
			Rate:         r.Rate,
			RatePercent:  r.RatePercent(),
		})
	}
	return items
}

// GetRates godoc
// @Summary Query swap rate observations
// @Description Observations ordered most-recent-first, optionally filtered by currency, tenor and date range
// @Tags Rates
// @Produce json
// @Param currency query string false "Currency code"
// @Param tenor query string false "Tenor label, e.g. 10Y"
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param limit query int false "Max rows, default 1000"
// @Success 200 {array} RateItem
// @Router /rates [get]
func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
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

	limit := 0
	if rawLimit := q.Get("limit"); rawLimit != "" {
		limit, err = strconv.Atoi(rawLimit)
		if err != nil || limit < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit, expected a positive integer")
			return
		}
	}

	filter := domain.RateFilter{
		Currency:  currency,
		Tenor:     tenor,
		StartDate: startDate,
		EndDate:   endDate,
		Limit:     limit,
	}
	rates, err := h.service.Query(r.Context(), filter)
	if err != nil {
		msg := "failed to query rates"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetRates", "currency": currency, "tenor": tenor}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	items := toRateItems(rates)
	writeDataCount(w, http.StatusOK, items, len(items))
}
