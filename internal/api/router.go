package api

import (
	_ "github.com/wpo70/RateEdge/docs"
	alerthandler "github.com/wpo70/RateEdge/internal/alert/handler"
	ratehandler "github.com/wpo70/RateEdge/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(rateHandler *ratehandler.Handler, alertHandler *alerthandler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Route("/api", func(r chi.Router) {
		r.Get("/statistics", rateHandler.GetStatistics)
		r.Get("/currencies", rateHandler.GetCurrencies)
		r.Get("/tenors/{currency:[A-Za-z]{3}}", rateHandler.GetTenors)
		r.Get("/latest/{currency:[A-Za-z]{3}}", rateHandler.GetLatest)
		r.Get("/metadata/dates", rateHandler.GetDates)

		r.Get("/rates", rateHandler.GetRates)
		r.Post("/rates", rateHandler.AddRate)
		r.Post("/rates/bulk", rateHandler.BulkAddRates)
		r.Delete("/rates", rateHandler.DeleteRates)

		r.Post("/import", rateHandler.ImportCSV)
		r.Get("/export", rateHandler.ExportRates)
		r.Post("/forward-pricing", rateHandler.ForwardPricing)

		r.Get("/analytics/statistics", rateHandler.GetPairStatistics)
		r.Get("/analytics/spread", rateHandler.GetSpread)
		r.Get("/analytics/volatility", rateHandler.GetVolatility)
		r.Get("/analytics/outliers", rateHandler.GetOutliers)

		r.Post("/alerts", alertHandler.CreateAlert)
		r.Get("/alerts", alertHandler.ListAlerts)
		r.Delete("/alerts/{id}", alertHandler.DeleteAlert)
		r.Get("/alerts/triggered", alertHandler.RecentTriggers)
	})
	return router
}
