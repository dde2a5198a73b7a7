package api

import (
	"worldrates/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(rateHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	router.Get("/api/v1/currencies", rateHandler.ListCurrencies)
	router.Post("/api/v1/rates/refresh", rateHandler.Refresh)
	router.Get("/api/v1/rates/{base:[A-Za-z]{3}}/targets", rateHandler.GetTargets)
	router.Get("/api/v1/rates/{from:[A-Za-z]{3}}/{to:[A-Za-z]{3}}", rateHandler.GetRate)
	router.Get("/api/v1/rates/{from:[A-Za-z]{3}}/{to:[A-Za-z]{3}}/convert", rateHandler.Convert)
	return router
}
