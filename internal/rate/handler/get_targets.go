package handler

import (
	"net/http"
	"time"

	"worldrates/internal/domain"
	"worldrates/internal/rate"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type GetTargetsResponse struct {
	Base    string   `json:"base" example:"USD"`
	Date    string   `json:"date" example:"2025-01-02"`
	Targets []string `json:"targets" example:"EUR,GBP,JPY"`
}

func (h *Handler) GetTargets(w http.ResponseWriter, r *http.Request) {
	rc := rate.ResolutionContext{
		BaseCurrency: chi.URLParam(r, "base"),
	}
	base := rc.Base(h.resolver.BaseCurrency())

	if err := h.validator.ValidateCode(base); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, ok := parseDate(r.URL.Query().Get("date"))
	if !ok {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD or latest")
		return
	}

	targets, err := h.resolver.AvailableTargets(r.Context(), base, date)
	if err != nil {
		msg := "could not list available targets this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetTargets", "base": base}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, GetTargetsResponse{
		Base:    base,
		Date:    domain.RateDay(date).Format(time.DateOnly),
		Targets: targets,
	})
}
