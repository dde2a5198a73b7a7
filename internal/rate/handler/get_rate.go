package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"worldrates/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type GetRateResponse struct {
	From string `json:"from" example:"USD"`
	To   string `json:"to" example:"EUR"`
	Date string `json:"date" example:"2025-01-02"`
	Rate string `json:"rate" example:"0.923100"`
}

func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	from := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "from")))
	to := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "to")))

	if err := h.validator.ValidatePair(from, to); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, ok := parseDate(r.URL.Query().Get("date"))
	if !ok {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD or latest")
		return
	}

	value, err := h.resolver.GetRate(r.Context(), from, to, date)
	if err != nil {
		if errors.Is(err, domain.ErrRateNotFound) {
			writeError(w, http.StatusNotFound, "rate not found")
			return
		}
		msg := "could not resolve rate this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetRate", "from": from, "to": to}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, GetRateResponse{
		From: from,
		To:   to,
		Date: domain.RateDay(date).Format(time.DateOnly),
		Rate: value.StringFixed(domain.RatePrecision),
	})
}
