package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"worldrates/internal/domain"
	"worldrates/internal/rate"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ConvertResponse struct {
	From      string `json:"from" example:"USD"`
	To        string `json:"to" example:"JPY"`
	Date      string `json:"date" example:"2025-01-02"`
	Amount    string `json:"amount" example:"100"`
	Converted string `json:"converted" example:"15000"`
}

func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	from := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "from")))
	to := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "to")))

	if err := h.validator.ValidatePair(from, to); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	query := r.URL.Query()
	amount, err := decimal.NewFromString(query.Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "amount must be a decimal number")
		return
	}
	if amount.IsNegative() {
		writeError(w, http.StatusBadRequest, "amount must not be negative")
		return
	}

	date, ok := parseDate(query.Get("date"))
	if !ok {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD or latest")
		return
	}

	rc := rate.ResolutionContext{
		DisplayCurrency: to,
		Locale:          query.Get("locale"),
	}

	converted, target, err := h.resolver.ConvertFor(r.Context(), rc, amount, from, date)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRateNotFound):
			writeError(w, http.StatusNotFound, "rate not found")
		case errors.Is(err, domain.ErrCurrencyNotFound), errors.Is(err, domain.ErrCurrencyDisabled):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			msg := "could not convert this time"
			logrus.WithError(err).WithFields(logrus.Fields{"handler": "Convert", "from": from, "to": to}).Error(msg)
			writeError(w, http.StatusInternalServerError, msg)
		}
		return
	}

	writeJSON(w, http.StatusOK, ConvertResponse{
		From:      from,
		To:        target,
		Date:      domain.RateDay(date).Format(time.DateOnly),
		Amount:    amount.String(),
		Converted: converted.String(),
	})
}
