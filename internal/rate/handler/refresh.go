package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"worldrates/internal/domain"

	"github.com/sirupsen/logrus"
)

type RefreshRequest struct {
	Base    string   `json:"base"`
	Targets []string `json:"targets"`
	Date    string   `json:"date"`
}

type RefreshResponse struct {
	Base  string            `json:"base" example:"USD"`
	Date  string            `json:"date" example:"2025-01-02"`
	Rates map[string]string `json:"rates"`
}

// Refresh triggers a provider fetch-and-store. An empty body refreshes the
// system base currency with the provider's full target set for today.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1024)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req RefreshRequest
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	base := strings.ToUpper(strings.TrimSpace(req.Base))
	if base == "" {
		base = h.resolver.BaseCurrency()
	}
	if err := h.validator.ValidateCode(base); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, ok := parseDate(req.Date)
	if !ok {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD or latest")
		return
	}

	fetched, err := h.resolver.FetchAndStoreRates(r.Context(), base, req.Targets, date)
	if err != nil {
		if errors.Is(err, domain.ErrProviderUnavailable) {
			writeError(w, http.StatusBadGateway, "rate provider unavailable")
			return
		}
		msg := "could not refresh rates this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Refresh", "base": base}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	rates := make(map[string]string, len(fetched))
	for target, value := range fetched {
		rates[target] = value.String()
	}

	writeJSON(w, http.StatusOK, RefreshResponse{
		Base:  base,
		Date:  domain.RateDay(date).Format(time.DateOnly),
		Rates: rates,
	})
}
