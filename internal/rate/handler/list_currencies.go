package handler

import (
	"net/http"

	"worldrates/internal/domain"

	"github.com/sirupsen/logrus"
)

type ListCurrenciesResponse struct {
	Currencies []domain.Currency `json:"currencies"`
}

func (h *Handler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.currencies.ListEnabled(r.Context())
	if err != nil {
		msg := "could not list currencies this time"
		logrus.WithError(err).WithField("handler", "ListCurrencies").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, ListCurrenciesResponse{Currencies: currencies})
}
