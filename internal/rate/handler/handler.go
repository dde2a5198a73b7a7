package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"worldrates/internal/domain"
	"worldrates/internal/rate"

	"github.com/shopspring/decimal"
)

type PairValidator interface {
	ValidatePair(from, to string) error
	ValidateCode(code string) error
}

type RateResolver interface {
	GetRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error)
	ConvertFor(ctx context.Context, rc rate.ResolutionContext, amount decimal.Decimal, from string, date time.Time) (decimal.Decimal, string, error)
	AvailableTargets(ctx context.Context, base string, date time.Time) ([]string, error)
	FetchAndStoreRates(ctx context.Context, base string, targets []string, date time.Time) (map[string]decimal.Decimal, error)
	BaseCurrency() string
}

type CurrencyLister interface {
	ListEnabled(ctx context.Context) ([]domain.Currency, error)
}

type Handler struct {
	validator  PairValidator
	resolver   RateResolver
	currencies CurrencyLister
}

func NewRateHandler(validator PairValidator, resolver RateResolver, currencies CurrencyLister) *Handler {
	return &Handler{validator: validator, resolver: resolver, currencies: currencies}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// parseDate accepts "", "latest" or YYYY-MM-DD. The zero time means latest.
func parseDate(raw string) (time.Time, bool) {
	if raw == "" || raw == "latest" {
		return time.Time{}, true
	}
	parsed, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
