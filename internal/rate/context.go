package rate

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ResolutionContext carries per-request currency preferences explicitly
// instead of reading them from ambient session state. Empty fields fall
// back to configured defaults.
type ResolutionContext struct {
	BaseCurrency    string
	DisplayCurrency string
	Locale          string
}

// Base returns the context's base currency, or fallback when unset.
func (rc ResolutionContext) Base(fallback string) string {
	if code := strings.ToUpper(strings.TrimSpace(rc.BaseCurrency)); code != "" {
		return code
	}
	return fallback
}

// Display returns the context's display currency, or fallback when unset.
func (rc ResolutionContext) Display(fallback string) string {
	if code := strings.ToUpper(strings.TrimSpace(rc.DisplayCurrency)); code != "" {
		return code
	}
	return fallback
}

// ConvertFor converts amount from the given currency into the context's
// display currency, defaulting to the system base. Returns the resolved
// target code alongside the converted amount.
func (r *Resolver) ConvertFor(ctx context.Context, rc ResolutionContext, amount decimal.Decimal, from string, date time.Time) (decimal.Decimal, string, error) {
	to := rc.Display(r.baseCurrency)
	converted, err := r.Convert(ctx, amount, from, to, date)
	return converted, to, err
}
