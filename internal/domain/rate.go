package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RatePrecision is the number of fractional digits kept for stored and
// derived rates. Matches the numeric(15,6) column.
const RatePrecision = 6

// ExchangeRate is one stored rate: how many units of the target currency
// one unit of the base currency buys on a given calendar date.
type ExchangeRate struct {
	BaseCurrencyCode   string
	TargetCurrencyCode string
	Rate               decimal.Decimal
	RateDate           time.Time
	CreatedAt          time.Time
}

// RateDay truncates t to its UTC calendar date. A zero time maps to today,
// so callers can pass time.Time{} to mean "latest".
func RateDay(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
