package adapters

import (
	"context"
	"time"

	"worldrates/internal/domain"

	"github.com/shopspring/decimal"
)

// RateStore is the durable source of truth for rates, keyed by the
// (base, target, date) triple.
type RateStore interface {
	Get(ctx context.Context, base, target string, date time.Time) (domain.ExchangeRate, error)
	Upsert(ctx context.Context, rate domain.ExchangeRate) error
	ListTargets(ctx context.Context, base string, date time.Time) ([]string, error)
}

// RateCache is a best-effort TTL accelerator in front of the store. A miss
// never signals an error, and implementations swallow backend failures so
// resolution degrades to the store instead of failing.
type RateCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Put(ctx context.Context, key, value string, ttl time.Duration)
	Del(ctx context.Context, key string)
}

// RateProvider fetches fresh rates for a base currency from a remote source.
// A nil/empty targets slice asks for everything the provider has; a zero
// date means latest. Partial results are allowed.
type RateProvider interface {
	GetRates(ctx context.Context, base string, targets []string, date time.Time) (map[string]decimal.Decimal, error)
}

// CurrencyDirectory resolves currency codes to directory rows.
type CurrencyDirectory interface {
	GetByCode(ctx context.Context, code string) (domain.Currency, error)
	ListEnabled(ctx context.Context) ([]domain.Currency, error)
}
