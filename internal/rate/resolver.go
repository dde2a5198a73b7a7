package rate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"worldrates/internal/adapters"
	"worldrates/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const cacheKeyPrefix = "rates"

// Resolver answers rate lookups through the chain
// cache -> store -> provider -> triangulation, writing fresh results back
// into the store and cache as it goes.
type Resolver struct {
	store      adapters.RateStore
	cache      adapters.RateCache
	provider   adapters.RateProvider
	currencies adapters.CurrencyDirectory

	baseCurrency string
	cacheTTL     time.Duration
}

type ResolverConfig struct {
	BaseCurrency string
	CacheTTL     time.Duration
}

func NewResolver(store adapters.RateStore, cache adapters.RateCache, provider adapters.RateProvider, currencies adapters.CurrencyDirectory, cfg ResolverConfig) *Resolver {
	base := strings.ToUpper(strings.TrimSpace(cfg.BaseCurrency))
	if base == "" {
		base = "USD"
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Resolver{
		store:        store,
		cache:        cache,
		provider:     provider,
		currencies:   currencies,
		baseCurrency: base,
		cacheTTL:     ttl,
	}
}

// BaseCurrency returns the configured system base currency code.
func (r *Resolver) BaseCurrency() string { return r.baseCurrency }

// GetRate resolves the rate from one currency to another for the given
// calendar date (zero date means today). Returns domain.ErrRateNotFound
// when no layer can produce a value; zero is never a legitimate rate.
func (r *Resolver) GetRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	// Same-currency rate is implicit and touches nothing.
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	day := domain.RateDay(date)
	key := rateKey(from, to, day)

	if cached, ok := r.cache.Get(ctx, key); ok {
		if value, err := decimal.NewFromString(cached); err == nil {
			return value, nil
		}
		// Unparseable entry: drop it and re-resolve.
		r.cache.Del(ctx, key)
	}

	stored, err := r.store.Get(ctx, from, to, day)
	if err == nil {
		r.cache.Put(ctx, key, stored.Rate.String(), r.cacheTTL)
		return stored.Rate, nil
	}
	if !errors.Is(err, domain.ErrRateNotFound) {
		return decimal.Decimal{}, fmt.Errorf("rate store lookup %s/%s: %w", from, to, err)
	}

	// Provider rates are only published against the base currency, and
	// fetching a future date is meaningless.
	if from == r.baseCurrency && !day.After(domain.RateDay(time.Now())) {
		fetched, fetchErr := r.FetchAndStoreRates(ctx, from, []string{to}, day)
		if fetchErr != nil {
			logrus.WithError(fetchErr).WithFields(logrus.Fields{"base": from, "target": to}).
				Warn("provider fetch failed, continuing fallback chain")
		} else if value, ok := fetched[to]; ok && value.IsPositive() {
			r.cache.Put(ctx, key, value.String(), r.cacheTTL)
			return value, nil
		}
	}

	// Cross rate through the base: 1 base = a from-units, 1 base = b
	// to-units, hence 1 from-unit = b/a to-units.
	if from != r.baseCurrency && to != r.baseCurrency {
		baseToFrom, errFrom := r.GetRate(ctx, r.baseCurrency, from, day)
		baseToTo, errTo := r.GetRate(ctx, r.baseCurrency, to, day)
		if errFrom == nil && errTo == nil && !baseToFrom.IsZero() {
			cross := baseToTo.DivRound(baseToFrom, domain.RatePrecision)
			r.cache.Put(ctx, key, cross.String(), r.cacheTTL)
			return cross, nil
		}
	}

	return decimal.Decimal{}, domain.ErrRateNotFound
}

// FetchAndStoreRates pulls rates from the provider and upserts them into the
// store. base defaults to the system base currency and a zero date to today.
// The provider's map is returned verbatim so callers can see which targets
// were actually fulfilled.
func (r *Resolver) FetchAndStoreRates(ctx context.Context, base string, targets []string, date time.Time) (map[string]decimal.Decimal, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	if base == "" {
		base = r.baseCurrency
	}
	day := domain.RateDay(date)

	rates, err := r.provider.GetRates(ctx, base, targets, day)
	if err != nil {
		return nil, fmt.Errorf("fetch rates for %s on %s: %w", base, day.Format(time.DateOnly), err)
	}

	for target, value := range rates {
		if target == base || !value.IsPositive() {
			continue
		}
		record := domain.ExchangeRate{
			BaseCurrencyCode:   base,
			TargetCurrencyCode: target,
			Rate:               value.Round(domain.RatePrecision),
			RateDate:           day,
		}
		if err := r.store.Upsert(ctx, record); err != nil {
			return nil, fmt.Errorf("store rate %s/%s: %w", base, target, err)
		}
	}

	// The set of available targets for this base/date likely changed.
	r.cache.Del(ctx, targetsKey(base, day))

	return rates, nil
}

// Convert turns amount of one currency into another, rounding half-up to
// the target currency's configured decimal places. Both currencies must
// exist in the directory and be enabled.
func (r *Resolver) Convert(ctx context.Context, amount decimal.Decimal, from, to string, date time.Time) (decimal.Decimal, error) {
	if amount.IsZero() {
		return decimal.Zero, nil
	}

	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	if _, err := r.resolveCurrency(ctx, from); err != nil {
		return decimal.Decimal{}, err
	}
	target, err := r.resolveCurrency(ctx, to)
	if err != nil {
		return decimal.Decimal{}, err
	}

	value, err := r.GetRate(ctx, from, to, date)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return amount.Mul(value).Round(target.DecimalPlaces), nil
}

// AvailableTargets lists the enabled currencies that have a stored rate
// against base for the given date. Cacheable per (base, date).
func (r *Resolver) AvailableTargets(ctx context.Context, base string, date time.Time) ([]string, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	if base == "" {
		base = r.baseCurrency
	}
	day := domain.RateDay(date)
	key := targetsKey(base, day)

	if cached, ok := r.cache.Get(ctx, key); ok {
		if cached == "" {
			return []string{}, nil
		}
		return strings.Split(cached, ","), nil
	}

	targets, err := r.store.ListTargets(ctx, base, day)
	if err != nil {
		return nil, fmt.Errorf("list targets for %s: %w", base, err)
	}

	r.cache.Put(ctx, key, strings.Join(targets, ","), r.cacheTTL)
	return targets, nil
}

func (r *Resolver) resolveCurrency(ctx context.Context, code string) (domain.Currency, error) {
	currency, err := r.currencies.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrCurrencyNotFound) {
			return domain.Currency{}, fmt.Errorf("currency %q: %w", code, domain.ErrCurrencyNotFound)
		}
		return domain.Currency{}, fmt.Errorf("resolve currency %q: %w", code, err)
	}
	if !currency.Enabled {
		return domain.Currency{}, fmt.Errorf("currency %q: %w", code, domain.ErrCurrencyDisabled)
	}
	return currency, nil
}

func rateKey(from, to string, day time.Time) string {
	return cacheKeyPrefix + "." + from + "." + to + "." + day.Format(time.DateOnly)
}

func targetsKey(base string, day time.Time) string {
	return cacheKeyPrefix + ".targets." + base + "." + day.Format(time.DateOnly)
}
