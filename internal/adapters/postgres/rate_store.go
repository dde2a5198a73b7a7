package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"worldrates/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RateStore struct {
	pool *pgxpool.Pool
}

func (s *RateStore) Get(ctx context.Context, base, target string, date time.Time) (domain.ExchangeRate, error) {
	const q = `
        select base_currency_code, target_currency_code, rate, rate_date, created_at
        from exchange_rates
        where base_currency_code = $1 and target_currency_code = $2 and rate_date = $3;
    `

	var rate domain.ExchangeRate
	if err := s.pool.QueryRow(ctx, q, base, target, domain.RateDay(date)).Scan(
		&rate.BaseCurrencyCode,
		&rate.TargetCurrencyCode,
		&rate.Rate,
		&rate.RateDate,
		&rate.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ExchangeRate{}, domain.ErrRateNotFound
		}
		return domain.ExchangeRate{}, fmt.Errorf("failed to select rate for %q/%q: %w", base, target, err)
	}

	return rate, nil
}

// Upsert inserts or replaces the rate for its natural-key triple. Last
// write wins under concurrent resolvers; values for a fixed triple are
// idempotent once fetched from a given provider for a given date.
func (s *RateStore) Upsert(ctx context.Context, rate domain.ExchangeRate) error {
	const q = `
        insert into exchange_rates (base_currency_code, target_currency_code, rate, rate_date)
        values ($1, $2, $3, $4)
        on conflict (base_currency_code, target_currency_code, rate_date)
        do update set rate = excluded.rate;
    `

	_, err := s.pool.Exec(ctx, q,
		rate.BaseCurrencyCode,
		rate.TargetCurrencyCode,
		rate.Rate,
		domain.RateDay(rate.RateDate),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert rate for %q/%q: %w", rate.BaseCurrencyCode, rate.TargetCurrencyCode, err)
	}
	return nil
}

func (s *RateStore) ListTargets(ctx context.Context, base string, date time.Time) ([]string, error) {
	const q = `
        select distinct er.target_currency_code
        from exchange_rates er
        join currencies c on c.code = er.target_currency_code and c.enabled
        where er.base_currency_code = $1 and er.rate_date = $2
        order by er.target_currency_code;
    `

	rows, err := s.pool.Query(ctx, q, base, domain.RateDay(date))
	if err != nil {
		return nil, fmt.Errorf("failed to query targets for %q: %w", base, err)
	}
	defer rows.Close()

	targets := make([]string, 0, 32)
	for rows.Next() {
		var code string
		if err = rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan target code: %w", err)
		}
		targets = append(targets, code)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating target codes: %w", err)
	}
	return targets, nil
}

func NewRateStore(pool *pgxpool.Pool) *RateStore {
	return &RateStore{pool: pool}
}
