package postgres

import (
	"context"
	"errors"
	"fmt"

	"worldrates/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CurrencyDirectory struct {
	pool *pgxpool.Pool
}

func (d *CurrencyDirectory) GetByCode(ctx context.Context, code string) (domain.Currency, error) {
	const q = `
        select code, name, symbol, decimal_places, enabled
        from currencies
        where code = $1;
    `

	var currency domain.Currency
	if err := d.pool.QueryRow(ctx, q, code).Scan(
		&currency.Code,
		&currency.Name,
		&currency.Symbol,
		&currency.DecimalPlaces,
		&currency.Enabled,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Currency{}, domain.ErrCurrencyNotFound
		}
		return domain.Currency{}, fmt.Errorf("failed to select currency %q: %w", code, err)
	}

	return currency, nil
}

func (d *CurrencyDirectory) ListEnabled(ctx context.Context) ([]domain.Currency, error) {
	const q = `
        select code, name, symbol, decimal_places, enabled
        from currencies
        where enabled
        order by code;
    `

	rows, err := d.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query enabled currencies: %w", err)
	}
	defer rows.Close()

	currencies := make([]domain.Currency, 0, 64)
	for rows.Next() {
		var c domain.Currency
		if err = rows.Scan(&c.Code, &c.Name, &c.Symbol, &c.DecimalPlaces, &c.Enabled); err != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", err)
		}
		currencies = append(currencies, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currencies: %w", err)
	}
	return currencies, nil
}

func NewCurrencyDirectory(pool *pgxpool.Pool) *CurrencyDirectory {
	return &CurrencyDirectory{pool: pool}
}
