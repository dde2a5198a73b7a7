package domain

import "errors"

var (
	// ErrRateNotFound means no rate exists anywhere in the lookup chain.
	// A normal outcome, distinct from a zero or unit rate.
	ErrRateNotFound = errors.New("exchange rate not found")

	// ErrProviderUnavailable covers network failures, non-2xx responses and
	// malformed payloads from the remote rate source.
	ErrProviderUnavailable = errors.New("rate provider unavailable")

	ErrCurrencyNotFound = errors.New("currency not found")
	ErrCurrencyDisabled = errors.New("currency disabled")
)
