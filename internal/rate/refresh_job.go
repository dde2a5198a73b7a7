package rate

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// RateFetcher is the slice of the resolver the refresh job needs.
type RateFetcher interface {
	FetchAndStoreRates(ctx context.Context, base string, targets []string, date time.Time) (map[string]decimal.Decimal, error)
	BaseCurrency() string
}

// RefreshRates fetches today's rates for the system base currency against
// the configured targets and stores them. Returns how many targets the
// provider actually fulfilled; zero with a nil error means the provider
// answered but had nothing for us.
func RefreshRates(ctx context.Context, execID string, fetcher RateFetcher, targets []string) (int, error) {
	base := fetcher.BaseCurrency()
	logrus.Infof("Refreshing %d target rates for base %s; execID: %s", len(targets), base, execID)

	rates, err := fetcher.FetchAndStoreRates(ctx, base, targets, time.Time{})
	if err != nil {
		return 0, fmt.Errorf("refresh rates for %s: %w", base, err)
	}

	fulfilled := 0
	for target, value := range rates {
		if target == base || !value.IsPositive() {
			continue
		}
		fulfilled++
	}

	if len(targets) > 0 && fulfilled < len(targets) {
		logrus.Warnf("Provider fulfilled %d of %d requested targets; execID: %s", fulfilled, len(targets), execID)
	} else {
		logrus.Infof("%d rates refreshed; execID: %s", fulfilled, execID)
	}
	return fulfilled, nil
}
