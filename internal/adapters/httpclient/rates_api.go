package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"worldrates/internal/domain"

	"github.com/shopspring/decimal"
)

// RatesAPIClient speaks the provider contract
// GET {base_url}/{date|latest}?from=BASE&to=T1,T2 and returns the rates map.
// All failure modes map to domain.ErrProviderUnavailable so the resolver
// can continue its fallback chain instead of aborting.
type RatesAPIClient struct {
	http    *http.Client
	baseURL string
}

type ratesResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

func (c *RatesAPIClient) GetRates(ctx context.Context, base string, targets []string, date time.Time) (map[string]decimal.Decimal, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	segment := "latest"
	if !date.IsZero() {
		segment = domain.RateDay(date).Format(time.DateOnly)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + segment

	query := u.Query()
	query.Set("from", base)
	if len(targets) > 0 {
		query.Set("to", strings.Join(targets, ","))
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for base %q: %w", base, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request for base %q failed: %w", base, domain.ErrProviderUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s for base %q: %w", resp.Status, base, domain.ErrProviderUnavailable)
	}

	var body ratesResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response for base %q: %w", base, domain.ErrProviderUnavailable)
	}

	if body.Rates == nil {
		body.Rates = map[string]decimal.Decimal{}
	}

	return body.Rates, nil
}

func NewRatesAPIClient(httpClient *http.Client, baseURL string) *RatesAPIClient {
	return &RatesAPIClient{http: httpClient, baseURL: baseURL}
}
