package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Fetcher retrieves exchange rates relative to a base currency from an
// upstream provider. Implementations perform no caching.
type Fetcher interface {
	Fetch(ctx context.Context, base string, currencies []string) (map[string]Rate, error)
}

// FetcherOptions configures the HTTP rate fetcher.
type FetcherOptions struct {
	APIKey         string
	APIURL         string
	HTTPClient     *http.Client
	Logger         zerolog.Logger
	RequestTimeout time.Duration
}

// HTTPFetcher calls a freecurrencyapi-compatible endpoint:
// GET {url}?apikey=...&base_currency=USD&currencies=USD,EUR,GBP,INR
// responding {"data":{"EUR":0.92,...}}.
type HTTPFetcher struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewHTTPFetcher constructs a fetcher with sane defaults and injected dependencies.
func NewHTTPFetcher(opts FetcherOptions) *HTTPFetcher {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &HTTPFetcher{
		apiKey:     strings.TrimSpace(opts.APIKey),
		apiURL:     strings.TrimRight(opts.APIURL, "/"),
		httpClient: httpClient,
		logger:     opts.Logger.With().Str("component", "currency_fetcher").Logger(),
	}
}

type ratesResponse struct {
	Data map[string]decimal.Decimal `json:"data"`
}

// Fetch issues one request to the provider and parses the rate map. Any
// transport error, non-2xx status, or parse failure comes back as an error;
// nothing panics past this boundary and no partial data is returned.
func (f *HTTPFetcher) Fetch(ctx context.Context, base string, currencies []string) (map[string]Rate, error) {
	if f.apiURL == "" {
		return nil, errors.New("currency: api url is not configured")
	}

	endpoint, err := url.Parse(f.apiURL)
	if err != nil {
		return nil, fmt.Errorf("currency: invalid api url: %w", err)
	}
	q := endpoint.Query()
	q.Set("apikey", f.apiKey)
	q.Set("base_currency", base)
	q.Set("currencies", strings.Join(currencies, ","))
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("currency: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("currency: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("currency: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.logger.Warn().Int("status", resp.StatusCode).Msg("rate provider returned non-success status")
		return nil, fmt.Errorf("currency: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded ratesResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("currency: decode response: %w", err)
	}
	if len(decoded.Data) == 0 {
		return nil, errors.New("currency: empty rate data")
	}

	rates := make(map[string]Rate, len(decoded.Data))
	for code, value := range decoded.Data {
		code = strings.ToUpper(code)
		rates[code] = Rate{Code: code, Value: value}
	}
	return rates, nil
}
