package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/signal-desk/internal/models"
)

// RESTClient implements Source against a candle REST API
type RESTClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	enabled    bool
	logger     *log.Logger
}

// candleEntry represents a single candle from the provider. Prices arrive as
// strings to avoid float rounding on the wire.
type candleEntry struct {
	Timestamp string `json:"timestamp"`
	Open      string `json:"open"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Close     string `json:"close"`
	Volume    string `json:"volume"`
}

// candleResponse is the provider's envelope for a candle query
type candleResponse struct {
	Symbol   string        `json:"symbol"`
	Interval string        `json:"interval"`
	Candles  []candleEntry `json:"candles"`
}

// NewRESTClient creates a new candle API client
func NewRESTClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, enabled bool, logger *log.Logger) *RESTClient {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &RESTClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		enabled:    enabled,
		logger:     logger,
	}
}

// FetchBars retrieves up to limit bars of OHLCV history for a symbol
func (c *RESTClient) FetchBars(ctx context.Context, symbol, interval string, limit int) (models.PriceSeries, error) {
	if !c.enabled {
		return nil, NewMarketDataError("rest", ErrCodeNetworkError, "data source is disabled", nil)
	}

	endpoint := fmt.Sprintf("%s/candles?symbol=%s&interval=%s&limit=%d",
		c.baseURL, url.QueryEscape(symbol), url.QueryEscape(interval), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewMarketDataError("rest", ErrCodeNetworkError, "failed to create request", err)
	}

	if c.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewMarketDataError("rest", ErrCodeNetworkError, "failed to fetch candles", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, NewMarketDataError("rest", ErrCodeAuthenticationFailed, "invalid API key", ErrAuthenticationFailed)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewMarketDataError("rest", ErrCodeRateLimitExceeded, "rate limit exceeded", ErrRateLimitExceeded)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, NewMarketDataError("rest", ErrCodeNotFound, fmt.Sprintf("symbol %s not found", symbol), ErrSymbolNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, NewMarketDataError("rest", ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var envelope candleResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, NewMarketDataError("rest", ErrCodeInvalidData, "failed to parse response", err)
	}

	series := make(models.PriceSeries, 0, len(envelope.Candles))
	for _, entry := range envelope.Candles {
		bar, err := convertCandle(entry)
		if err != nil {
			c.logger.Printf("Skipping malformed candle for %s: %v", symbol, err)
			continue
		}
		series = append(series, bar)
	}

	// Providers occasionally return candles newest-first
	sort.Slice(series, func(i, j int) bool {
		return series[i].Timestamp.Before(series[j].Timestamp)
	})

	if err := series.Validate(); err != nil {
		return nil, NewMarketDataError("rest", ErrCodeInvalidData, "duplicate candle timestamps", err)
	}

	return series, nil
}

// Name returns the data source name
func (c *RESTClient) Name() string {
	return "rest"
}

// IsEnabled returns whether this data source is enabled
func (c *RESTClient) IsEnabled() bool {
	return c.enabled
}

// convertCandle converts a provider candle to a Bar
func convertCandle(entry candleEntry) (models.Bar, error) {
	ts, err := time.Parse(time.RFC3339, entry.Timestamp)
	if err != nil {
		return models.Bar{}, fmt.Errorf("invalid timestamp %q: %w", entry.Timestamp, err)
	}

	open, err := parsePrice(entry.Open)
	if err != nil {
		return models.Bar{}, fmt.Errorf("open: %w", err)
	}
	high, err := parsePrice(entry.High)
	if err != nil {
		return models.Bar{}, fmt.Errorf("high: %w", err)
	}
	low, err := parsePrice(entry.Low)
	if err != nil {
		return models.Bar{}, fmt.Errorf("low: %w", err)
	}
	closeP, err := parsePrice(entry.Close)
	if err != nil {
		return models.Bar{}, fmt.Errorf("close: %w", err)
	}
	volume, err := parsePrice(entry.Volume)
	if err != nil {
		return models.Bar{}, fmt.Errorf("volume: %w", err)
	}

	return models.Bar{
		Timestamp: ts,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     closeP,
		Volume:    volume,
	}, nil
}

// parsePrice parses a string price field via decimal to keep wire precision
func parsePrice(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: %w", s, err)
	}
	return d.InexactFloat64(), nil
}
