package marketdata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestHTTPClient() *RateLimitedHTTPClient {
	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 1000
	return NewRateLimitedHTTPClient(cfg, nil)
}

const candlePayload = `{
	"symbol": "BTC-USD",
	"interval": "1d",
	"candles": [
		{"timestamp": "2024-01-02T00:00:00Z", "open": "101", "high": "103", "low": "100", "close": "102.5", "volume": "1500"},
		{"timestamp": "2024-01-01T00:00:00Z", "open": "100", "high": "102", "low": "99", "close": "101", "volume": "1200"}
	]
}`

// TestFetchBarsSuccess tests fetching and ordering of candles
func TestFetchBarsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/candles" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("symbol"); got != "BTC-USD" {
			t.Errorf("expected symbol query BTC-USD, got %s", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer auth header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, candlePayload)
	}))
	defer server.Close()

	client := NewRESTClient(newTestHTTPClient(), server.URL, "test-key", true, nil)

	series, err := client.FetchBars(context.Background(), "BTC-USD", "1d", 200)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(series))
	}

	// Response arrives newest-first and must be sorted ascending
	if !series[0].Timestamp.Before(series[1].Timestamp) {
		t.Error("expected bars sorted by ascending timestamp")
	}
	if series[1].Close != 102.5 {
		t.Errorf("expected close 102.5, got %v", series[1].Close)
	}
	if series[0].Volume != 1200 {
		t.Errorf("expected volume 1200, got %v", series[0].Volume)
	}
}

// TestFetchBarsSkipsMalformedCandles tests that bad entries are dropped
func TestFetchBarsSkipsMalformedCandles(t *testing.T) {
	payload := `{
		"symbol": "BTC-USD",
		"interval": "1d",
		"candles": [
			{"timestamp": "2024-01-01T00:00:00Z", "open": "100", "high": "102", "low": "99", "close": "101", "volume": "1200"},
			{"timestamp": "not-a-time", "open": "x", "high": "x", "low": "x", "close": "x", "volume": "x"}
		]
	}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	}))
	defer server.Close()

	client := NewRESTClient(newTestHTTPClient(), server.URL, "", true, nil)

	series, err := client.FetchBars(context.Background(), "BTC-USD", "1d", 10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("expected 1 valid bar, got %d", len(series))
	}
}

// TestFetchBarsAuthenticationFailure tests 401 handling
func TestFetchBarsAuthenticationFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewRESTClient(newTestHTTPClient(), server.URL, "bad-key", true, nil)

	_, err := client.FetchBars(context.Background(), "BTC-USD", "1d", 10)
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("expected ErrAuthenticationFailed, got %v", err)
	}
}

// TestFetchBarsSymbolNotFound tests 404 handling
func TestFetchBarsSymbolNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewRESTClient(newTestHTTPClient(), server.URL, "", true, nil)

	_, err := client.FetchBars(context.Background(), "NOPE", "1d", 10)
	if !errors.Is(err, ErrSymbolNotFound) {
		t.Errorf("expected ErrSymbolNotFound, got %v", err)
	}
}

// TestFetchBarsDisabledSource tests the disabled source guard
func TestFetchBarsDisabledSource(t *testing.T) {
	client := NewRESTClient(newTestHTTPClient(), "http://localhost:0", "", false, nil)

	_, err := client.FetchBars(context.Background(), "BTC-USD", "1d", 10)
	if err == nil {
		t.Fatal("expected error for disabled source")
	}
}

// TestCachedSourceReadThrough tests the caching wrapper
func TestCachedSourceReadThrough(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, candlePayload)
	}))
	defer server.Close()

	client := NewRESTClient(newTestHTTPClient(), server.URL, "", true, nil)
	cached := NewCachedSource(client, NewSeriesCache(time.Minute))

	for i := 0; i < 3; i++ {
		series, err := cached.FetchBars(context.Background(), "BTC-USD", "1d", 200)
		if err != nil {
			t.Fatalf("fetch %d: expected no error, got %v", i, err)
		}
		if len(series) != 2 {
			t.Fatalf("fetch %d: expected 2 bars, got %d", i, len(series))
		}
	}

	if requests != 1 {
		t.Errorf("expected 1 upstream request, got %d", requests)
	}
}

// TestSeriesCacheStats tests hit and miss accounting
func TestSeriesCacheStats(t *testing.T) {
	seriesCache := NewSeriesCache(time.Minute)
	key := CacheKey{Symbol: "ETH-USD", Interval: "1h", Limit: 100}

	if _, found := seriesCache.Get(key); found {
		t.Fatal("expected miss on empty cache")
	}

	seriesCache.Set(key, nil)

	hits, misses, _ := seriesCache.Stats()
	if hits != 0 || misses != 1 {
		t.Errorf("expected 0 hits 1 miss, got %d/%d", hits, misses)
	}
}

// TestSeriesCacheInvalidate tests per-symbol invalidation
func TestSeriesCacheInvalidate(t *testing.T) {
	seriesCache := NewSeriesCache(time.Minute)
	btc := CacheKey{Symbol: "BTC-USD", Interval: "1d", Limit: 10}
	eth := CacheKey{Symbol: "ETH-USD", Interval: "1d", Limit: 10}

	seriesCache.Set(btc, nil)
	seriesCache.Set(eth, nil)

	seriesCache.Invalidate("BTC-USD")

	if seriesCache.ItemCount() != 1 {
		t.Errorf("expected 1 remaining item, got %d", seriesCache.ItemCount())
	}
}
