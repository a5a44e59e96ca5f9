package marketdata

import (
	"context"
	"errors"

	"github.com/yourusername/signal-desk/internal/models"
)

// Source defines the interface for fetching OHLCV history from external providers
type Source interface {
	// FetchBars retrieves up to limit bars of history for a symbol
	FetchBars(ctx context.Context, symbol, interval string, limit int) (models.PriceSeries, error)

	// Name returns the name of the data source
	Name() string

	// IsEnabled returns whether this data source is currently enabled
	IsEnabled() bool
}

// MarketDataError represents errors from market data operations
type MarketDataError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e MarketDataError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e MarketDataError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeUnknown              = "unknown"
)

// Error constructors
var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrSymbolNotFound       = errors.New("symbol not found")
	ErrInvalidData          = errors.New("invalid data format")
	ErrNetworkError         = errors.New("network error")
	ErrServerError          = errors.New("server error")
)

// NewMarketDataError creates a new market data error
func NewMarketDataError(source, code, message string, err error) MarketDataError {
	return MarketDataError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
