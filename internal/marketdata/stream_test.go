package marketdata

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yourusername/signal-desk/internal/metrics"
)

// TestConnectWithRetryCountsReconnectAttempts tests that each retry after the
// first connect attempt is recorded on the reconnects counter
func TestConnectWithRetryCountsReconnectAttempts(t *testing.T) {
	client := NewStreamClient("ws://127.0.0.1:1", "test-key", nil)
	client.reconnectConfig = ReconnectConfig{
		MaxRetries:        2,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        2 * time.Millisecond,
		BackoffMultiplier: 1.5,
	}

	before := testutil.ToFloat64(metrics.StreamReconnectsTotal)

	if err := client.ConnectWithRetry(context.Background()); err == nil {
		t.Fatal("expected connection to an unreachable endpoint to fail")
	}

	// 3 attempts total, the 2 after the first are reconnects
	if got := testutil.ToFloat64(metrics.StreamReconnectsTotal) - before; got != 2 {
		t.Fatalf("expected 2 recorded reconnects, got %v", got)
	}
}

// TestConnectWithRetryHonorsContext tests that cancellation stops the retry
// loop between attempts
func TestConnectWithRetryHonorsContext(t *testing.T) {
	client := NewStreamClient("ws://127.0.0.1:1", "test-key", nil)
	client.reconnectConfig = ReconnectConfig{
		MaxRetries:        50,
		InitialBackoff:    10 * time.Millisecond,
		MaxBackoff:        10 * time.Millisecond,
		BackoffMultiplier: 1.0,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()

	err := client.ConnectWithRetry(ctx)
	if err != context.DeadlineExceeded {
		t.Fatalf("expected context deadline error, got %v", err)
	}
}
