package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeReady(t *testing.T, rec *httptest.ResponseRecorder) ReadyResponse {
	t.Helper()
	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestReadyBeforeSetReady(t *testing.T) {
	s := NewServer(Config{ServiceName: "signal-desk"})

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decodeReady(t, rec)
	assert.Equal(t, "not_ready", resp.Status)
	assert.Equal(t, "not_ready", resp.Checks["service"])
}

func TestReadyAfterSetReady(t *testing.T) {
	s := NewServer(Config{ServiceName: "signal-desk"})
	s.SetReady(true)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeReady(t, rec)
	assert.Equal(t, "ok", resp.Status)
}

func TestReadyFailingCheck(t *testing.T) {
	s := NewServer(Config{ServiceName: "signal-desk"})
	s.SetReady(true)
	s.AddCheck("scheduler", func(context.Context) error {
		return errors.New("scheduler not running")
	})

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decodeReady(t, rec)
	assert.Equal(t, "not_ready", resp.Status)
	assert.Contains(t, resp.Checks["scheduler"], "scheduler not running")
}

func TestHealthEndpoint(t *testing.T) {
	s := NewServer(Config{ServiceName: "signal-desk", Version: "1.2.3"})

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "signal-desk", resp.Service)
	assert.Equal(t, "1.2.3", resp.Version)
}
