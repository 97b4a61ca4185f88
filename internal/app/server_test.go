package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/flatstore/internal/domain"
	"github.com/vladislavdragonenkov/flatstore/internal/health"
	"github.com/vladislavdragonenkov/flatstore/internal/metrics"
)

func findFreePort(t *testing.T) int {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()
	return lis.Addr().(*net.TCPAddr).Port
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestOpsRouter_Endpoints(t *testing.T) {
	registry := prometheus.NewRegistry()
	storeMetrics := metrics.NewStoreMetricsWithRegisterer(registry)

	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	stores, err := OpenStores(cfg, loggerForTests(), storeMetrics)
	require.NoError(t, err)
	require.NoError(t, stores.Customers.Save(domain.Customer{ID: 100_000_000, Name: "Anna"}))

	healthHandler := health.NewHandler("v0.0.1")
	stores.RegisterCheckers(healthHandler)

	srv := httptest.NewServer(newOpsRouter(healthHandler, registry))
	defer srv.Close()

	code, body := get(t, srv.URL+"/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `flatstore_persist_total{kind="customer",result="ok"} 1`)
	assert.Contains(t, body, `flatstore_cached_entities{kind="customer"} 1`)

	code, body = get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, code)
	var response health.Response
	require.NoError(t, json.Unmarshal([]byte(body), &response))
	assert.Equal(t, health.StatusHealthy, response.Status)
	assert.Equal(t, "v0.0.1", response.Version)
	require.Contains(t, response.Checks, "customer")
	assert.Equal(t, 1, *response.Checks["customer"].Entities)

	code, body = get(t, srv.URL+"/livez")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)

	code, body = get(t, srv.URL+"/readyz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", body)

	resp, err := http.Post(srv.URL+"/healthz", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	port := findFreePort(t)

	cfg := DefaultConfig()
	cfg.Format = FormatMemory
	cfg.MetricsAddr = fmt.Sprintf("127.0.0.1:%d", port)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, cfg) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/livez", port))
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled), "unexpected error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestRun_InvalidAddress(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = FormatMemory
	cfg.MetricsAddr = "256.0.0.1:bad"

	err := Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ops server")
}
