package app

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/flatstore/internal/domain"
	"github.com/vladislavdragonenkov/flatstore/internal/health"
	"github.com/vladislavdragonenkov/flatstore/internal/metrics"
)

func loggerForTests() *log.Entry {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return log.NewEntry(logger)
}

func openForTests(t *testing.T, cfg Config) *Stores {
	t.Helper()
	stores, err := OpenStores(cfg, loggerForTests(), metrics.NewStoreMetricsWithRegisterer(prometheus.NewRegistry()))
	require.NoError(t, err)
	return stores
}

func TestOpenStores_CSVFallsBackToJSONForDocuments(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Format = "csv"
	cfg.ProductsCSVHeader = "product_id,product_name"

	stores := openForTests(t, cfg)

	require.NoError(t, stores.Products.Save(domain.Product{ID: 100_000_000, Name: "Tea 500g"}))
	require.NoError(t, stores.Orders.Save(domain.Order{
		ID:         stores.Orders.NextAvailableID(),
		CustomerID: 100_000_000,
		CreatedAt:  time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		Items:      domain.Items{100_000_000: 2},
	}))

	products, err := os.ReadFile(filepath.Join(cfg.DataDir, "products.csv"))
	require.NoError(t, err)
	assert.Equal(t, "product_id,product_name\n100000000,Tea 500g\n", string(products))

	_, err = os.Stat(filepath.Join(cfg.DataDir, "orders.json"))
	require.NoError(t, err)

	reopened := openForTests(t, cfg)
	order, err := reopened.Orders.Read(1000)
	require.NoError(t, err)
	assert.Equal(t, int32(2), order.Items.Qty(100_000_000))
}

func TestOpenStores_Memory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = FormatMemory
	cfg.DataDir = ""

	stores := openForTests(t, cfg)
	require.NoError(t, stores.Customers.Save(domain.Customer{ID: 100_000_000, Name: "Anna"}))
	assert.Equal(t, int64(100_000_001), stores.Customers.NextAvailableID())

	handler := health.NewHandler("test")
	stores.RegisterCheckers(handler)
	// in-memory хранилища не пишут на диск, проверок нет
	_, overall := handler.Checks()
	assert.Equal(t, health.StatusHealthy, overall)
}

func TestStores_RegisterCheckers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Format = "xml"

	stores := openForTests(t, cfg)
	handler := health.NewHandler("test")
	stores.RegisterCheckers(handler)

	checks, overall := handler.Checks()
	assert.Equal(t, health.StatusHealthy, overall)
	assert.Len(t, checks, len(domain.Kinds()))
	for _, kind := range domain.Kinds() {
		assert.Contains(t, checks, string(kind))
	}
}
