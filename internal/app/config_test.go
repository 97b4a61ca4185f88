package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/flatstore/internal/domain"
	"github.com/vladislavdragonenkov/flatstore/internal/storage/file/codec"
)

func TestDefaultConfig_Values(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, "id,name", cfg.CustomersCSVHeader)
	assert.Equal(t, "id,name", cfg.ProductsCSVHeader)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsMatchDefaultConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("FLATSTORE_DATA_DIR", "/var/lib/flatstore")
	t.Setenv("FLATSTORE_FORMAT", "xml")
	t.Setenv("FLATSTORE_LOG_LEVEL", "debug")
	t.Setenv("FLATSTORE_PRODUCTS_FILE", "catalog.xml")
	t.Setenv("FLATSTORE_SHUTDOWN_TIMEOUT", "2s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/flatstore", cfg.DataDir)
	assert.Equal(t, log.DebugLevel, cfg.Level())
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/var/lib/flatstore/catalog.xml", cfg.PathFor(domain.KindProduct))
	assert.Equal(t, "/var/lib/flatstore/orders.xml", cfg.PathFor(domain.KindOrder))
}

func TestLoadConfig_EnvFile(t *testing.T) {
	// godotenv пишет прямо в окружение процесса; t.Setenv вернёт его назад.
	t.Setenv("FLATSTORE_CUSTOMERS_CSV_HEADER", "")
	require.NoError(t, os.Unsetenv("FLATSTORE_CUSTOMERS_CSV_HEADER"))
	t.Setenv("FLATSTORE_FORMAT", "memory")

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "FLATSTORE_CUSTOMERS_CSV_HEADER=customer_id,customer_name\nFLATSTORE_FORMAT=csv\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, "customer_id,customer_name", cfg.CustomersCSVHeader)
	assert.Equal(t, FormatMemory, cfg.Format, "real environment wins over .env")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "unknown format", mutate: func(c *Config) { c.Format = "yaml" }},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }},
		{name: "no data dir", mutate: func(c *Config) { c.DataDir = "" }},
		{name: "zero shutdown timeout", mutate: func(c *Config) { c.ShutdownTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	memoryCfg := DefaultConfig()
	memoryCfg.Format = FormatMemory
	memoryCfg.DataDir = ""
	assert.NoError(t, memoryCfg.Validate())
}

func TestConfig_FormatFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = "csv"

	assert.Equal(t, codec.FormatJSON, cfg.FormatFor(domain.KindOrder))
	assert.Equal(t, codec.FormatJSON, cfg.FormatFor(domain.KindBasket))
	assert.Equal(t, codec.FormatCSV, cfg.FormatFor(domain.KindCustomer))
	assert.Equal(t, codec.FormatCSV, cfg.FormatFor(domain.KindProduct))

	assert.Equal(t, filepath.Join("data", "baskets.json"), cfg.PathFor(domain.KindBasket))
	assert.Equal(t, filepath.Join("data", "customers.csv"), cfg.PathFor(domain.KindCustomer))
}
