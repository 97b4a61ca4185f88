package app

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/flatstore/internal/domain"
	"github.com/vladislavdragonenkov/flatstore/internal/storage/file"
	"github.com/vladislavdragonenkov/flatstore/internal/storage/file/codec"
)

// FormatMemory включает хранилища без файлов: данные живут до остановки процесса.
const FormatMemory = "memory"

// DefaultEnvFile задаёт необязательный файл с переменными окружения.
const DefaultEnvFile = ".env"

// Config описывает настройки запуска сервиса хранилищ.
type Config struct {
	DataDir     string `env:"FLATSTORE_DATA_DIR"     envDefault:"data"`
	Format      string `env:"FLATSTORE_FORMAT"       envDefault:"json"`
	MetricsAddr string `env:"FLATSTORE_METRICS_ADDR" envDefault:":9090"`
	LogLevel    string `env:"FLATSTORE_LOG_LEVEL"    envDefault:"info"`

	CustomersCSVHeader string `env:"FLATSTORE_CUSTOMERS_CSV_HEADER" envDefault:"id,name"`
	ProductsCSVHeader  string `env:"FLATSTORE_PRODUCTS_CSV_HEADER"  envDefault:"id,name"`

	// Имена файлов; пустое значение означает "<kind>s.<format>".
	OrdersFile    string `env:"FLATSTORE_ORDERS_FILE"`
	BasketsFile   string `env:"FLATSTORE_BASKETS_FILE"`
	CustomersFile string `env:"FLATSTORE_CUSTOMERS_FILE"`
	ProductsFile  string `env:"FLATSTORE_PRODUCTS_FILE"`

	ShutdownTimeout time.Duration `env:"FLATSTORE_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// DefaultConfig возвращает настройки по умолчанию: JSON-файлы в ./data и метрики на :9090.
func DefaultConfig() Config {
	return Config{
		DataDir:            "data",
		Format:             string(codec.FormatJSON),
		MetricsAddr:        ":9090",
		LogLevel:           "info",
		CustomersCSVHeader: file.DefaultCSVHeader,
		ProductsCSVHeader:  file.DefaultCSVHeader,
		ShutdownTimeout:    5 * time.Second,
	}
}

// LoadConfig читает необязательные .env-файлы и переменные окружения.
// Отсутствующий .env ошибкой не считается.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, name := range envFiles {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", name, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет значения, которые env не умеет проверить сам.
func (c Config) Validate() error {
	formats := []string{string(codec.FormatJSON), string(codec.FormatXML), string(codec.FormatCSV), FormatMemory}
	if !slices.Contains(formats, c.Format) {
		return fmt.Errorf("FLATSTORE_FORMAT: unknown format %q", c.Format)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("FLATSTORE_LOG_LEVEL: %w", err)
	}
	if c.Format != FormatMemory && c.DataDir == "" {
		return errors.New("FLATSTORE_DATA_DIR is required for file storage")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("FLATSTORE_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// Level возвращает уровень логирования; некорректное значение даёт info.
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// FormatFor возвращает формат файла для вида сущности. Заказы и корзины
// не представимы в CSV и при FLATSTORE_FORMAT=csv хранятся в JSON.
func (c Config) FormatFor(kind domain.Kind) codec.Format {
	format := codec.Format(c.Format)
	if !file.Supports(kind, format) {
		return codec.FormatJSON
	}
	return format
}

// PathFor возвращает путь к файлу данных вида сущности.
func (c Config) PathFor(kind domain.Kind) string {
	name := map[domain.Kind]string{
		domain.KindOrder:    c.OrdersFile,
		domain.KindBasket:   c.BasketsFile,
		domain.KindCustomer: c.CustomersFile,
		domain.KindProduct:  c.ProductsFile,
	}[kind]
	if name == "" {
		name = fmt.Sprintf("%ss.%s", kind, c.FormatFor(kind))
	}
	return filepath.Join(c.DataDir, name)
}
