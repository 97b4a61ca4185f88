package file

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/flatstore/internal/metrics"
)

// DefaultCSVHeader задаёт заголовок CSV-файлов покупателей и товаров по умолчанию.
const DefaultCSVHeader = "id,name"

// Options задаёт необязательные параметры хранилища.
type Options struct {
	Logger    *log.Entry
	Metrics   *metrics.StoreMetrics
	StartID   int64
	CSVHeader string
}

// Option настраивает Store.
type Option func(*Options)

// WithLogger задаёт logger хранилища.
func WithLogger(logger *log.Entry) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithMetrics задаёт метрики хранилища.
func WithMetrics(m *metrics.StoreMetrics) Option {
	return func(opts *Options) {
		opts.Metrics = m
	}
}

// WithStartID переопределяет идентификатор, выдаваемый первым в пустом хранилище.
func WithStartID(id int64) Option {
	return func(opts *Options) {
		opts.StartID = id
	}
}

// WithCSVHeader задаёт строку заголовка для CSV-файлов.
func WithCSVHeader(header string) Option {
	return func(opts *Options) {
		opts.CSVHeader = header
	}
}
