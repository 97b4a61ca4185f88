package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты перезаписи файла.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Стадии, на которых маппер может отбраковать запись.
const (
	StageLoad    = "load"
	StagePersist = "persist"
)

// StoreMetrics содержит метрики файловых хранилищ сущностей.
type StoreMetrics struct {
	// Счётчики загрузки
	recordsLoaded *prometheus.CounterVec
	recordsReject *prometheus.CounterVec
	loadFailures  *prometheus.CounterVec

	// Перезапись файла
	persistTotal    *prometheus.CounterVec
	persistDuration *prometheus.HistogramVec

	// Gauge для размера кэша
	cachedEntities *prometheus.GaugeVec
}

// NewStoreMetrics создаёт метрики в реестре по умолчанию.
func NewStoreMetrics() *StoreMetrics {
	return NewStoreMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewStoreMetricsWithRegisterer создаёт метрики в указанном реестре;
// повторная регистрация возвращает уже зарегистрированные коллекторы.
func NewStoreMetricsWithRegisterer(registerer prometheus.Registerer) *StoreMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &StoreMetrics{
		recordsLoaded: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "flatstore_records_loaded_total",
			Help: "Total number of records accepted while loading a data file",
		}, []string{"kind"}),
		recordsReject: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "flatstore_records_rejected_total",
			Help: "Total number of records or entities dropped by the mapper",
		}, []string{"kind", "stage"}),
		loadFailures: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "flatstore_load_failures_total",
			Help: "Total number of data files that could not be decoded at startup",
		}, []string{"kind"}),
		persistTotal: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "flatstore_persist_total",
			Help: "Total number of full-file rewrites grouped by result",
		}, []string{"kind", "result"}),
		persistDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "flatstore_persist_duration_seconds",
			Help:    "Duration of full-file rewrites in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"kind"}),
		cachedEntities: registerGaugeVec(registerer, prometheus.GaugeOpts{
			Name: "flatstore_cached_entities",
			Help: "Number of entities currently held in the store cache",
		}, []string{"kind"}),
	}
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGaugeVec(registerer prometheus.Registerer, opts prometheus.GaugeOpts, labels []string) *prometheus.GaugeVec {
	collector := prometheus.NewGaugeVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.GaugeVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordLoaded учитывает принятые при загрузке записи.
func (m *StoreMetrics) RecordLoaded(kind string, n int) {
	m.recordsLoaded.WithLabelValues(kind).Add(float64(n))
}

// RecordRejected учитывает отбракованные маппером записи или сущности.
func (m *StoreMetrics) RecordRejected(kind, stage string, n int) {
	m.recordsReject.WithLabelValues(kind, stage).Add(float64(n))
}

// RecordLoadFailure учитывает файл, который не удалось прочитать при старте.
func (m *StoreMetrics) RecordLoadFailure(kind string) {
	m.loadFailures.WithLabelValues(kind).Inc()
}

// RecordPersist учитывает перезапись файла и её длительность.
func (m *StoreMetrics) RecordPersist(kind string, duration time.Duration, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.persistTotal.WithLabelValues(kind, result).Inc()
	m.persistDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// SetCached выставляет текущий размер кэша.
func (m *StoreMetrics) SetCached(kind string, n int) {
	m.cachedEntities.WithLabelValues(kind).Set(float64(n))
}
