package app

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/flatstore/internal/domain"
	"github.com/vladislavdragonenkov/flatstore/internal/health"
	"github.com/vladislavdragonenkov/flatstore/internal/metrics"
	"github.com/vladislavdragonenkov/flatstore/internal/storage/file"
	"github.com/vladislavdragonenkov/flatstore/internal/storage/memory"
)

// Stores объединяет хранилища всех видов сущностей.
type Stores struct {
	Orders    domain.Repository[domain.Order]
	Baskets   domain.Repository[domain.Basket]
	Customers domain.Repository[domain.Customer]
	Products  domain.Repository[domain.Product]
}

// OpenStores создаёт хранилища согласно конфигурации. Файлы читаются сразу.
func OpenStores(cfg Config, logger *log.Entry, storeMetrics *metrics.StoreMetrics) (*Stores, error) {
	if cfg.Format == FormatMemory {
		logger.Info("using in-memory stores, data will not survive restart")
		return &Stores{
			Orders:    memory.NewRepository[domain.Order](domain.KindOrder),
			Baskets:   memory.NewRepository[domain.Basket](domain.KindBasket),
			Customers: memory.NewRepository[domain.Customer](domain.KindCustomer),
			Products:  memory.NewRepository[domain.Product](domain.KindProduct),
		}, nil
	}

	options := func(header string) []file.Option {
		return []file.Option{
			file.WithLogger(logger.WithField("component", "file-store")),
			file.WithMetrics(storeMetrics),
			file.WithCSVHeader(header),
		}
	}

	for _, kind := range domain.Kinds() {
		if string(cfg.FormatFor(kind)) != cfg.Format {
			logger.WithFields(log.Fields{
				"kind":   kind,
				"format": cfg.FormatFor(kind),
			}).Info("kind is not representable in configured format, falling back")
		}
	}

	var (
		stores Stores
		err    error
	)
	if stores.Orders, err = file.OpenOrders(cfg.FormatFor(domain.KindOrder), cfg.PathFor(domain.KindOrder), options("")...); err != nil {
		return nil, fmt.Errorf("open orders: %w", err)
	}
	if stores.Baskets, err = file.OpenBaskets(cfg.FormatFor(domain.KindBasket), cfg.PathFor(domain.KindBasket), options("")...); err != nil {
		return nil, fmt.Errorf("open baskets: %w", err)
	}
	if stores.Customers, err = file.OpenCustomers(cfg.FormatFor(domain.KindCustomer), cfg.PathFor(domain.KindCustomer), options(cfg.CustomersCSVHeader)...); err != nil {
		return nil, fmt.Errorf("open customers: %w", err)
	}
	if stores.Products, err = file.OpenProducts(cfg.FormatFor(domain.KindProduct), cfg.PathFor(domain.KindProduct), options(cfg.ProductsCSVHeader)...); err != nil {
		return nil, fmt.Errorf("open products: %w", err)
	}
	return &stores, nil
}

// RegisterCheckers добавляет проверки для хранилищ, которые пишут на диск.
func (s *Stores) RegisterCheckers(handler *health.Handler) {
	for _, repo := range []any{s.Orders, s.Baskets, s.Customers, s.Products} {
		if state, ok := repo.(health.PersistState); ok {
			handler.RegisterChecker(string(state.Kind()), health.NewStoreChecker(state))
		}
	}
}
