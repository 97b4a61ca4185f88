// Package app собирает сервис хранилищ: конфигурацию, хранилища и служебный HTTP-сервер.
package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/flatstore/internal/health"
	"github.com/vladislavdragonenkov/flatstore/internal/metrics"
	"github.com/vladislavdragonenkov/flatstore/internal/version"
)

// Run открывает хранилища и обслуживает служебные эндпоинты до отмены ctx.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	stores, err := OpenStores(cfg, logger, metrics.NewStoreMetrics())
	if err != nil {
		return err
	}
	logger.WithFields(log.Fields{
		"orders_next_id":    stores.Orders.NextAvailableID(),
		"baskets_next_id":   stores.Baskets.NextAvailableID(),
		"customers_next_id": stores.Customers.NextAvailableID(),
		"products_next_id":  stores.Products.NextAvailableID(),
	}).Info("stores opened")

	healthHandler := health.NewHandler(version.GetVersion())
	stores.RegisterCheckers(healthHandler)

	errCh := make(chan error, 1)
	srv := startOpsServer(cfg.MetricsAddr, newOpsRouter(healthHandler, prometheus.DefaultGatherer), logger, errCh)

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем ops сервер")
		shutdownHTTP(srv, cfg.ShutdownTimeout, logger)
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("ops server: %w", err)
	}
}
