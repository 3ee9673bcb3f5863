package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"Storefront/internal/catalog"
	"Storefront/internal/checkout"
	"Storefront/pkg/config"
	"Storefront/pkg/kit"
)

func main() {
	service := "checkout"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config failed", zap.Error(err))
	}

	s := &checkout.Server{
		Catalog: catalog.NewClient(cfg.Checkout.CatalogURL),
		Log:     log,
	}

	reg := prometheus.NewRegistry()
	h := checkout.NewHandler(s, checkout.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	})

	if err := kit.RunHTTPServer(":"+cfg.Checkout.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
