package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"Storefront/internal/gateway"
	"Storefront/pkg/config"
	"Storefront/pkg/kit"
)

func main() {
	service := "gateway"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config failed", zap.Error(err))
	}

	deps := gateway.Deps{
		CatalogURL:     cfg.Gateway.CatalogURL,
		CheckoutURL:    cfg.Gateway.CheckoutURL,
		CheckoutLimit:  cfg.RateLimit.CheckoutLimit,
		CheckoutWindow: cfg.RateLimit.CheckoutWindow,
	}

	reg := prometheus.NewRegistry()
	h, err := gateway.NewHandler(deps, gateway.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	})
	if err != nil {
		log.Fatal("init gateway handler failed", zap.Error(err))
	}

	if err := kit.RunHTTPServer(":"+cfg.Gateway.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
