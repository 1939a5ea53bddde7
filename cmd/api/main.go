package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mvaldesoto/storefront-backend/api/routes"
	"github.com/mvaldesoto/storefront-backend/internal/catalog"
	"github.com/mvaldesoto/storefront-backend/internal/checkout"
	"github.com/mvaldesoto/storefront-backend/internal/payment"
	"github.com/mvaldesoto/storefront-backend/internal/shopping"
	"github.com/mvaldesoto/storefront-backend/pkg/config"
	"github.com/mvaldesoto/storefront-backend/pkg/kvstore"
	"github.com/mvaldesoto/storefront-backend/pkg/logger"
	"github.com/mvaldesoto/storefront-backend/pkg/metrics"
)

const shutdownGrace = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	kv, err := kvstore.New(context.Background(), cfg.Storage, cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to open storage", err)
		os.Exit(1)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logg.Error(context.Background(), "error closing storage", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	shoppingMetrics := metrics.NewShoppingMetrics(registry)

	provider, err := catalog.NewSeededProvider()
	if err != nil {
		logg.Error(context.Background(), "failed to build catalog", err)
		os.Exit(1)
	}

	store, err := shopping.NewStore(context.Background(), shopping.Params{
		KV:      kv,
		Logger:  logg,
		Metrics: shoppingMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to build shopping store", err)
		os.Exit(1)
	}

	gateway := payment.NewConfigGateway(cfg.Gateway, cfg.Checkout.Currency)
	checkoutService, err := checkout.NewService(store, gateway, cfg.Checkout, logg, shoppingMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to build checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Storage.Backend,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			KV:              kv,
			Catalog:         provider,
			Store:           store,
			CheckoutService: checkoutService,
			Registry:        registry,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stop:
		logg.Info(ctx, "shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "error during server shutdown", err)
		}
		if err := store.Flush(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "error flushing shopping state", err)
		}
	}
}
