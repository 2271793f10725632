package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-checkout/api/controllers"
	"github.com/angelmondragon/storefront-checkout/api/routes"
	"github.com/angelmondragon/storefront-checkout/internal/cart"
	"github.com/angelmondragon/storefront-checkout/internal/checkout"
	"github.com/angelmondragon/storefront-checkout/internal/customers"
	"github.com/angelmondragon/storefront-checkout/internal/extensions"
	"github.com/angelmondragon/storefront-checkout/internal/gateways"
	"github.com/angelmondragon/storefront-checkout/internal/orders"
	"github.com/angelmondragon/storefront-checkout/internal/session"
	"github.com/angelmondragon/storefront-checkout/pkg/config"
	"github.com/angelmondragon/storefront-checkout/pkg/db"
	"github.com/angelmondragon/storefront-checkout/pkg/enums"
	"github.com/angelmondragon/storefront-checkout/pkg/env"
	"github.com/angelmondragon/storefront-checkout/pkg/instance"
	"github.com/angelmondragon/storefront-checkout/pkg/logger"
	"github.com/angelmondragon/storefront-checkout/pkg/metrics"
	"github.com/angelmondragon/storefront-checkout/pkg/migrate"
	"github.com/angelmondragon/storefront-checkout/pkg/redis"
)

const defaultShutdownTimeout = 15 * time.Second

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

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, redisClient.Close())
	}()

	currency, err := enums.ParseCurrency(cfg.Checkout.Currency)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	orderStore, err := orders.NewStore(orders.NewRepository(dbClient.DB()), cfg.Checkout.BaseURL)
	if err != nil {
		return err
	}
	gatewayRegistry := gateways.NewRegistry(gateways.NewRepository(dbClient.DB()))

	hooks := extensions.New(logg,
		extensions.WithCartChecker(cart.NewItemValidator()),
		extensions.WithReceiptHandler("bacs", func(ctx context.Context, orderID uint64) {
			logg.Info(logg.WithOrderID(ctx, orderID), "checkout.receipt.bank_transfer")
		}),
	)

	classifier, err := checkout.NewClassifier(orderStore, cfg.FeatureFlags.LegacyLinks)
	if err != nil {
		return err
	}
	engine, err := checkout.NewEngine(orderStore, gatewayRegistry, hooks, cfg.Checkout.PayButtonLabel)
	if err != nil {
		return err
	}
	router, err := checkout.NewRouter(
		classifier,
		engine,
		checkout.NewGate(hooks),
		checkout.NewFinalizer(orderStore, hooks),
		logg,
		checkout.WithRecorder(checkoutMetrics),
	)
	if err != nil {
		return err
	}

	scopes := controllers.NewScopeFactory(
		orderStore,
		session.NewStore(redisClient, cfg.Checkout.SessionTTL),
		cart.NewStore(redisClient, cfg.Checkout.SessionTTL, currency),
		customers.NewRepository(dbClient.DB()),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Dependencies{
			DB:       dbClient,
			Redis:    redisClient,
			Limiter:  redisClient,
			Checkout: router,
			Scopes:   scopes,
			Metrics:  checkoutMetrics,
			Gatherer: registry,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), env.Duration("STOREFRONT_SHUTDOWN_TIMEOUT", defaultShutdownTimeout))
	defer cancel()
	return multierr.Append(server.Shutdown(shutdownCtx), <-serveErr)
}
