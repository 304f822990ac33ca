package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/parthg2112/ecommerce-wp-proj/internal/catalog"
	"github.com/parthg2112/ecommerce-wp-proj/internal/config"
	"github.com/parthg2112/ecommerce-wp-proj/internal/database"
	"github.com/parthg2112/ecommerce-wp-proj/internal/domain"
	"github.com/parthg2112/ecommerce-wp-proj/internal/messaging"
	"github.com/parthg2112/ecommerce-wp-proj/internal/orders"
	"github.com/parthg2112/ecommerce-wp-proj/internal/storefront"
	"github.com/parthg2112/ecommerce-wp-proj/internal/telemetry"
)

const serviceVersion = "0.1.0"

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, "storefront", serviceVersion)
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider("storefront", serviceVersion)
	if err != nil {
		logger.Error("failed to initialize meter", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	if cfg.MigrateOnStart {
		if err := database.Migrate(cfg.PostgresURL); err != nil {
			logger.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	db, err := telemetry.OpenPostgres(ctx, cfg.PostgresURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	products := catalog.NewProductRepository(db)
	inserted, err := products.Seed(ctx)
	if err != nil {
		logger.Error("failed to seed products", "error", err)
		os.Exit(1)
	}
	if inserted > 0 {
		logger.Info("seeded product catalog", "products", inserted)
	}

	var publisher orders.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := messaging.NewProducer(cfg.KafkaBrokers, cfg.OrderTopic, domain.EventOrderPlaced)
		defer func() { _ = producer.Close() }()
		publisher = producer
	}

	orderHandler, err := orders.NewHandler(orders.NewOrderRepository(db), publisher, logger,
		orders.WithGuestUserID(cfg.GuestUserID),
		orders.WithMaxBodyBytes(cfg.MaxBodyBytes),
	)
	if err != nil {
		logger.Error("failed to create order handler", "error", err)
		os.Exit(1)
	}

	router := storefront.NewRouter(storefront.RouterConfig{
		Catalog: catalog.NewHandler(products, logger),
		Orders:  orderHandler,
		Static:  storefront.NewStaticFiles(os.DirFS(cfg.PagesDir), os.DirFS(cfg.AssetsDir), logger),
		Metrics: metricsHandler,
		Logger:  logger,
	})

	server := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: otelhttp.NewHandler(router, "storefront",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting storefront", "port", cfg.Port, "pages", cfg.PagesDir, "assets", cfg.AssetsDir)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
