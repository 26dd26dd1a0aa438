package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/irfndi/stockpulse-go/internal/api"
	"github.com/irfndi/stockpulse-go/internal/api/handlers"
	"github.com/irfndi/stockpulse-go/internal/config"
	"github.com/irfndi/stockpulse-go/internal/database"
	"github.com/irfndi/stockpulse-go/internal/dataset"
	"github.com/irfndi/stockpulse-go/internal/logging"
	"github.com/irfndi/stockpulse-go/internal/metrics"
	"github.com/irfndi/stockpulse-go/internal/telemetry"
)

const serviceName = "stockpulse-go"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application failed: %v\n", err)
		os.Exit(1)
	}
}

// application is the wired server and everything that must be released on shutdown
type application struct {
	router    *gin.Engine
	provider  *dataset.Provider
	refresher *dataset.Refresher
	closers   []func()
}

func (a *application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func run() error {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.NewStandardLogger(cfg.LogLevel, cfg.Environment)
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Initialize telemetry first
	tp, err := telemetry.InitTelemetry(ctx, telemetry.FromConfig(cfg.Telemetry, cfg.Environment))
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("Failed to shutdown telemetry")
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app, err := buildApplication(ctx, cfg, logger, registry)
	if err != nil {
		return err
	}
	defer app.close()

	// Warm the dataset so the first request does not pay for the load
	if _, err := app.provider.Get(ctx); err != nil {
		logger.WithError(err).Warn("Initial dataset load failed; will retry on first request")
	}

	if app.refresher != nil {
		app.refresher.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			app.refresher.Stop(stopCtx)
		}()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           app.router,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.LogStartup(serviceName, telemetry.ServiceVersion, cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		logger.LogShutdown(serviceName, "signal received")
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Give outstanding requests a deadline for completion
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Logger().Info("Server exited gracefully")
	return nil
}

// buildApplication connects the configured stores and wires the router
func buildApplication(ctx context.Context, cfg *config.Config, logger *logging.StandardLogger, registry *prometheus.Registry) (*application, error) {
	app := &application{}
	m := metrics.NewMetrics(registry)
	deps := api.Dependencies{
		Settings:       handlers.SettingsFromConfig(cfg),
		Logger:         logger,
		Metrics:        m,
		Gatherer:       registry,
		AdminAPIKey:    cfg.Server.AdminAPIKey,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}

	var loader dataset.Loader
	switch cfg.Dataset.Source {
	case "postgres":
		db, err := database.NewPostgresConnection(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.closers = append(app.closers, db.Close)
		deps.DB = db
		loader = dataset.NewPostgresLoader(database.NewTracedPool(db.Pool))
	default:
		loader = dataset.NewCSVLoader(cfg.Dataset.CSVPath, logger.Logger())
	}

	opts := []dataset.ProviderOption{dataset.WithMetrics(m)}
	if cfg.Redis.Enabled {
		redisClient, err := database.NewRedisConnection(ctx, cfg.Redis)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.closers = append(app.closers, redisClient.Close)
		deps.Redis = redisClient
		opts = append(opts, dataset.WithSnapshotCache(
			dataset.NewRedisSnapshotCache(redisClient.Client, cfg.Dataset.CacheTTLDuration()),
		))
	}

	app.provider = dataset.NewProvider(loader, logger, opts...)
	deps.Dataset = app.provider

	if cfg.Dataset.RefreshCron != "" {
		refresher, err := dataset.NewRefresher(app.provider, cfg.Dataset.RefreshCron, logger)
		if err != nil {
			app.close()
			return nil, err
		}
		app.refresher = refresher
	}

	app.router = api.NewRouter(deps)
	return app, nil
}
