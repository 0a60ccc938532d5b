package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikeSquared-Agency/Candyboard/internal/api"
	"github.com/MikeSquared-Agency/Candyboard/internal/config"
	"github.com/MikeSquared-Agency/Candyboard/internal/dataset"
	"github.com/MikeSquared-Agency/Candyboard/internal/events"
	"github.com/MikeSquared-Agency/Candyboard/internal/metrics"
	"github.com/MikeSquared-Agency/Candyboard/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	metrics.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Dataset
	var src dataset.Source
	switch cfg.Dataset.Source {
	case config.SourcePostgres:
		db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		logger.Info("connected to database")
		src = dataset.PostgresSource{Store: db}
	default:
		src = dataset.CSVSource{Path: cfg.Dataset.Path}
	}

	loader := dataset.NewLoader(src, logger)
	ds, err := loader.Load(ctx)
	if err != nil {
		logger.Error("failed to load candy data", "source", src.Name(), "error", err)
		os.Exit(1)
	}
	if missing := api.MissingRecommendations(ds, cfg.Recommendations.Names); len(missing) > 0 {
		logger.Warn("recommended candies not in dataset", "missing", missing)
	}

	// Events (optional)
	var publisher events.Publisher
	if cfg.Events.NATSURL != "" {
		nc, err := events.NewNATSClient(ctx, cfg.Events.NATSURL, logger)
		if err != nil {
			logger.Warn("failed to connect to nats, running without events", "error", err)
		} else {
			publisher = nc
			defer nc.Close()
			logger.Info("connected to nats")
		}
	}

	// API server
	router := api.NewRouter(loader, publisher, cfg.Recommendations.Names, cfg.Server.RateLimitPerMinute, logger)
	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           api.NewMetricsRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Logging.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
