package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/nwswx"
	"github.com/couchcryptid/nwswx/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/nwswx/internal/adapter/kafka"
	"github.com/couchcryptid/nwswx/internal/config"
	"github.com/couchcryptid/nwswx/internal/observability"
	"github.com/couchcryptid/nwswx/internal/watch"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Every outbound request shows up in /metrics.
	httpClient := metrics.InstrumentHTTPClient(&http.Client{Timeout: cfg.RequestTimeout})

	client, err := nwswx.New(cfg.UserAgentID,
		nwswx.WithAPIHost(cfg.APIHost),
		nwswx.WithHTTPClient(httpClient),
		nwswx.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to create nws client", "error", err)
		os.Exit(1)
	}

	query := nwswx.AlertQuery{
		Area:     cfg.AlertArea,
		Zone:     cfg.AlertZone,
		Point:    cfg.AlertPoint,
		Severity: cfg.AlertSeverity,
	}

	fetcher := watch.NewAlertFetcher(client, query)
	publisher := kafkaadapter.NewPublisher(cfg, logger)

	watcher, err := watch.New(fetcher, publisher, logger, metrics, cfg.PollInterval, cfg.SeenCacheSize)
	if err != nil {
		logger.Error("failed to create watcher", "error", err)
		os.Exit(1)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, watcher, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the alert watcher.
	go func() {
		if err := watcher.Run(ctx); err != nil {
			logger.Error("watcher error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("kafka publisher close error", "error", err)
	}

	logger.Info("shutdown complete")
}
