package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/couchcryptid/neo-data-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/neo-data-etl/internal/adapter/kafka"
	"github.com/couchcryptid/neo-data-etl/internal/adapter/ssd"
	"github.com/couchcryptid/neo-data-etl/internal/config"
	"github.com/couchcryptid/neo-data-etl/internal/extract"
	"github.com/couchcryptid/neo-data-etl/internal/observability"
	"github.com/couchcryptid/neo-data-etl/internal/pipeline"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optionally refresh the feed snapshots before loading (feature-flagged
	// via SSD_REFRESH_ENABLED).
	if cfg.SSDRefreshEnabled {
		client := ssd.NewClient(cfg.SSDTimeout, logger)
		if err := client.RefreshObjects(ctx, cfg.NEOCSVPath); err != nil {
			logger.Error("object feed refresh failed, using existing snapshot", "error", err)
		}
		if err := client.RefreshApproaches(ctx, cfg.CADJSONPath); err != nil {
			logger.Error("approach feed refresh failed, using existing snapshot", "error", err)
		}
	} else {
		logger.Info("feed refresh disabled")
	}

	extractor := extract.New(logger, metrics)

	var publisher pipeline.BatchPublisher
	var writer *kafkaadapter.Writer
	if cfg.PublishEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka publication enabled", "topic", cfg.KafkaSinkTopic, "batch_size", cfg.PublishBatchSize)
	} else {
		logger.Info("kafka publication disabled")
	}

	p := pipeline.New(extractor, extractor, publisher, logger, metrics,
		cfg.NEOCSVPath, cfg.CADJSONPath, cfg.PublishBatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Run the load. The process stays up afterwards to serve stats and
	// metrics until signalled.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
