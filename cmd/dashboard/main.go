package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/ops-report-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/ops-report-service/internal/adapter/kafka"
	"github.com/couchcryptid/ops-report-service/internal/adapter/source"
	"github.com/couchcryptid/ops-report-service/internal/config"
	"github.com/couchcryptid/ops-report-service/internal/domain"
	"github.com/couchcryptid/ops-report-service/internal/observability"
	"github.com/couchcryptid/ops-report-service/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Missing credentials keep the service up; report requests answer 503.
	src, err := source.Open(ctx, cfg, logger)
	switch {
	case errors.Is(err, domain.ErrConfiguration):
		logger.Warn("spreadsheet source not configured", "kind", cfg.SourceKind, "error", err)
	case err != nil:
		logger.Error("failed to open spreadsheet source", "kind", cfg.SourceKind, "error", err)
		os.Exit(1)
	default:
		logger.Info("spreadsheet source ready", "kind", cfg.SourceKind)
	}

	var (
		publisher pipeline.Publisher
		writer    *kafkaadapter.Writer
	)
	if cfg.PublishEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("report publishing enabled", "topic", cfg.KafkaReportTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("report publishing disabled")
	}

	agg := pipeline.New(src, publisher, logger, metrics, domain.ReconcileOptions{
		Policy:     cfg.MatchPolicy,
		OffsetDays: cfg.ReportDateOffsetDays,
	})
	logger.Info("report matching", "policy", cfg.MatchPolicy, "offset_days", cfg.ReportDateOffsetDays)

	srv := httpadapter.NewServer(cfg.HTTPAddr, agg, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
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
