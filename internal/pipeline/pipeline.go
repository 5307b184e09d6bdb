package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/ops-report-service/internal/domain"
	"github.com/couchcryptid/ops-report-service/internal/observability"
)

// Publisher delivers a finished report downstream.
type Publisher interface {
	Publish(ctx context.Context, report domain.Report) error
}

// Aggregator builds daily reports from a tabular source. Every call reads the
// source again; nothing is cached between calls.
type Aggregator struct {
	source    domain.TabularSource
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	opts      domain.ReconcileOptions
}

// New creates an Aggregator. A nil source makes every Build fail with
// domain.ErrConfiguration; a nil publisher disables publishing.
func New(source domain.TabularSource, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics, opts domain.ReconcileOptions) *Aggregator {
	if source != nil {
		metrics.SourceConfigured.Set(1)
	} else {
		metrics.SourceConfigured.Set(0)
	}
	return &Aggregator{
		source:    source,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		opts:      opts,
	}
}

// CheckReadiness returns nil when a spreadsheet source is configured.
func (a *Aggregator) CheckReadiness(_ context.Context) error {
	if a.source == nil {
		return fmt.Errorf("%w: spreadsheet credentials missing", domain.ErrConfiguration)
	}
	return nil
}

// Build assembles the report for reportDate (YYYY-MM-DD).
//
// The date is validated and the source checked before any fetch. The four
// tabs are fetched concurrently; a failed tab is reported in FailedSheets and
// contributes no rows. Build fails only when every tab failed.
func (a *Aggregator) Build(ctx context.Context, reportDate string) (domain.Report, error) {
	start := time.Now()

	date, err := domain.ParseReportDate(reportDate)
	if err != nil {
		a.metrics.ReportErrors.WithLabelValues("invalid_date").Inc()
		return domain.Report{}, err
	}
	if err := a.CheckReadiness(ctx); err != nil {
		a.metrics.ReportErrors.WithLabelValues("configuration").Inc()
		return domain.Report{}, err
	}

	raw, err := a.Fetch(ctx)
	if err != nil {
		a.metrics.ReportErrors.WithLabelValues("source_unavailable").Inc()
		a.logger.Error("report source unavailable", "date", date.String(), "error", err)
		return domain.Report{}, err
	}

	report := a.assemble(raw, date)

	a.metrics.ReportsBuilt.Inc()
	a.metrics.ReportBuildDuration.Observe(time.Since(start).Seconds())
	a.logger.Info("report built",
		"date", report.Date,
		"matched_by", report.MatchedBy,
		"registros", len(report.Registros),
		"dmas", len(report.DMAs),
		"naves", len(report.Naves),
		"rovs", len(report.ROVs),
		"failed_sheets", report.FailedSheets,
	)

	a.publish(ctx, report)
	return report, nil
}

// publish hands the report to the publisher. Failures are logged and counted
// but never fail the request.
func (a *Aggregator) publish(ctx context.Context, report domain.Report) {
	if a.publisher == nil {
		return
	}
	if err := a.publisher.Publish(ctx, report); err != nil {
		a.metrics.ReportsPublished.WithLabelValues("error").Inc()
		a.logger.Warn("report publish failed", "date", report.Date, "error", err)
		return
	}
	a.metrics.ReportsPublished.WithLabelValues("success").Inc()
}
