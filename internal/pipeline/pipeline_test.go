package pipeline_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/ops-report-service/internal/domain"
	"github.com/couchcryptid/ops-report-service/internal/observability"
	"github.com/couchcryptid/ops-report-service/internal/pipeline"
	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func freezeClock(t *testing.T) time.Time {
	t.Helper()
	now := time.Date(2025, time.August, 4, 18, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(now))
	t.Cleanup(func() { domain.SetClock(nil) })
	return now
}

func TestAggregator_Build_HappyPath(t *testing.T) {
	now := freezeClock(t)
	src := newMockSource()
	pub := &mockPublisher{}
	metrics := newTestMetrics()

	agg := pipeline.New(src, pub, slog.Default(), metrics, domain.ReconcileOptions{})

	report, err := agg.Build(context.Background(), "2025-08-04")
	require.NoError(t, err)

	assert.Equal(t, "2025-08-04", report.Date)
	assert.Equal(t, now, report.LastUpdate)
	assert.Equal(t, domain.MatchExactDate, report.MatchedBy)
	assert.Empty(t, report.FailedSheets)
	require.Len(t, report.Registros, 1)
	assert.Equal(t, "20250804-01", report.Registros[0].ID)
	assert.Len(t, report.DMAs, 3)
	assert.Len(t, report.Naves, 1)
	assert.Len(t, report.ROVs, 2)

	assert.Equal(t, domain.Summary{
		Critical:        1,
		Warning:         1,
		Operational:     1,
		Total:           3,
		PumpingHours:    8,
		ROVsOperational: 1,
		ROVsTotal:       2,
		Vessels:         1,
	}, report.Summary)

	assert.Equal(t, int64(len(domain.Sheets)), src.calls.Load())
	require.Len(t, pub.published, 1)
	assert.Equal(t, report.Date, pub.published[0].Date)

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ReportsBuilt), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.MatchStrategy.WithLabelValues("exact_date")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(metrics.RecordsMatched.WithLabelValues("dmas")), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(metrics.RowsParsed.WithLabelValues("DMAs")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.SheetFetches.WithLabelValues("ROVs", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ReportsPublished.WithLabelValues("success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.SourceConfigured), 0)
}

func TestAggregator_Build_StringDatedRegistro(t *testing.T) {
	freezeClock(t)
	agg := pipeline.New(newMockSource(), nil, slog.Default(), newTestMetrics(), domain.ReconcileOptions{})

	report, err := agg.Build(context.Background(), "2025-08-05")
	require.NoError(t, err)

	assert.Equal(t, domain.MatchExactDate, report.MatchedBy)
	require.Len(t, report.DMAs, 1)
	assert.InDelta(t, 8.0, report.Summary.PumpingHours, 0)
	assert.Empty(t, report.ROVs)
	assert.NotNil(t, report.ROVs)
}

func TestAggregator_Build_FetchesConcurrently(t *testing.T) {
	freezeClock(t)
	agg := pipeline.New(newBarrierSource(), nil, slog.Default(), newTestMetrics(), domain.ReconcileOptions{})

	report, err := agg.Build(context.Background(), "2025-08-04")
	require.NoError(t, err)
	assert.Empty(t, report.FailedSheets)
	assert.Len(t, report.DMAs, 3)
}

func TestAggregator_Build_InvalidDate(t *testing.T) {
	src := newMockSource()
	metrics := newTestMetrics()
	agg := pipeline.New(src, nil, slog.Default(), metrics, domain.ReconcileOptions{})

	for _, in := range []string{"not-a-date", " 2025-08-04", "2025-08-04T00:00:00Z", ""} {
		_, err := agg.Build(context.Background(), in)
		require.ErrorIs(t, err, domain.ErrInvalidReportDate, in)
	}

	assert.Zero(t, src.calls.Load(), "no fetch for an invalid date")
	assert.InDelta(t, 4, testutil.ToFloat64(metrics.ReportErrors.WithLabelValues("invalid_date")), 0)
}

func TestAggregator_Build_NotConfigured(t *testing.T) {
	metrics := newTestMetrics()
	agg := pipeline.New(nil, nil, slog.Default(), metrics, domain.ReconcileOptions{})

	_, err := agg.Build(context.Background(), "2025-08-04")
	require.ErrorIs(t, err, domain.ErrConfiguration)
	require.ErrorIs(t, agg.CheckReadiness(context.Background()), domain.ErrConfiguration)

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ReportErrors.WithLabelValues("configuration")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.SourceConfigured), 0)
}

func TestAggregator_Build_InvalidDateCheckedBeforeConfiguration(t *testing.T) {
	agg := pipeline.New(nil, nil, slog.Default(), newTestMetrics(), domain.ReconcileOptions{})

	_, err := agg.Build(context.Background(), "yesterday")
	require.ErrorIs(t, err, domain.ErrInvalidReportDate)
}

func TestAggregator_Build_PartialFailure(t *testing.T) {
	freezeClock(t)
	src := newMockSource()
	src.fail[domain.SheetNaves.Range()] = errors.New("quota exceeded")
	metrics := newTestMetrics()

	agg := pipeline.New(src, nil, slog.Default(), metrics, domain.ReconcileOptions{})

	report, err := agg.Build(context.Background(), "2025-08-04")
	require.NoError(t, err)

	assert.Equal(t, []string{"Naves"}, report.FailedSheets)
	assert.NotNil(t, report.Naves)
	assert.Empty(t, report.Naves)
	assert.Len(t, report.DMAs, 3)
	assert.Len(t, report.ROVs, 2)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.SheetFetches.WithLabelValues("Naves", "error")), 0)
}

func TestAggregator_Build_RegistrosFailure(t *testing.T) {
	freezeClock(t)
	src := newMockSource()
	src.fail[domain.SheetRegistros.Range()] = errors.New("timeout")

	agg := pipeline.New(src, nil, slog.Default(), newTestMetrics(), domain.ReconcileOptions{})

	report, err := agg.Build(context.Background(), "2025-08-04")
	require.NoError(t, err)

	assert.Equal(t, domain.MatchNone, report.MatchedBy)
	assert.Equal(t, []string{"Registros"}, report.FailedSheets)
	assert.Empty(t, report.Registros)
	assert.Empty(t, report.DMAs)
	assert.Empty(t, report.Naves)
	assert.Empty(t, report.ROVs)
}

func TestAggregator_Build_TotalFailure(t *testing.T) {
	src := newMockSource()
	cause := errors.New("connection refused")
	for _, s := range domain.Sheets {
		src.fail[s.Range()] = cause
	}
	pub := &mockPublisher{}
	metrics := newTestMetrics()

	agg := pipeline.New(src, pub, slog.Default(), metrics, domain.ReconcileOptions{})

	_, err := agg.Build(context.Background(), "2025-08-04")
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
	require.ErrorIs(t, err, cause)

	var fetchErr *domain.SourceFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "Registros")
	assert.Contains(t, err.Error(), "ROVs")

	assert.Empty(t, pub.published)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ReportErrors.WithLabelValues("source_unavailable")), 0)
}

func TestAggregator_Build_NoMatches(t *testing.T) {
	freezeClock(t)
	agg := pipeline.New(newMockSource(), nil, slog.Default(), newTestMetrics(), domain.ReconcileOptions{})

	report, err := agg.Build(context.Background(), "2024-01-01")
	require.NoError(t, err)

	assert.Equal(t, domain.MatchNone, report.MatchedBy)
	assert.Empty(t, report.Registros)
	assert.Empty(t, report.DMAs)
	assert.Equal(t, domain.Summary{}, report.Summary)
}

func TestAggregator_Build_OffsetPolicy(t *testing.T) {
	freezeClock(t)
	opts := domain.ReconcileOptions{Policy: domain.PolicyExactDate, OffsetDays: 1}
	agg := pipeline.New(newMockSource(), nil, slog.Default(), newTestMetrics(), opts)

	report, err := agg.Build(context.Background(), "2025-08-04")
	require.NoError(t, err)

	require.Len(t, report.Registros, 1)
	assert.Equal(t, "20250805-01", report.Registros[0].ID)
}

func TestAggregator_Build_PublishFailureIsNotFatal(t *testing.T) {
	freezeClock(t)
	pub := &mockPublisher{err: errors.New("broker down")}
	metrics := newTestMetrics()
	agg := pipeline.New(newMockSource(), pub, slog.Default(), metrics, domain.ReconcileOptions{})

	report, err := agg.Build(context.Background(), "2025-08-04")
	require.NoError(t, err)
	assert.Len(t, report.DMAs, 3)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ReportsPublished.WithLabelValues("error")), 0)
}

func TestAggregator_Build_Deterministic(t *testing.T) {
	freezeClock(t)
	agg := pipeline.New(newMockSource(), nil, slog.Default(), newTestMetrics(), domain.ReconcileOptions{})

	first, err := agg.Build(context.Background(), "2025-08-04")
	require.NoError(t, err)
	second, err := agg.Build(context.Background(), "2025-08-04")
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("report mismatch (-first +second):\n%s", diff)
	}
}

func TestAggregator_Fetch(t *testing.T) {
	src := newMockSource()
	src.fail[domain.SheetROVs.Range()] = errors.New("not found")
	agg := pipeline.New(src, nil, slog.Default(), newTestMetrics(), domain.ReconcileOptions{})

	raw, err := agg.Fetch(context.Background())
	require.NoError(t, err)

	assert.Len(t, raw.Registros, 3)
	assert.Len(t, raw.DMAs, 5)
	assert.Len(t, raw.Naves, 3)
	assert.Nil(t, raw.ROVs)
	assert.Equal(t, []string{"ROVs"}, raw.Unavailable)
}
