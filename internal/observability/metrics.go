package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ops_report"

// Metrics holds the Prometheus collectors for report building.
type Metrics struct {
	ReportsBuilt        prometheus.Counter
	ReportErrors        *prometheus.CounterVec // labels: reason={invalid_date,configuration,source_unavailable}
	ReportBuildDuration prometheus.Histogram
	MatchStrategy       *prometheus.CounterVec // labels: strategy={exact_date,id_fragment,legacy_fragment,none}
	RecordsMatched      *prometheus.CounterVec // labels: kind={registros,dmas,naves,rovs}

	// Source metrics.
	SheetFetches       *prometheus.CounterVec   // labels: sheet, outcome={success,error}
	SheetFetchDuration *prometheus.HistogramVec // labels: sheet
	RowsParsed         *prometheus.CounterVec   // labels: sheet
	SourceConfigured   prometheus.Gauge

	ReportsPublished *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates the report metrics and registers them with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	return newMetrics(prometheus.DefaultRegisterer)
}

// NewMetricsForTesting registers with a throwaway registry so tests can build
// as many instances as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics(prometheus.NewRegistry())
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ReportsBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_built_total",
			Help:      "Reports assembled successfully.",
		}),
		ReportErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_errors_total",
			Help:      "Report requests that failed, by reason.",
		}, []string{"reason"}),
		ReportBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_build_duration_seconds",
			Help:      "Time to fetch, reconcile and summarize one report.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}),
		MatchStrategy: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_strategy_total",
			Help:      "Reports by the rule that selected their rows.",
		}, []string{"strategy"}),
		RecordsMatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_matched_total",
			Help:      "Rows kept in reports, by record kind.",
		}, []string{"kind"}),
		SheetFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sheet_fetches_total",
			Help:      "Range fetches by sheet and outcome.",
		}, []string{"sheet", "outcome"}),
		SheetFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sheet_fetch_duration_seconds",
			Help:      "Range fetch latency by sheet.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"sheet"}),
		RowsParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_parsed_total",
			Help:      "Data rows read from each sheet, header excluded.",
		}, []string{"sheet"}),
		SourceConfigured: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_configured",
			Help:      "1 when the spreadsheet source has its credentials, 0 otherwise.",
		}),
		ReportsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_published_total",
			Help:      "Reports written to Kafka, by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.ReportsBuilt,
		m.ReportErrors,
		m.ReportBuildDuration,
		m.MatchStrategy,
		m.RecordsMatched,
		m.SheetFetches,
		m.SheetFetchDuration,
		m.RowsParsed,
		m.SourceConfigured,
		m.ReportsPublished,
	)

	return m
}
