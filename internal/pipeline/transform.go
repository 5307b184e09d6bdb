package pipeline

import (
	"github.com/couchcryptid/ops-report-service/internal/domain"
)

// assemble reconciles the fetched tabs for date and builds the report payload.
func (a *Aggregator) assemble(raw domain.RawSheets, date domain.ReportDate) domain.Report {
	rec := domain.Reconcile(raw, date, a.opts)

	a.metrics.MatchStrategy.WithLabelValues(string(rec.MatchedBy)).Inc()
	a.metrics.RecordsMatched.WithLabelValues("registros").Add(float64(len(rec.Registros)))
	a.metrics.RecordsMatched.WithLabelValues("dmas").Add(float64(len(rec.DMAs)))
	a.metrics.RecordsMatched.WithLabelValues("naves").Add(float64(len(rec.Naves)))
	a.metrics.RecordsMatched.WithLabelValues("rovs").Add(float64(len(rec.ROVs)))

	if rec.MatchedBy == domain.MatchLegacyFragment {
		a.logger.Info("no registro for date, matched dependent rows by id fragment", "date", date.String())
	}

	return domain.NewReport(date, rec)
}
