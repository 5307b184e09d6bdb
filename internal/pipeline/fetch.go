package pipeline

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/ops-report-service/internal/domain"
)

// Fetch reads the four tabs concurrently and waits for all of them. A failed
// tab is listed in RawSheets.Unavailable. When every tab failed the returned
// error joins domain.ErrSourceUnavailable with each *domain.SourceFetchError.
func (a *Aggregator) Fetch(ctx context.Context) (domain.RawSheets, error) {
	if err := a.CheckReadiness(ctx); err != nil {
		return domain.RawSheets{}, err
	}

	rows := make([][][]any, len(domain.Sheets))
	errs := make([]error, len(domain.Sheets))

	// A plain group: one failed tab must not cancel the others.
	var g errgroup.Group
	for i, sheet := range domain.Sheets {
		g.Go(func() error {
			rows[i], errs[i] = a.fetchSheet(ctx, sheet)
			return nil
		})
	}
	_ = g.Wait()

	raw := domain.RawSheets{
		Registros: rows[0],
		DMAs:      rows[1],
		Naves:     rows[2],
		ROVs:      rows[3],
	}
	var failed []error
	for i, err := range errs {
		if err != nil {
			raw.Unavailable = append(raw.Unavailable, domain.Sheets[i].Name)
			failed = append(failed, err)
		}
	}
	if len(failed) == len(domain.Sheets) {
		return raw, errors.Join(append([]error{domain.ErrSourceUnavailable}, failed...)...)
	}
	return raw, nil
}

func (a *Aggregator) fetchSheet(ctx context.Context, sheet domain.Sheet) ([][]any, error) {
	start := time.Now()
	rows, err := a.source.GetRange(ctx, sheet.Range())
	a.metrics.SheetFetchDuration.WithLabelValues(sheet.Name).Observe(time.Since(start).Seconds())

	if err != nil {
		a.metrics.SheetFetches.WithLabelValues(sheet.Name, "error").Inc()
		a.logger.Warn("sheet fetch failed", "sheet", sheet.Name, "range", sheet.Range(), "error", err)
		return nil, &domain.SourceFetchError{Sheet: sheet.Name, Err: err}
	}

	a.metrics.SheetFetches.WithLabelValues(sheet.Name, "success").Inc()
	if n := len(rows) - 1; n > 0 {
		a.metrics.RowsParsed.WithLabelValues(sheet.Name).Add(float64(n))
	}
	a.logger.Debug("sheet fetched", "sheet", sheet.Name, "rows", len(rows))
	return rows, nil
}
