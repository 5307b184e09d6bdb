// Command sheetcheck verifies that the configured spreadsheet source is
// reachable and laid out as expected. It reads the four tabs, prints their row
// counts, and with -date also prints what a report for that date would hold.
//
// Usage:
//
//	go run ./cmd/sheetcheck
//	go run ./cmd/sheetcheck -date 2025-08-04
//
// Exit status is 1 on a configuration error or when no tab could be read.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/ops-report-service/internal/adapter/sheets"
	"github.com/couchcryptid/ops-report-service/internal/adapter/source"
	"github.com/couchcryptid/ops-report-service/internal/config"
	"github.com/couchcryptid/ops-report-service/internal/domain"
	"github.com/couchcryptid/ops-report-service/internal/observability"
	"github.com/couchcryptid/ops-report-service/internal/pipeline"
)

// tabLister is implemented by sources that can enumerate their tabs.
type tabLister interface {
	Tabs(ctx context.Context) ([]sheets.TabInfo, error)
}

func main() {
	date := flag.String("date", "", "report date to reconcile (YYYY-MM-DD)")
	timeout := flag.Duration("timeout", 30*time.Second, "overall deadline")
	flag.Parse()

	os.Exit(run(*date, *timeout, observability.NewMetrics(), os.Stdout))
}

func run(date string, timeout time.Duration, metrics *observability.Metrics, out io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(out, "config: %v\n", err)
		return 1
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	src, err := source.Open(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(out, "source (%s): %v\n", cfg.SourceKind, err)
		return 1
	}
	fmt.Fprintf(out, "source: %s\n", cfg.SourceKind)

	if lister, ok := src.(tabLister); ok {
		printTabs(ctx, lister, out)
	}

	opts := domain.ReconcileOptions{Policy: cfg.MatchPolicy, OffsetDays: cfg.ReportDateOffsetDays}
	agg := pipeline.New(src, nil, logger, metrics, opts)

	raw, err := agg.Fetch(ctx)
	printCounts(raw, out)
	if err != nil {
		fmt.Fprintf(out, "\nFAIL: %v\n", err)
		return 1
	}

	if date != "" {
		reportDate, err := domain.ParseReportDate(date)
		if err != nil {
			fmt.Fprintf(out, "\nFAIL: %v\n", err)
			return 1
		}
		printReconciled(domain.Reconcile(raw, reportDate, opts), reportDate, opts, out)
	}

	if len(raw.Unavailable) > 0 {
		fmt.Fprintf(out, "\nWARN: unreadable tabs: %s\n", strings.Join(raw.Unavailable, ", "))
	}
	return 0
}

func printTabs(ctx context.Context, lister tabLister, out io.Writer) {
	tabs, err := lister.Tabs(ctx)
	if err != nil {
		hint := ""
		if sheets.IsNotFound(err) {
			hint = " (check GOOGLE_SHEETS_SPREADSHEET_ID)"
		}
		fmt.Fprintf(out, "tabs: %v%s\n", err, hint)
		return
	}
	fmt.Fprintln(out, "tabs:")
	for _, tab := range tabs {
		fmt.Fprintf(out, "  %-12s %6d grid rows\n", tab.Title, tab.Rows)
	}
}

func printCounts(raw domain.RawSheets, out io.Writer) {
	fmt.Fprintln(out, "\nranges:")
	for _, sheet := range domain.Sheets {
		status := "ok"
		for _, name := range raw.Unavailable {
			if name == sheet.Name {
				status = "unavailable"
			}
		}
		fmt.Fprintf(out, "  %-16s %6d data rows  %s\n", sheet.Range(), dataRowCount(raw, sheet), status)
	}
}

func dataRowCount(raw domain.RawSheets, sheet domain.Sheet) int {
	var rows [][]any
	switch sheet.Name {
	case domain.SheetRegistros.Name:
		rows = raw.Registros
	case domain.SheetDMAs.Name:
		rows = raw.DMAs
	case domain.SheetNaves.Name:
		rows = raw.Naves
	case domain.SheetROVs.Name:
		rows = raw.ROVs
	}
	return max(len(rows)-1, 0)
}

func printReconciled(rec domain.Reconciled, date domain.ReportDate, opts domain.ReconcileOptions, out io.Writer) {
	c := domain.Resolve(date, opts.OffsetDays)
	fmt.Fprintf(out, "\nreport %s (policy %s, registry day %s, fragment %s):\n", date, opts.Policy, c.RegistryDay, c.Fragment)
	fmt.Fprintf(out, "  matched by  %s\n", rec.MatchedBy)
	fmt.Fprintf(out, "  registros   %d\n", len(rec.Registros))
	fmt.Fprintf(out, "  dmas        %d\n", len(rec.DMAs))
	fmt.Fprintf(out, "  naves       %d\n", len(rec.Naves))
	fmt.Fprintf(out, "  rovs        %d\n", len(rec.ROVs))

	s := domain.Summarize(rec)
	fmt.Fprintf(out, "  status      %d operational, %d warning, %d critical\n", s.Operational, s.Warning, s.Critical)
	fmt.Fprintf(out, "  pumping     %.1f h\n", s.PumpingHours)
	for _, r := range rec.Registros {
		fmt.Fprintf(out, "  - %s  %s / %s\n", r.ID, r.Client, r.Center)
	}
}
