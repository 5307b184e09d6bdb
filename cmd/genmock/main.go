// Command genmock writes a mock operations workbook following the four-tab
// layout (Registros, DMAs, Naves, ROVs). Point XLSX_PATH at the output and set
// SOURCE_KIND=xlsx to run the dashboard without Google credentials.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/operaciones.xlsx -date 2025-08-04 -days 7
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/ops-report-service/internal/adapter/xlsx"
	"github.com/couchcryptid/ops-report-service/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the .xlsx workbook")
	date := flag.String("date", time.Now().UTC().Format(time.DateOnly), "last report date in the workbook (YYYY-MM-DD)")
	days := flag.Int("days", 7, "number of daily records to generate")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	reportDate, err := domain.ParseReportDate(*date)
	if err != nil {
		return err
	}
	if *days < 1 || *days > 366 {
		return fmt.Errorf("-days must be between 1 and 366, got %d", *days)
	}

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	tabs := xlsx.MockTabs(reportDate, *days)
	if err := xlsx.WriteWorkbook(*out, tabs); err != nil {
		return err
	}

	for _, tab := range tabs {
		fmt.Printf("%-10s %4d rows\n", tab.Name, len(tab.Rows)-1)
	}
	fmt.Printf("wrote %s (%d days ending %s)\n", *out, *days, reportDate)
	return nil
}
