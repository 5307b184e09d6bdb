// Package source selects the spreadsheet backend named by SOURCE_KIND.
package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/ops-report-service/internal/adapter/sheets"
	"github.com/couchcryptid/ops-report-service/internal/adapter/xlsx"
	"github.com/couchcryptid/ops-report-service/internal/config"
	"github.com/couchcryptid/ops-report-service/internal/domain"
)

// Open builds the configured source. Missing credentials or paths yield an
// error wrapping domain.ErrConfiguration.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.TabularSource, error) {
	switch cfg.SourceKind {
	case config.SourceXLSX:
		src, err := xlsx.NewSource(cfg.XLSXPath, logger)
		if err != nil {
			return nil, err
		}
		return src, nil
	case config.SourceSheets:
		creds := sheets.Credentials{
			SpreadsheetID: cfg.SpreadsheetID,
			ClientEmail:   cfg.ClientEmail,
			PrivateKey:    cfg.PrivateKey,
		}
		client, err := sheets.NewClient(ctx, creds, cfg.SheetsEndpoint, cfg.SheetsTimeout, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("%w: unknown source kind %q", domain.ErrConfiguration, cfg.SourceKind)
	}
}
