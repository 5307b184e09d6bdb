// Package xlsx reads and writes the operations workbook as a local .xlsx
// file. It stands in for the Google Sheets source in development and offline
// checks, and produces mock workbooks for tests.
package xlsx

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/ops-report-service/internal/domain"
)

// Source implements domain.TabularSource over an .xlsx file. The file is
// opened on every call so edits show up on the next request.
type Source struct {
	path   string
	logger *slog.Logger
}

// NewSource returns a Source for path. An empty path is a configuration error.
func NewSource(path string, logger *slog.Logger) (*Source, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: missing XLSX_PATH", domain.ErrConfiguration)
	}
	return &Source{path: path, logger: logger}, nil
}

// GetRange returns the rows of an A1 column range such as "Naves!A:C".
// Shared and inline strings stay strings; numeric cells become float64, so
// dates stored as serials decode like the Sheets API's unformatted values.
func (s *Source) GetRange(ctx context.Context, sheetRange string) ([][]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sheet, first, last, err := parseRange(sheetRange)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open %s: %w", s.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn("xlsx close failed", "path", s.path, "error", cerr)
		}
	}()

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("xlsx: read %q: %w", sheetRange, err)
	}

	rows := make([][]any, 0, len(raw))
	for r, cells := range raw {
		row := make([]any, 0, last-first+1)
		for c := first; c <= last && c <= len(cells); c++ {
			v, err := typedCell(f, sheet, c, r+1, cells[c-1])
			if err != nil {
				return nil, fmt.Errorf("xlsx: read %q: %w", sheetRange, err)
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	s.logger.Debug("xlsx range read", "range", sheetRange, "rows", len(rows))
	return rows, nil
}

// typedCell converts a raw cell value using its stored type.
func typedCell(f *excelize.File, sheet string, col, row int, value string) (any, error) {
	if value == "" {
		return "", nil
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return nil, err
	}
	typ, err := f.GetCellType(sheet, name)
	if err != nil {
		return nil, err
	}
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			return n, nil
		}
	case excelize.CellTypeBool:
		return value == "1" || strings.EqualFold(value, "true"), nil
	}
	return value, nil
}

// parseRange splits "Sheet!A:N" into the sheet name and 1-based column bounds.
func parseRange(sheetRange string) (sheet string, first, last int, err error) {
	i := strings.LastIndex(sheetRange, "!")
	if i <= 0 {
		return "", 0, 0, fmt.Errorf("xlsx: range %q: want Sheet!A:Z", sheetRange)
	}
	sheet = sheetRange[:i]
	from, to, ok := strings.Cut(sheetRange[i+1:], ":")
	if !ok {
		to = from
	}
	if first, err = excelize.ColumnNameToNumber(from); err != nil {
		return "", 0, 0, fmt.Errorf("xlsx: range %q: %w", sheetRange, err)
	}
	if last, err = excelize.ColumnNameToNumber(to); err != nil {
		return "", 0, 0, fmt.Errorf("xlsx: range %q: %w", sheetRange, err)
	}
	if last < first {
		return "", 0, 0, fmt.Errorf("xlsx: range %q: columns out of order", sheetRange)
	}
	return sheet, first, last, nil
}
