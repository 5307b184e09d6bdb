package xlsx

import (
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"
)

// Tab is one worksheet to write: a name and its rows, header first.
type Tab struct {
	Name string
	Rows [][]any
}

// WriteWorkbook saves tabs to path as an .xlsx file, in order. Cells may be
// nil, string, float64, int or bool.
func WriteWorkbook(path string, tabs []Tab) error {
	if len(tabs) == 0 {
		return fmt.Errorf("xlsx: write %s: no tabs", path)
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	for _, tab := range tabs {
		if _, err := f.NewSheet(tab.Name); err != nil {
			return fmt.Errorf("xlsx: create tab %s: %w", tab.Name, err)
		}
		for r, row := range tab.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			values := row
			if err := f.SetSheetRow(tab.Name, cell, &values); err != nil {
				return fmt.Errorf("xlsx: write %s row %d: %w", tab.Name, r+1, err)
			}
		}
	}

	if !slices.ContainsFunc(tabs, func(t Tab) bool { return t.Name == defaultSheet }) {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("xlsx: remove default tab: %w", err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx: save %s: %w", path, err)
	}
	return nil
}
