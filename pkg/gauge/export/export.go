// Package export writes finished monthly indices to spreadsheet files.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tonegauge/tonegauge/pkg/gauge/index"
)

const sheet = "Sheet1"

// WriteMonthlyIndex writes one index to an xlsx file with columns
// (date, <metricHeader>, <referenceHeader>), one row per month,
// ascending. Each metric gets its own artifact; metrics are never
// combined into one file.
func WriteMonthlyIndex(path, metricHeader, referenceHeader string, rows []index.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"date", metricHeader, referenceHeader}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, row := range rows {
		values := []any{row.MonthEnd.Format("2006-01-02"), row.Metric, row.Reference}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return fmt.Errorf("row cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
