// Package export serializes gantt projections to spreadsheet files.
package export

import (
	"fmt"
	"io"

	"github.com/lumeng/mindmirror/internal/gantt"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Gantt"

// Day columns are rendered narrow so a multi-week projection stays
// readable.
const dayColumnWidth = 3.5

// WriteGantt serializes the matrix to an .xlsx workbook at path.
func WriteGantt(path string, m gantt.Matrix) error {
	f, err := build(m)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving gantt workbook: %w", err)
	}
	return nil
}

// WriteGanttTo serializes the matrix to an .xlsx workbook on w.
func WriteGanttTo(w io.Writer, m gantt.Matrix) error {
	f, err := build(m)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing gantt workbook: %w", err)
	}
	return nil
}

func build(m gantt.Matrix) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("naming gantt sheet: %w", err)
	}

	if err := setRow(f, 1, m.Legend); err != nil {
		return nil, err
	}
	if err := setRow(f, 2, m.Header); err != nil {
		return nil, err
	}
	for i, row := range m.Rows {
		if err := setRow(f, 3+i, row); err != nil {
			return nil, err
		}
	}

	if len(m.Days) > 0 {
		firstDay := len(m.Header) - len(m.Days) + 1
		start, err := excelize.ColumnNumberToName(firstDay)
		if err != nil {
			return nil, fmt.Errorf("resolving day column: %w", err)
		}
		end, err := excelize.ColumnNumberToName(len(m.Header))
		if err != nil {
			return nil, fmt.Errorf("resolving day column: %w", err)
		}
		if err := f.SetColWidth(sheetName, start, end, dayColumnWidth); err != nil {
			return nil, fmt.Errorf("sizing day columns: %w", err)
		}
	}

	return f, nil
}

func setRow(f *excelize.File, row int, values []string) error {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("resolving row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}
