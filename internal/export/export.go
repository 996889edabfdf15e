// Package export serializes the slotting plan for download.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/velocitymart/internal/domain/models"
)

// Download names and content types of the slotting plan artifacts.
const (
	CSVFileName     = "final_slotting_plan.csv"
	CSVContentType  = "text/csv"
	XLSXFileName    = "final_slotting_plan.xlsx"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheetName = "Slotting Plan"
)

// CSV writes the table back as comma separated text. Cells are written as
// loaded, so parsing the output yields the same table.
func CSV(table models.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := writeRecord(w, &buf, table.Header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, row := range table.Rows {
		if err := writeRecord(w, &buf, row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// writeRecord writes one record. csv.Writer renders a single empty field as a
// blank line, which readers skip, so that record is written as "" instead.
func writeRecord(w *csv.Writer, buf *bytes.Buffer, record []string) error {
	if len(record) == 1 && record[0] == "" {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
		buf.WriteString("\"\"\n")
		return nil
	}
	return w.Write(record)
}

// XLSX writes the table to a single-sheet workbook with every cell stored as text.
func XLSX(table models.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeRow(f, 1, table.Header); err != nil {
		return nil, err
	}
	for i, row := range table.Rows {
		if err := writeRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	if len(table.Header) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, fmt.Errorf("create header style: %w", err)
		}
		last, err := excelize.CoordinatesToCellName(len(table.Header), 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, "A1", last, style); err != nil {
			return nil, fmt.Errorf("style header: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, row int, values []string) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheetName, cell, value); err != nil {
			return fmt.Errorf("set %s: %w", cell, err)
		}
	}
	return nil
}
