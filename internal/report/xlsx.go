package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gstcopilot/gstcopilot/internal/model"
)

const (
	resultsSheet = "Results"
	summarySheet = "Summary"
)

// WriteXLSX writes a workbook with a Results sheet (same columns as the
// CSV) and a Summary sheet.
func WriteXLSX(w io.Writer, rows []model.ReconciledRow, sum model.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return fmt.Errorf("naming results sheet: %w", err)
	}

	header := strings.Split(Header, ",")
	if err := setRow(f, resultsSheet, 1, header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		if err := setRow(f, resultsSheet, i+2, MarshalRow(row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	for i, line := range summaryLines(sum) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &[]any{line.label, line.value}); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

type summaryLine struct {
	label string
	value int
}

func summaryLines(s model.Summary) []summaryLine {
	return []summaryLine{
		{"Total Records", s.Total},
		{"Matches", s.Matches},
		{"Mismatches", s.Mismatches},
		{"Missing in 2B", s.MissingInA},
		{"Missing in 3B", s.MissingInB},
		{"Skipped 2B rows (no Invoice ID)", s.SkippedA},
		{"Skipped 3B rows (no Invoice ID)", s.SkippedB},
	}
}
