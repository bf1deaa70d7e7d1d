// =============================================================================
// AXON Reconciliation Toolkit - Workbook Writer
// =============================================================================
//
// In-memory workbook model plus its XLSX serialization. The reconciliation
// pipelines produce a Workbook of named Sheets; this file renders that model
// with excelize. Cells are written with their native types (strings stay
// strings, amounts stay numbers) so spreadsheet consumers can keep summing
// columns.
//
// No styling: plain named sheets with a header row are the contract.
//
// =============================================================================

package report

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"
)

// Sheet is one named output table.
type Sheet struct {
	// Name is the sheet name exactly as it appears in the workbook.
	Name string

	// Headers is the first row.
	Headers []string

	// Rows holds the data rows. Cells may be string, float64 or int.
	Rows [][]interface{}
}

// Workbook is an ordered collection of sheets. The first sheet becomes the
// workbook's default sheet.
type Workbook struct {
	Sheets []Sheet
}

// Write serializes the workbook as XLSX.
func (w *Workbook) Write(out io.Writer) error {
	if len(w.Sheets) == 0 {
		return fmt.Errorf("workbook has no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	// Rename the implicit first sheet, then add the rest.
	if err := f.SetSheetName(f.GetSheetName(0), w.Sheets[0].Name); err != nil {
		return fmt.Errorf("failed to name sheet %q: %w", w.Sheets[0].Name, err)
	}
	for _, sheet := range w.Sheets[1:] {
		if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", sheet.Name, err)
		}
	}

	for _, sheet := range w.Sheets {
		if err := writeSheet(f, sheet); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Save writes the workbook to a file on disk.
func (w *Workbook) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := w.Write(f); err != nil {
		return err
	}
	return f.Close()
}

// writeSheet renders one sheet: header row first, data rows below.
func writeSheet(f *excelize.File, sheet Sheet) error {
	header := make([]interface{}, len(sheet.Headers))
	for i, h := range sheet.Headers {
		header[i] = h
	}
	if err := setRow(f, sheet.Name, 1, header); err != nil {
		return err
	}

	for i, row := range sheet.Rows {
		if err := setRow(f, sheet.Name, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("invalid row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, rowNum, err)
	}
	return nil
}
