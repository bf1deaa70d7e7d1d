// =============================================================================
// AXON Reconciliation Toolkit - Tabular Input Module
// =============================================================================
//
// This module reads raw tabular input from the heterogeneous exports the
// reconciliation pipelines consume. Sources arrive either as XLSX workbooks
// or as plain delimited text, and the format is not announced: the reader
// probes the richer workbook format first and falls back to CSV when the
// probe fails.
//
// The second job of this module is header discovery. AXON prefixes its
// exports with a variable metadata block (one to six rows), so the real
// header row has to be located by scanning the leading rows for the required
// column names. See LocateHeader.
//
// The output of this module is deliberately dumb: a Grid of stringified
// cells, and a Table view of that grid from a chosen header row. All
// source-specific selection, normalization and validation lives in the
// loader package.
//
// =============================================================================

package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// =============================================================================
// GRID READING
// =============================================================================

// Grid is a raw rectangular view of one tabular source. Cells are
// stringified exactly as the underlying reader produced them; no trimming or
// normalization has happened yet.
type Grid struct {
	// Source names the input for logs and error messages, typically the
	// file name or the upload field name.
	Source string

	// Rows holds the raw cell grid. Rows may have differing lengths.
	Rows [][]string
}

// Read buffers the input and parses it as an XLSX workbook, falling back to
// delimited text when the workbook probe fails.
//
// The full input is buffered first because the workbook probe consumes the
// reader; inputs are bounded by realistic spreadsheet sizes, so buffering is
// fine.
func Read(r io.Reader, source string) (*Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}

	rows, xlsxErr := readWorkbook(data)
	if xlsxErr != nil {
		rows, err = readDelimited(data)
		if err != nil {
			return nil, fmt.Errorf("%s is neither a readable workbook (%v) nor delimited text: %w", source, xlsxErr, err)
		}
	}

	return &Grid{Source: source, Rows: rows}, nil
}

// ReadFile reads a tabular source from disk. See Read.
func ReadFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Read(f, path)
}

// readWorkbook parses the bytes as an XLSX workbook and returns the cell
// grid of the first sheet.
func readWorkbook(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return rows, nil
}

// readDelimited parses the bytes as comma-delimited text.
func readDelimited(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))

	// Exports from legacy systems have ragged rows and sloppy quoting.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read delimited text: %w", err)
	}
	return rows, nil
}

// =============================================================================
// HEADER DISCOVERY
// =============================================================================

// HeaderScan bounds the header-row search.
type HeaderScan struct {
	// MaxRows is the number of leading rows inspected.
	MaxRows int

	// Fallback is the 0-based row index assumed when no row within the
	// window carries all required columns. The fallback is a heuristic
	// reflecting a known metadata-block size, not an authoritative answer;
	// callers must surface it rather than treat it as a silent success.
	Fallback int
}

// LocateHeader scans the first MaxRows rows for one whose trimmed cell
// values contain every required column name, and returns its 0-based index.
//
// When no row matches, the scan's Fallback index is returned together with
// found == false.
func (g *Grid) LocateHeader(required []string, scan HeaderScan) (row int, found bool) {
	limit := scan.MaxRows
	if limit > len(g.Rows) {
		limit = len(g.Rows)
	}

	for i := 0; i < limit; i++ {
		cells := make(map[string]bool, len(g.Rows[i]))
		for _, c := range g.Rows[i] {
			cells[strings.TrimSpace(c)] = true
		}

		all := true
		for _, col := range required {
			if !cells[col] {
				all = false
				break
			}
		}
		if all {
			return i, true
		}
	}

	return scan.Fallback, false
}

// =============================================================================
// TABLE VIEW
// =============================================================================

// Table is a header-resolved view of a Grid. Header names are trimmed; row
// values are addressable by header name.
type Table struct {
	// Source carries the Grid's source name through to error messages.
	Source string

	// Headers are the trimmed column names, in sheet order.
	Headers []string

	// Rows holds the data rows as header -> trimmed value maps. Rows that
	// are entirely empty are skipped.
	Rows []map[string]string

	// HeaderRow is the 0-based grid row the headers came from.
	HeaderRow int

	// HeaderFallback is true when HeaderRow came from the scan fallback
	// rather than a located header. Surfaced in reports.
	HeaderFallback bool
}

// TableAt interprets the grid with the given 0-based header row. Rows above
// the header are discarded.
func (g *Grid) TableAt(headerRow int) *Table {
	t := &Table{Source: g.Source, HeaderRow: headerRow}

	if headerRow >= len(g.Rows) {
		return t
	}

	t.Headers = cleanHeaders(g.Rows[headerRow])

	for _, row := range g.Rows[headerRow+1:] {
		if isRowEmpty(row) {
			continue
		}

		m := make(map[string]string, len(t.Headers))
		for i, h := range t.Headers {
			if i < len(row) {
				m[h] = strings.TrimSpace(row[i])
			} else {
				m[h] = ""
			}
		}
		t.Rows = append(t.Rows, m)
	}

	return t
}

// Resolve locates the header row and returns the table view in one step,
// recording whether the fallback was taken.
func (g *Grid) Resolve(required []string, scan HeaderScan) *Table {
	row, found := g.LocateHeader(required, scan)
	t := g.TableAt(row)
	t.HeaderFallback = !found
	return t
}

// MissingColumns returns the required columns absent from the table's
// headers, in the order given.
func (t *Table) MissingColumns(required []string) []string {
	have := make(map[string]bool, len(t.Headers))
	for _, h := range t.Headers {
		have[h] = true
	}

	var missing []string
	for _, col := range required {
		if !have[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// cleanHeaders trims header names and gives unnamed columns a positional
// placeholder so row maps stay addressable.
func cleanHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		headers[i] = h
	}
	return headers
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
