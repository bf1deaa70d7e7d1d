// =============================================================================
// AXON Reconciliation Toolkit - Report Assembly
// =============================================================================
//
// Assemblers that arrange reconciliation results into workbook sheets. Sheet
// names, column sets and column order are part of the external contract and
// are fixed here; the downstream consumers key on them.
//
// =============================================================================

package report

import (
	"fmt"

	"github.com/oilfieldops/axon-recon/internal/loader"
	"github.com/oilfieldops/axon-recon/internal/reconcile"
)

// Note is a non-fatal condition surfaced in a report's Summary sheet, such
// as a header-row fallback.
type Note struct {
	// Source names the input the condition applies to.
	Source string

	// Message describes the condition.
	Message string
}

// FallbackNote builds the note reported when a loader assumed its fallback
// header row instead of locating one.
func FallbackNote(source string, headerRow int) Note {
	return Note{
		Source:  source,
		Message: fmt.Sprintf("header row not found within scan window; assumed row %d", headerRow+1),
	}
}

// summarySheet builds a {Metric, Value} sheet with trailing warning rows for
// any notes.
func summarySheet(metrics [][]interface{}, notes []Note) Sheet {
	rows := metrics
	for _, n := range notes {
		rows = append(rows, []interface{}{fmt.Sprintf("Warning (%s)", n.Source), n.Message})
	}
	return Sheet{
		Name:    "Summary",
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}
}

// =============================================================================
// TICKET RECONCILIATION (APPROVED INVOICE STATUS)
// =============================================================================

// invoiceStatusColumns is the exact column order of the Invoice Status sheet.
var invoiceStatusColumns = []string{
	"Invoice#", "Tickets", "Date", "Name", "Balance Due",
	"Status", "Matched Tickets", "Total Tickets",
}

// Approved assembles the ticket reconciliation workbook: a Summary sheet and
// the per-invoice Invoice Status sheet.
func Approved(results []reconcile.TicketResult, counts reconcile.TicketCounts, notes []Note) *Workbook {
	statusRows := make([][]interface{}, 0, len(results))
	for _, r := range results {
		statusRows = append(statusRows, []interface{}{
			r.Invoice, r.Tickets, r.Date, r.Name, r.BalanceDue,
			string(r.Status), r.Matched, r.Total,
		})
	}

	summary := summarySheet([][]interface{}{
		{"Invoices (AXON rows)", counts.Rows},
		{"Ready to Flip", counts.ReadyToFlip},
		{"Pending", counts.Pending},
		{"Not Ready", counts.NotReady},
	}, notes)

	return &Workbook{Sheets: []Sheet{
		summary,
		{Name: "Invoice Status", Headers: invoiceStatusColumns, Rows: statusRows},
	}}
}

// =============================================================================
// FULL TABLE COMPARISON
// =============================================================================

// Comparison assembles the full-comparison workbook: a five-metric Summary
// and the four partition sheets.
func Comparison(p *reconcile.Partition, left, right *loader.KeyedTable, notes []Note) *Workbook {
	matched := len(p.MatchedKeys)

	summary := summarySheet([][]interface{}{
		{"AXON rows", len(left.Rows)},
		{"Approved rows", len(right.Rows)},
		{"Matched keys", matched},
		{"Keys missing in Approved", len(left.KeySet()) - matched},
		{"Keys missing in AXON", len(right.KeySet()) - matched},
	}, notes)

	return &Workbook{Sheets: []Sheet{
		summary,
		tableSheet("Matched_AXON", left.Headers, p.LeftMatched),
		tableSheet("Matched_Approved", right.Headers, p.RightMatched),
		tableSheet("Missing_in_Approved", left.Headers, p.LeftOnly),
		tableSheet("Missing_in_AXON", right.Headers, p.RightOnly),
	}}
}

// tableSheet renders passthrough rows under their source's headers.
func tableSheet(name string, headers []string, rows []map[string]string) Sheet {
	out := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, len(headers))
		for i, h := range headers {
			cells[i] = row[h]
		}
		out = append(out, cells)
	}
	return Sheet{Name: name, Headers: headers, Rows: out}
}
