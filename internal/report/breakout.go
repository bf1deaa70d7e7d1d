// =============================================================================
// AXON Reconciliation Toolkit - Remittance Customer Breakout
// =============================================================================
//
// Enriches the remittance table with a resolved customer name (via the AXON
// invoice lookup) and spreads each row's net amount across one column per
// recognized customer. The recognized customers are configuration, not
// code: each configured customer yields one amount column and one grand
// total.
//
// The derivation is a per-row classification followed by a column spread:
// a row's amount lands in exactly one customer column (or none), all other
// customer cells stay blank.
//
// =============================================================================

package report

import (
	"github.com/oilfieldops/axon-recon/internal/config"
	"github.com/oilfieldops/axon-recon/internal/loader"
)

// BreakoutRow is one remittance row enriched with its resolved customer.
type BreakoutRow struct {
	loader.RemitRow

	// Customer is the resolved customer name, or the not-found sentinel.
	Customer string
}

// Breakout is the computed customer breakout over one remittance table.
type Breakout struct {
	// Customers fixes the breakout column order.
	Customers []config.Customer

	// Rows holds every remittance row, in source order.
	Rows []BreakoutRow

	// Totals is the grand total of Net Amount per recognized customer,
	// parallel to Customers.
	Totals []float64

	// NotFound is the subset of Rows whose Customer is the sentinel.
	NotFound []BreakoutRow

	// NotFoundLabel is the sentinel value used.
	NotFoundLabel string
}

// BuildBreakout resolves each remittance row's customer against the AXON
// lookup and computes per-customer totals.
//
// Rows whose invoice reference is absent from the lookup get the sentinel
// label and are additionally collected into NotFound.
func BuildBreakout(rem *loader.Remittance, ledger *loader.RemitLedger, customers []config.Customer, notFoundLabel string) *Breakout {
	lookup := ledger.Lookup()

	b := &Breakout{
		Customers:     customers,
		Totals:        make([]float64, len(customers)),
		NotFoundLabel: notFoundLabel,
	}

	for _, row := range rem.Rows {
		customer, ok := lookup[row.Reference]
		if !ok {
			customer = notFoundLabel
		}

		br := BreakoutRow{RemitRow: row, Customer: customer}
		b.Rows = append(b.Rows, br)
		if !ok {
			b.NotFound = append(b.NotFound, br)
		}

		for i, c := range customers {
			if customer == c.Name {
				b.Totals[i] += row.NetAmount
			}
		}
	}

	return b
}

// =============================================================================
// WORKBOOK ASSEMBLY
// =============================================================================

// remittanceBaseColumns precede the per-customer amount columns.
var remittanceBaseColumns = []string{"Co Code", "Document", "Invoice Date", "Reference", "Net Amount", "Customer"}

// Remittance assembles the breakout workbook: the Customer Breakdown sheet
// with its trailing TOTAL row, and the Not Found in AXON sheet holding the
// unresolved subset under the same columns.
func Remittance(b *Breakout, notes []Note) *Workbook {
	headers := append(append([]string{}, remittanceBaseColumns...), customerColumns(b.Customers)...)

	breakdown := make([][]interface{}, 0, len(b.Rows)+1)
	for _, row := range b.Rows {
		breakdown = append(breakdown, breakoutCells(row, b.Customers))
	}
	breakdown = append(breakdown, totalRow(b))

	notFound := make([][]interface{}, 0, len(b.NotFound))
	for _, row := range b.NotFound {
		notFound = append(notFound, breakoutCells(row, b.Customers))
	}

	sheets := []Sheet{
		{Name: "Customer Breakdown", Headers: headers, Rows: breakdown},
		{Name: "Not Found in AXON", Headers: headers, Rows: notFound},
	}
	if len(notes) > 0 {
		sheets = append(sheets, summarySheet(nil, notes))
	}

	return &Workbook{Sheets: sheets}
}

func customerColumns(customers []config.Customer) []string {
	cols := make([]string, len(customers))
	for i, c := range customers {
		cols[i] = c.Column
	}
	return cols
}

// breakoutCells renders one row: base columns, then the amount under the
// matching customer column and blanks everywhere else.
func breakoutCells(row BreakoutRow, customers []config.Customer) []interface{} {
	cells := []interface{}{
		row.CoCode, row.Document, row.InvoiceDate, row.Reference, row.NetAmount, row.Customer,
	}
	for _, c := range customers {
		if row.Customer == c.Name {
			cells = append(cells, row.NetAmount)
		} else {
			cells = append(cells, "")
		}
	}
	return cells
}

// totalRow carries only the per-customer grand totals; every other cell is
// blank except the Customer label.
func totalRow(b *Breakout) []interface{} {
	cells := []interface{}{"", "", "", "", "", "TOTAL"}
	for _, total := range b.Totals {
		cells = append(cells, total)
	}
	return cells
}
