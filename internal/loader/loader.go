// =============================================================================
// AXON Reconciliation Toolkit - Source Loaders
// =============================================================================
//
// One loader per source contract. Every loader follows the same shape:
//
//   1. Locate the header row within the scan window (tabular.Resolve).
//   2. Fail with a SchemaError naming the exact missing columns if any
//      required column is absent after header trimming.
//   3. Select the contract's columns, normalize the key column(s), coerce
//      numeric columns (invalid values become 0.0), and drop rows whose
//      normalized key is empty where the contract filters.
//
// The loaders are the only place that knows which columns each export must
// carry; the reconcile and report packages work on the typed results.
//
// =============================================================================

package loader

import (
	"fmt"
	"strings"

	"github.com/oilfieldops/axon-recon/internal/normalize"
	"github.com/oilfieldops/axon-recon/internal/tabular"
)

// =============================================================================
// SCHEMA ERROR
// =============================================================================

// SchemaError reports required columns absent from a source after header
// detection and trimming. It is fatal for the surrounding operation.
type SchemaError struct {
	// Source is the human-readable source label, e.g. "AXON" or "OpenInvoice".
	Source string

	// Missing lists the absent column names, in contract order.
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s missing columns: [%s]", e.Source, strings.Join(e.Missing, ", "))
}

// schemaCheck builds the SchemaError for a resolved table, or nil when every
// required column is present.
func schemaCheck(t *tabular.Table, source string, required []string) error {
	if missing := t.MissingColumns(required); len(missing) > 0 {
		return &SchemaError{Source: source, Missing: missing}
	}
	return nil
}

// =============================================================================
// AXON TICKET LEDGER
// =============================================================================

// TicketLedgerColumns is the required column set of the AXON ledger export
// used for ticket reconciliation.
var TicketLedgerColumns = []string{"Invoice#", "Tickets", "Date", "Name", "Balance Due"}

// LedgerRow is one AXON invoice row. Tickets is kept raw (possibly
// multi-valued, comma-separated); it is split and normalized at
// reconciliation time so the report can echo the original cell.
type LedgerRow struct {
	Invoice    string
	Tickets    string
	Date       string
	Name       string
	BalanceDue float64
}

// TicketLedger is the validated AXON ledger table.
type TicketLedger struct {
	Rows []LedgerRow

	// HeaderRow / HeaderFallback record how the header was found; the
	// fallback case is surfaced in the report summary.
	HeaderRow      int
	HeaderFallback bool
}

// LoadTicketLedger reads and validates the AXON ledger export.
//
// Invoice numbers are normalized with the ticket profile and rows whose
// normalized invoice is empty are dropped. Rows with an empty Tickets cell
// are NOT dropped; they classify as Not Ready downstream.
func LoadTicketLedger(g *tabular.Grid, scan tabular.HeaderScan) (*TicketLedger, error) {
	t := g.Resolve(TicketLedgerColumns, scan)
	if err := schemaCheck(t, "AXON", TicketLedgerColumns); err != nil {
		return nil, err
	}

	ledger := &TicketLedger{HeaderRow: t.HeaderRow, HeaderFallback: t.HeaderFallback}
	for _, row := range t.Rows {
		invoice := normalize.Ticket(row["Invoice#"])
		if invoice == "" {
			continue
		}
		ledger.Rows = append(ledger.Rows, LedgerRow{
			Invoice:    invoice,
			Tickets:    strings.TrimSpace(row["Tickets"]),
			Date:       row["Date"],
			Name:       strings.TrimSpace(row["Name"]),
			BalanceDue: normalize.Amount(row["Balance Due"]),
		})
	}

	return ledger, nil
}

// =============================================================================
// OPENINVOICE TICKET EXPORT
// =============================================================================

// OpenInvoiceColumns is the required column set of the OpenInvoice export.
var OpenInvoiceColumns = []string{"Ticket"}

// TicketSet is the set of canonical tickets present in the OpenInvoice
// export.
type TicketSet struct {
	// Keys holds the normalized tickets.
	Keys map[string]struct{}

	// RowCount is the number of rows that survived filtering.
	RowCount int

	HeaderRow      int
	HeaderFallback bool
}

// Contains reports whether the canonical ticket is present.
func (s *TicketSet) Contains(ticket string) bool {
	_, ok := s.Keys[ticket]
	return ok
}

// LoadOpenInvoice reads the OpenInvoice export and collects its canonical
// ticket set. Tickets are normalized with the ticket profile; rows that
// normalize to the empty string are dropped.
func LoadOpenInvoice(g *tabular.Grid, scan tabular.HeaderScan) (*TicketSet, error) {
	t := g.Resolve(OpenInvoiceColumns, scan)
	if err := schemaCheck(t, "OpenInvoice", OpenInvoiceColumns); err != nil {
		return nil, err
	}

	set := &TicketSet{
		Keys:           make(map[string]struct{}, len(t.Rows)),
		HeaderRow:      t.HeaderRow,
		HeaderFallback: t.HeaderFallback,
	}
	for _, row := range t.Rows {
		ticket := normalize.Ticket(row["Ticket"])
		if ticket == "" {
			continue
		}
		set.Keys[ticket] = struct{}{}
		set.RowCount++
	}

	return set, nil
}

// =============================================================================
// AXON REMITTANCE LEDGER
// =============================================================================

// RemitLedgerColumns is the required column set of the AXON export feeding
// the remittance breakout.
var RemitLedgerColumns = []string{"Invoice#", "Name", "Amount"}

// RemitLedgerRow maps one AXON invoice onto its customer name.
type RemitLedgerRow struct {
	Invoice string
	Name    string
	Amount  float64
}

// RemitLedger is the deduplicated invoice -> customer source.
type RemitLedger struct {
	Rows []RemitLedgerRow

	HeaderRow      int
	HeaderFallback bool
}

// Lookup builds the invoice -> customer name map. Rows was deduplicated at
// load time, so every invoice appears once.
func (l *RemitLedger) Lookup() map[string]string {
	m := make(map[string]string, len(l.Rows))
	for _, r := range l.Rows {
		m[r.Invoice] = r.Name
	}
	return m
}

// LoadRemitLedger reads the AXON remittance ledger.
//
// Invoice numbers are normalized with the ticket profile; rows with an empty
// normalized invoice are dropped, and duplicates are collapsed keeping the
// first occurrence. The Amount column is carried for future cross-checks but
// does not feed the breakout totals.
func LoadRemitLedger(g *tabular.Grid, scan tabular.HeaderScan) (*RemitLedger, error) {
	t := g.Resolve(RemitLedgerColumns, scan)
	if err := schemaCheck(t, "AXON", RemitLedgerColumns); err != nil {
		return nil, err
	}

	ledger := &RemitLedger{HeaderRow: t.HeaderRow, HeaderFallback: t.HeaderFallback}
	seen := make(map[string]bool, len(t.Rows))
	for _, row := range t.Rows {
		invoice := normalize.Ticket(row["Invoice#"])
		if invoice == "" || seen[invoice] {
			continue
		}
		seen[invoice] = true
		ledger.Rows = append(ledger.Rows, RemitLedgerRow{
			Invoice: invoice,
			Name:    strings.TrimSpace(row["Name"]),
			Amount:  normalize.Amount(row["Amount"]),
		})
	}

	return ledger, nil
}

// =============================================================================
// REMITTANCE REPORT
// =============================================================================

// RemittanceColumns is the required column set of the remittance report.
var RemittanceColumns = []string{"Co Code", "Document", "Invoice Date", "Reference", "Net Amount"}

// RemitRow is one remittance line. Reference holds the canonical invoice
// number used to resolve the customer.
type RemitRow struct {
	CoCode      string
	Document    string
	InvoiceDate string
	Reference   string
	NetAmount   float64
}

// Remittance is the validated remittance table.
type Remittance struct {
	Rows []RemitRow

	HeaderRow      int
	HeaderFallback bool
}

// LoadRemittance reads the remittance report. References are normalized with
// the ticket profile and rows with an empty normalized reference are
// dropped; Net Amount is coerced to a number.
func LoadRemittance(g *tabular.Grid, scan tabular.HeaderScan) (*Remittance, error) {
	t := g.Resolve(RemittanceColumns, scan)
	if err := schemaCheck(t, "Remittance", RemittanceColumns); err != nil {
		return nil, err
	}

	rem := &Remittance{HeaderRow: t.HeaderRow, HeaderFallback: t.HeaderFallback}
	for _, row := range t.Rows {
		ref := normalize.Ticket(row["Reference"])
		if ref == "" {
			continue
		}
		rem.Rows = append(rem.Rows, RemitRow{
			CoCode:      row["Co Code"],
			Document:    row["Document"],
			InvoiceDate: row["Invoice Date"],
			Reference:   ref,
			NetAmount:   normalize.Amount(row["Net Amount"]),
		})
	}

	return rem, nil
}

// =============================================================================
// GENERIC KEYED SOURCE (FULL COMPARISON)
// =============================================================================

// KeyedTable is a source keyed on one configurable column for the full table
// comparison. All columns are carried through; the canonical key per row is
// held alongside the raw row so report sheets can echo the original cells.
type KeyedTable struct {
	Source    string
	KeyColumn string
	Headers   []string
	Rows      []map[string]string

	// Keys holds the canonical key of each row, parallel to Rows.
	Keys []string

	HeaderRow      int
	HeaderFallback bool
}

// KeySet returns the distinct canonical keys of the table.
func (t *KeyedTable) KeySet() map[string]struct{} {
	set := make(map[string]struct{}, len(t.Keys))
	for _, k := range t.Keys {
		set[k] = struct{}{}
	}
	return set
}

// LoadKeyed reads a comparison source keyed on keyColumn.
//
// Keys are normalized with the alphanumeric-key profile (whitespace and
// hyphens removed, uppercased); rows whose normalized key is empty are
// dropped.
func LoadKeyed(g *tabular.Grid, source, keyColumn string, scan tabular.HeaderScan) (*KeyedTable, error) {
	required := []string{keyColumn}
	t := g.Resolve(required, scan)
	if err := schemaCheck(t, source, required); err != nil {
		return nil, err
	}

	keyed := &KeyedTable{
		Source:         source,
		KeyColumn:      keyColumn,
		Headers:        t.Headers,
		HeaderRow:      t.HeaderRow,
		HeaderFallback: t.HeaderFallback,
	}
	for _, row := range t.Rows {
		key := normalize.Key(row[keyColumn])
		if key == "" {
			continue
		}
		keyed.Rows = append(keyed.Rows, row)
		keyed.Keys = append(keyed.Keys, key)
	}

	return keyed, nil
}
