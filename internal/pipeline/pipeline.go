// =============================================================================
// AXON Reconciliation Toolkit - Operation Pipelines
// =============================================================================
//
// One function per reconciliation operation, shared by the CLI commands and
// the HTTP front-end. Each pipeline has the same shape:
//
//   raw grids -> loaders -> reconcile/aggregate -> workbook
//
// Pipelines are synchronous and request-scoped: both inputs are fully read
// before any computation, nothing is shared between invocations, and a
// failure aborts the whole operation with no partial result.
//
// =============================================================================

package pipeline

import (
	"github.com/oilfieldops/axon-recon/internal/config"
	"github.com/oilfieldops/axon-recon/internal/loader"
	"github.com/oilfieldops/axon-recon/internal/reconcile"
	"github.com/oilfieldops/axon-recon/internal/report"
	"github.com/oilfieldops/axon-recon/internal/tabular"
)

// ticketScan builds the header scan used by the ticket reconciliation
// loaders.
func ticketScan(cfg *config.Config) tabular.HeaderScan {
	return tabular.HeaderScan{MaxRows: cfg.Scan.MaxRows, Fallback: cfg.Scan.TicketFallbackRow}
}

// remitLedgerScan builds the header scan for the AXON remittance ledger,
// whose fallback sits below the export's fixed metadata block.
func remitLedgerScan(cfg *config.Config) tabular.HeaderScan {
	return tabular.HeaderScan{MaxRows: cfg.Scan.MaxRows, Fallback: cfg.Scan.RemittanceFallbackRow}
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Approved runs the ticket reconciliation: AXON ledger vs OpenInvoice.
func Approved(axonGrid, openGrid *tabular.Grid, cfg *config.Config) (*report.Workbook, error) {
	ledger, err := loader.LoadTicketLedger(axonGrid, ticketScan(cfg))
	if err != nil {
		return nil, err
	}

	open, err := loader.LoadOpenInvoice(openGrid, ticketScan(cfg))
	if err != nil {
		return nil, err
	}

	var notes []report.Note
	if ledger.HeaderFallback {
		notes = append(notes, report.FallbackNote("AXON", ledger.HeaderRow))
	}
	if open.HeaderFallback {
		notes = append(notes, report.FallbackNote("OpenInvoice", open.HeaderRow))
	}

	results, counts := reconcile.Tickets(ledger, open)
	return report.Approved(results, counts, notes), nil
}

// Comparison runs the full table comparison between the AXON export and the
// approved list, both keyed on keyColumn.
func Comparison(axonGrid, approvedGrid *tabular.Grid, keyColumn string, cfg *config.Config) (*report.Workbook, error) {
	left, err := loader.LoadKeyed(axonGrid, "AXON", keyColumn, ticketScan(cfg))
	if err != nil {
		return nil, err
	}

	right, err := loader.LoadKeyed(approvedGrid, "Approved", keyColumn, ticketScan(cfg))
	if err != nil {
		return nil, err
	}

	var notes []report.Note
	if left.HeaderFallback {
		notes = append(notes, report.FallbackNote("AXON", left.HeaderRow))
	}
	if right.HeaderFallback {
		notes = append(notes, report.FallbackNote("Approved", right.HeaderRow))
	}

	return report.Comparison(reconcile.Compare(left, right), left, right, notes), nil
}

// Remittance runs the customer breakout: the remittance report against the
// AXON invoice -> customer lookup.
func Remittance(axonGrid, remGrid *tabular.Grid, cfg *config.Config) (*report.Workbook, error) {
	ledger, err := loader.LoadRemitLedger(axonGrid, remitLedgerScan(cfg))
	if err != nil {
		return nil, err
	}

	rem, err := loader.LoadRemittance(remGrid, ticketScan(cfg))
	if err != nil {
		return nil, err
	}

	var notes []report.Note
	if ledger.HeaderFallback {
		notes = append(notes, report.FallbackNote("AXON", ledger.HeaderRow))
	}
	if rem.HeaderFallback {
		notes = append(notes, report.FallbackNote("Remittance", rem.HeaderRow))
	}

	breakout := report.BuildBreakout(rem, ledger, cfg.Customers, cfg.NotFoundLabel)
	return report.Remittance(breakout, notes), nil
}
