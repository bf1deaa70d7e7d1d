// =============================================================================
// AXON Reconciliation Toolkit - Reconciliation Engine
// =============================================================================
//
// Two reconciliation modes live here:
//
//   - Ticket matching (AXON ledger vs OpenInvoice): per ledger row, split the
//     multi-valued ticket cell, count how many canonical tickets appear in
//     the OpenInvoice set and classify the row. Pure, order-preserving map
//     over the ledger; no row is reordered or dropped.
//
//   - Full table comparison (two keyed tables): set-partition both tables by
//     canonical key into matched and missing subsets.
//
// Both modes are pure functions over fully loaded tables.
//
// =============================================================================

package reconcile

import (
	"github.com/oilfieldops/axon-recon/internal/loader"
	"github.com/oilfieldops/axon-recon/internal/normalize"
)

// =============================================================================
// TICKET CLASSIFICATION
// =============================================================================

// Status classifies one AXON invoice row by its ticket-level match counts.
type Status string

const (
	// StatusNotReady: the row has no usable tickets, or none of them are
	// present in OpenInvoice.
	StatusNotReady Status = "Not Ready"

	// StatusPending: some but not all tickets are present in OpenInvoice.
	StatusPending Status = "Pending"

	// StatusReadyToFlip: every ticket on the row is present in OpenInvoice.
	StatusReadyToFlip Status = "Ready to Flip"
)

// Classify maps ticket match counts onto a Status.
//
// The rule, exactly:
//
//	total == 0        -> Not Ready
//	matched == 0      -> Not Ready
//	matched == total  -> Ready to Flip
//	otherwise         -> Pending
func Classify(matched, total int) Status {
	switch {
	case total == 0:
		return StatusNotReady
	case matched == 0:
		return StatusNotReady
	case matched == total:
		return StatusReadyToFlip
	default:
		return StatusPending
	}
}

// TicketResult is one AXON ledger row annotated with its classification.
type TicketResult struct {
	loader.LedgerRow

	Status  Status
	Matched int
	Total   int
}

// TicketCounts summarizes a ticket reconciliation run.
type TicketCounts struct {
	Rows        int
	ReadyToFlip int
	Pending     int
	NotReady    int
}

// Tickets reconciles the AXON ledger against the OpenInvoice ticket set.
//
// The result preserves ledger row order one-to-one.
func Tickets(ledger *loader.TicketLedger, open *loader.TicketSet) ([]TicketResult, TicketCounts) {
	results := make([]TicketResult, 0, len(ledger.Rows))
	counts := TicketCounts{Rows: len(ledger.Rows)}

	for _, row := range ledger.Rows {
		tickets := normalize.SplitTickets(row.Tickets)

		matched := 0
		for _, t := range tickets {
			if open.Contains(t) {
				matched++
			}
		}

		status := Classify(matched, len(tickets))
		switch status {
		case StatusReadyToFlip:
			counts.ReadyToFlip++
		case StatusPending:
			counts.Pending++
		case StatusNotReady:
			counts.NotReady++
		}

		results = append(results, TicketResult{
			LedgerRow: row,
			Status:    status,
			Matched:   matched,
			Total:     len(tickets),
		})
	}

	return results, counts
}

// =============================================================================
// FULL TABLE COMPARISON
// =============================================================================

// Partition is the four-way split of two keyed tables by canonical key.
//
// Invariants: the left subsets partition the left table's rows exactly
// (likewise right); MatchedKeys is the intersection of both key sets.
type Partition struct {
	// MatchedKeys is the intersection of the two key sets.
	MatchedKeys map[string]struct{}

	// LeftMatched / LeftOnly partition the left table's rows.
	LeftMatched []map[string]string
	LeftOnly    []map[string]string

	// RightMatched / RightOnly partition the right table's rows.
	RightMatched []map[string]string
	RightOnly    []map[string]string
}

// Compare set-partitions two keyed tables. Row order within each subset
// follows source order.
func Compare(left, right *loader.KeyedTable) *Partition {
	leftKeys := left.KeySet()
	rightKeys := right.KeySet()

	p := &Partition{MatchedKeys: make(map[string]struct{})}
	for k := range leftKeys {
		if _, ok := rightKeys[k]; ok {
			p.MatchedKeys[k] = struct{}{}
		}
	}

	for i, row := range left.Rows {
		if _, ok := p.MatchedKeys[left.Keys[i]]; ok {
			p.LeftMatched = append(p.LeftMatched, row)
		} else {
			p.LeftOnly = append(p.LeftOnly, row)
		}
	}
	for i, row := range right.Rows {
		if _, ok := p.MatchedKeys[right.Keys[i]]; ok {
			p.RightMatched = append(p.RightMatched, row)
		} else {
			p.RightOnly = append(p.RightOnly, row)
		}
	}

	return p
}
