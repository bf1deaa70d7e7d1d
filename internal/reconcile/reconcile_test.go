package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oilfieldops/axon-recon/internal/loader"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		matched, total int
		want           Status
	}{
		{"no tickets", 0, 0, StatusNotReady},
		{"none matched", 0, 3, StatusNotReady},
		{"all matched", 3, 3, StatusReadyToFlip},
		{"single matched", 1, 1, StatusReadyToFlip},
		{"partial", 2, 3, StatusPending},
		{"barely partial", 1, 100, StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.matched, tt.total))
		})
	}
}

// Classification is total: every (matched, total) pair maps to exactly one
// of the three labels.
func TestClassifyTotality(t *testing.T) {
	for total := 0; total <= 5; total++ {
		for matched := 0; matched <= total; matched++ {
			status := Classify(matched, total)
			switch {
			case matched == 0:
				assert.Equal(t, StatusNotReady, status, "matched=%d total=%d", matched, total)
			case matched == total:
				assert.Equal(t, StatusReadyToFlip, status, "matched=%d total=%d", matched, total)
			default:
				assert.Equal(t, StatusPending, status, "matched=%d total=%d", matched, total)
			}
		}
	}
}

func openSet(tickets ...string) *loader.TicketSet {
	s := &loader.TicketSet{Keys: make(map[string]struct{})}
	for _, t := range tickets {
		s.Keys[t] = struct{}{}
	}
	return s
}

func TestTickets(t *testing.T) {
	ledger := &loader.TicketLedger{Rows: []loader.LedgerRow{
		{Invoice: "1001", Tickets: "T1, T2, T3"},
		{Invoice: "1002", Tickets: ""},
		{Invoice: "1003", Tickets: "T9"},
		{Invoice: "1004", Tickets: "X1, X2"},
	}}

	results, counts := Tickets(ledger, openSet("T1", "T3", "T9"))
	require.Len(t, results, 4)

	// Pending: two of three tickets matched.
	assert.Equal(t, StatusPending, results[0].Status)
	assert.Equal(t, 2, results[0].Matched)
	assert.Equal(t, 3, results[0].Total)

	// Empty ticket cell.
	assert.Equal(t, StatusNotReady, results[1].Status)
	assert.Equal(t, 0, results[1].Matched)
	assert.Equal(t, 0, results[1].Total)

	// Fully matched.
	assert.Equal(t, StatusReadyToFlip, results[2].Status)
	assert.Equal(t, 1, results[2].Matched)
	assert.Equal(t, 1, results[2].Total)

	// Nothing matched.
	assert.Equal(t, StatusNotReady, results[3].Status)

	assert.Equal(t, TicketCounts{Rows: 4, ReadyToFlip: 1, Pending: 1, NotReady: 2}, counts)
}

func TestTicketsNormalizesBeforeMatching(t *testing.T) {
	ledger := &loader.TicketLedger{Rows: []loader.LedgerRow{
		{Invoice: "1001", Tickets: " 1,234.0 , T2 "},
	}}

	results, _ := Tickets(ledger, openSet("1", "234", "T2"))
	// " 1,234.0 " splits on the comma into tickets "1" and "234".
	assert.Equal(t, 3, results[0].Total)
	assert.Equal(t, 3, results[0].Matched)
	assert.Equal(t, StatusReadyToFlip, results[0].Status)
}

func TestTicketsCaseSensitive(t *testing.T) {
	// The ticket profile does not case-fold; g123 and G123 are distinct.
	ledger := &loader.TicketLedger{Rows: []loader.LedgerRow{
		{Invoice: "1001", Tickets: "g123"},
	}}

	results, _ := Tickets(ledger, openSet("G123"))
	assert.Equal(t, StatusNotReady, results[0].Status)
}

func TestTicketsPreservesOrder(t *testing.T) {
	ledger := &loader.TicketLedger{Rows: []loader.LedgerRow{
		{Invoice: "3"}, {Invoice: "1"}, {Invoice: "2"},
	}}

	results, _ := Tickets(ledger, openSet())
	require.Len(t, results, 3)
	assert.Equal(t, "3", results[0].Invoice)
	assert.Equal(t, "1", results[1].Invoice)
	assert.Equal(t, "2", results[2].Invoice)
}

func keyed(keyColumn string, values ...string) *loader.KeyedTable {
	t := &loader.KeyedTable{KeyColumn: keyColumn, Headers: []string{keyColumn}}
	for _, v := range values {
		t.Rows = append(t.Rows, map[string]string{keyColumn: v})
		t.Keys = append(t.Keys, v)
	}
	return t
}

func TestCompare(t *testing.T) {
	left := keyed("TicketNumber", "A", "B", "C", "C")
	right := keyed("TicketNumber", "B", "C", "D")

	p := Compare(left, right)

	assert.Len(t, p.MatchedKeys, 2)
	assert.Contains(t, p.MatchedKeys, "B")
	assert.Contains(t, p.MatchedKeys, "C")

	// Duplicate left keys keep both rows in the matched subset.
	assert.Len(t, p.LeftMatched, 3)
	assert.Len(t, p.LeftOnly, 1)
	assert.Equal(t, "A", p.LeftOnly[0]["TicketNumber"])

	assert.Len(t, p.RightMatched, 2)
	assert.Len(t, p.RightOnly, 1)
	assert.Equal(t, "D", p.RightOnly[0]["TicketNumber"])
}

// Partitions are exhaustive and disjoint on each side.
func TestComparePartitionInvariants(t *testing.T) {
	left := keyed("K", "A", "B", "C")
	right := keyed("K", "C", "D")

	p := Compare(left, right)

	assert.Equal(t, len(left.Rows), len(p.LeftMatched)+len(p.LeftOnly))
	assert.Equal(t, len(right.Rows), len(p.RightMatched)+len(p.RightOnly))

	for _, row := range p.LeftMatched {
		assert.Contains(t, p.MatchedKeys, row["K"])
	}
	for _, row := range p.LeftOnly {
		assert.NotContains(t, p.MatchedKeys, row["K"])
	}
	for _, row := range p.RightMatched {
		assert.Contains(t, p.MatchedKeys, row["K"])
	}
	for _, row := range p.RightOnly {
		assert.NotContains(t, p.MatchedKeys, row["K"])
	}
}

func TestCompareEmptySides(t *testing.T) {
	p := Compare(keyed("K"), keyed("K", "A"))
	assert.Empty(t, p.MatchedKeys)
	assert.Empty(t, p.LeftMatched)
	assert.Empty(t, p.LeftOnly)
	assert.Empty(t, p.RightMatched)
	assert.Len(t, p.RightOnly, 1)
}
