package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/oilfieldops/axon-recon/internal/config"
	"github.com/oilfieldops/axon-recon/internal/loader"
	"github.com/oilfieldops/axon-recon/internal/reconcile"
)

var testCustomers = []config.Customer{
	{Name: "Pioneer Natural Resources", Column: "PioneerNaturalResources"},
	{Name: "XTO Energy", Column: "XTO"},
}

func TestApprovedWorkbookShape(t *testing.T) {
	results := []reconcile.TicketResult{
		{
			LedgerRow: loader.LedgerRow{
				Invoice: "1001", Tickets: "T1, T2, T3", Date: "1/2/24",
				Name: "Pioneer Natural Resources", BalanceDue: 100.5,
			},
			Status: reconcile.StatusPending, Matched: 2, Total: 3,
		},
	}
	counts := reconcile.TicketCounts{Rows: 1, Pending: 1}

	wb := Approved(results, counts, nil)
	require.Len(t, wb.Sheets, 2)

	summary := wb.Sheets[0]
	assert.Equal(t, "Summary", summary.Name)
	assert.Equal(t, []string{"Metric", "Value"}, summary.Headers)
	require.Len(t, summary.Rows, 4)
	assert.Equal(t, []interface{}{"Invoices (AXON rows)", 1}, summary.Rows[0])
	assert.Equal(t, []interface{}{"Pending", 1}, summary.Rows[2])

	status := wb.Sheets[1]
	assert.Equal(t, "Invoice Status", status.Name)
	assert.Equal(t, []string{
		"Invoice#", "Tickets", "Date", "Name", "Balance Due",
		"Status", "Matched Tickets", "Total Tickets",
	}, status.Headers)
	require.Len(t, status.Rows, 1)
	assert.Equal(t, []interface{}{
		"1001", "T1, T2, T3", "1/2/24", "Pioneer Natural Resources", 100.5,
		"Pending", 2, 3,
	}, status.Rows[0])
}

func TestApprovedSurfacesFallbackNote(t *testing.T) {
	wb := Approved(nil, reconcile.TicketCounts{}, []Note{FallbackNote("AXON", 0)})

	summary := wb.Sheets[0]
	require.Len(t, summary.Rows, 5)
	assert.Equal(t, "Warning (AXON)", summary.Rows[4][0])
	assert.Contains(t, summary.Rows[4][1], "assumed row 1")
}

func TestComparisonWorkbook(t *testing.T) {
	left := &loader.KeyedTable{
		KeyColumn: "TicketNumber",
		Headers:   []string{"TicketNumber", "Amount"},
		Rows: []map[string]string{
			{"TicketNumber": "A", "Amount": "1"},
			{"TicketNumber": "B", "Amount": "2"},
		},
		Keys: []string{"A", "B"},
	}
	right := &loader.KeyedTable{
		KeyColumn: "TicketNumber",
		Headers:   []string{"TicketNumber"},
		Rows: []map[string]string{
			{"TicketNumber": "B"},
			{"TicketNumber": "C"},
		},
		Keys: []string{"B", "C"},
	}

	wb := Comparison(reconcile.Compare(left, right), left, right, nil)
	require.Len(t, wb.Sheets, 5)

	summary := wb.Sheets[0]
	assert.Equal(t, [][]interface{}{
		{"AXON rows", 2},
		{"Approved rows", 2},
		{"Matched keys", 1},
		{"Keys missing in Approved", 1},
		{"Keys missing in AXON", 1},
	}, summary.Rows)

	assert.Equal(t, "Matched_AXON", wb.Sheets[1].Name)
	require.Len(t, wb.Sheets[1].Rows, 1)
	assert.Equal(t, []interface{}{"B", "2"}, wb.Sheets[1].Rows[0])

	assert.Equal(t, "Matched_Approved", wb.Sheets[2].Name)
	assert.Equal(t, "Missing_in_Approved", wb.Sheets[3].Name)
	require.Len(t, wb.Sheets[3].Rows, 1)
	assert.Equal(t, []interface{}{"A", "1"}, wb.Sheets[3].Rows[0])

	assert.Equal(t, "Missing_in_AXON", wb.Sheets[4].Name)
	require.Len(t, wb.Sheets[4].Rows, 1)
	assert.Equal(t, []interface{}{"C"}, wb.Sheets[4].Rows[0])
}

func breakoutFixture() *Breakout {
	rem := &loader.Remittance{Rows: []loader.RemitRow{
		{CoCode: "CO1", Document: "D-1", InvoiceDate: "1/5/24", Reference: "140248", NetAmount: 2500},
		{CoCode: "CO1", Document: "D-2", InvoiceDate: "1/6/24", Reference: "140300", NetAmount: 750},
		{CoCode: "CO2", Document: "D-3", InvoiceDate: "1/7/24", Reference: "999999", NetAmount: 10},
		{CoCode: "CO1", Document: "D-4", InvoiceDate: "1/8/24", Reference: "140248", NetAmount: 100},
	}}
	ledger := &loader.RemitLedger{Rows: []loader.RemitLedgerRow{
		{Invoice: "140248", Name: "Pioneer Natural Resources"},
		{Invoice: "140300", Name: "XTO Energy"},
	}}
	return BuildBreakout(rem, ledger, testCustomers, "NOT FOUND IN AXON")
}

func TestBuildBreakout(t *testing.T) {
	b := breakoutFixture()

	require.Len(t, b.Rows, 4)
	assert.Equal(t, "Pioneer Natural Resources", b.Rows[0].Customer)
	assert.Equal(t, "XTO Energy", b.Rows[1].Customer)
	assert.Equal(t, "NOT FOUND IN AXON", b.Rows[2].Customer)

	// Totals sum Net Amount per recognized customer.
	assert.InDelta(t, 2600, b.Totals[0], 1e-9)
	assert.InDelta(t, 750, b.Totals[1], 1e-9)

	require.Len(t, b.NotFound, 1)
	assert.Equal(t, "999999", b.NotFound[0].Reference)
}

func TestRemittanceWorkbook(t *testing.T) {
	wb := Remittance(breakoutFixture(), nil)
	require.Len(t, wb.Sheets, 2)

	breakdown := wb.Sheets[0]
	assert.Equal(t, "Customer Breakdown", breakdown.Name)
	assert.Equal(t, []string{
		"Co Code", "Document", "Invoice Date", "Reference", "Net Amount",
		"Customer", "PioneerNaturalResources", "XTO",
	}, breakdown.Headers)

	// Four data rows plus the TOTAL row.
	require.Len(t, breakdown.Rows, 5)

	// A Pioneer row carries its amount only in the Pioneer column.
	assert.Equal(t, []interface{}{
		"CO1", "D-1", "1/5/24", "140248", 2500.0,
		"Pioneer Natural Resources", 2500.0, "",
	}, breakdown.Rows[0])

	// An unresolved row leaves both customer columns blank.
	assert.Equal(t, "NOT FOUND IN AXON", breakdown.Rows[2][5])
	assert.Equal(t, "", breakdown.Rows[2][6])
	assert.Equal(t, "", breakdown.Rows[2][7])

	// The TOTAL row carries only the label and the two totals.
	total := breakdown.Rows[4]
	assert.Equal(t, []interface{}{"", "", "", "", "", "TOTAL", 2600.0, 750.0}, total)

	notFound := wb.Sheets[1]
	assert.Equal(t, "Not Found in AXON", notFound.Name)
	assert.Equal(t, breakdown.Headers, notFound.Headers)
	require.Len(t, notFound.Rows, 1)
	assert.Equal(t, "999999", notFound.Rows[0][3])
}

// The totals in the TOTAL row equal the sums over the resolved rows exactly.
func TestRemittanceTotalsMatchRowSums(t *testing.T) {
	b := breakoutFixture()

	sums := make([]float64, len(b.Customers))
	for _, row := range b.Rows {
		for i, c := range b.Customers {
			if row.Customer == c.Name {
				sums[i] += row.NetAmount
			}
		}
	}
	for i := range b.Customers {
		assert.Equal(t, sums[i], b.Totals[i])
	}
}

func TestWorkbookWriteRoundTrip(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{
		{
			Name:    "Summary",
			Headers: []string{"Metric", "Value"},
			Rows:    [][]interface{}{{"Rows", 2}},
		},
		{
			Name:    "Invoice Status",
			Headers: []string{"Invoice#", "Balance Due"},
			Rows: [][]interface{}{
				{"1001", 10.5},
				{"1002", 0.0},
			},
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Invoice Status"}, f.GetSheetList())

	rows, err := f.GetRows("Invoice Status")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Invoice#", "Balance Due"}, rows[0])
	assert.Equal(t, "1001", rows[1][0])
	assert.Equal(t, "10.5", rows[1][1])
}

func TestWorkbookWriteEmpty(t *testing.T) {
	wb := &Workbook{}
	var buf bytes.Buffer
	assert.Error(t, wb.Write(&buf))
}
