package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicket(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "12345", "12345"},
		{"surrounding whitespace", "  12345  ", "12345"},
		{"float artifact", "12345.0", "12345"},
		{"thousands separator", "12,345", "12345"},
		{"separator and artifact", "12,345.0", "12345"},
		{"internal space", "12 345", "12345"},
		{"g-prefixed ticket keeps case", "G123456", "G123456"},
		{"lowercase preserved", "g123456", "g123456"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Ticket(tt.in))
		})
	}
}

func TestTicketCollapsesEquivalentForms(t *testing.T) {
	forms := []string{"12345", "12,345", " 12345 ", "12345.0"}
	for _, f := range forms {
		assert.Equal(t, "12345", Ticket(f), "form %q", f)
	}
}

func TestTicketIdempotent(t *testing.T) {
	inputs := []string{"12345", "12,345.0", " G1 2,3 ", "", "abc.0"}
	for _, in := range inputs {
		once := Ticket(in)
		assert.Equal(t, once, Ticket(once), "input %q", in)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"uppercases", "abc123", "ABC123"},
		{"removes hyphens", "AB-12-34", "AB1234"},
		{"removes whitespace", " ab 12\t34 ", "AB1234"},
		{"mixed", "tk-100 a", "TK100A"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.in))
		})
	}
}

func TestKeyIdempotent(t *testing.T) {
	for _, in := range []string{"ab-12 34", "ALREADY", ""} {
		once := Key(in)
		assert.Equal(t, once, Key(once))
	}
}

func TestSplitTickets(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"comma space separated", "T1, T2, T3", []string{"T1", "T2", "T3"}},
		{"bare commas", "T1,T2", []string{"T1", "T2"}},
		{"single", "T9", []string{"T9"}},
		{"empty cell", "", nil},
		{"whitespace cell", "   ", nil},
		{"empty parts dropped", "T1,, ,T2", []string{"T1", "T2"}},
		{"parts normalized", " 1,234.0 ", []string{"1", "234"}},
		{"float artifact per part", "100.0, 200.0", []string{"100", "200"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTickets(tt.in))
		})
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"plain", "1234.5", 1234.5},
		{"integer", "42", 42},
		{"thousands separator", "1,234.56", 1234.56},
		{"negative", "-10.25", -10.25},
		{"empty", "", 0},
		{"garbage", "n/a", 0},
		{"whitespace", "  99  ", 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Amount(tt.in), 1e-9)
		})
	}
}
