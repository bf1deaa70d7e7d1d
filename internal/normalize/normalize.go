// =============================================================================
// AXON Reconciliation Toolkit - Field Normalization
// =============================================================================
//
// This module canonicalizes identifier-like cell values so that equivalent
// values expressed in different textual forms compare equal across sources.
// Spreadsheet exports mangle identifiers in predictable ways:
//   - Numeric coercion turns "140248" into "140248.0"
//   - Thousands formatting turns "140248" into "140,248"
//   - Copy/paste introduces stray leading and trailing whitespace
//
// Two profiles are provided:
//   - Ticket  : for AXON ticket and invoice numbers. Strips the float artifact,
//               removes commas and spaces. Case is PRESERVED (G-prefixed
//               tickets keep their prefix exactly as exported).
//   - Key     : for free-form alphanumeric join keys. Removes all whitespace
//               and hyphens and uppercases.
//
// All functions are pure and idempotent, and never fail: missing or
// unparseable input maps to the empty string.
//
// =============================================================================

package normalize

import (
	"strconv"
	"strings"
	"unicode"
)

// =============================================================================
// NORMALIZATION PROFILES
// =============================================================================

// Ticket canonicalizes an AXON ticket or invoice number.
//
// Steps, in order:
//  1. Trim surrounding whitespace.
//  2. Strip a single trailing ".0" left behind by numeric cell coercion.
//  3. Remove internal commas and spaces.
//
// The order matters: "140,248.0" must first lose the ".0" suffix and then the
// comma, producing "140248".
func Ticket(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".0")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

// Key canonicalizes a free-form alphanumeric join key.
//
// Unlike Ticket, this profile is aggressive: all whitespace (including tabs
// and non-breaking spaces) and hyphens are removed, and the result is
// uppercased. "ab-12 34" and "AB1234" compare equal under this profile.
func Key(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// =============================================================================
// TICKET SPLITTING
// =============================================================================

// SplitTickets splits a multi-valued AXON ticket cell into individual
// canonical tickets.
//
// AXON exports separate tickets with ", " but splitting on the bare comma is
// safest. Each part is trimmed and normalized with the Ticket profile; parts
// that normalize to the empty string are dropped.
func SplitTickets(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}

	var tickets []string
	for _, part := range strings.Split(cell, ",") {
		if t := Ticket(part); t != "" {
			tickets = append(tickets, t)
		}
	}
	return tickets
}

// =============================================================================
// NUMERIC COERCION
// =============================================================================

// Amount coerces a cell value to a float64 amount.
//
// Mirrors the tolerant coercion the loaders apply to money columns: values
// that cannot be parsed (including the empty string) become 0.0 rather than
// an error. Thousands separators are tolerated.
func Amount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0.0
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Retry without thousands separators: "1,234.56".
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
		return f
	}
	return 0.0
}
