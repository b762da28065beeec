package services

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Numbering describes how quotation numbers are formed: Prefix followed by
// an integer greater than Floor.
type Numbering struct {
	Prefix string
	Floor  int
}

// DefaultNumbering yields QT1001, QT1002, ...
func DefaultNumbering() Numbering {
	return Numbering{Prefix: "QT", Floor: 1000}
}

// Format renders sequence n with the prefix.
func (n Numbering) Format(seq int) string {
	return n.Prefix + strconv.Itoa(seq)
}

// Sequence extracts the integer suffix of a number carrying this prefix.
func (n Numbering) Sequence(quotationNo string) (int, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(quotationNo), n.Prefix)
	if !ok || rest == "" {
		return 0, false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	seq, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return seq, true
}

// NextNumberFrom returns the number after the highest one in existing.
// Strings that do not match <Prefix><digits> are ignored, and the result
// is never below Floor+1.
func (n Numbering) NextNumberFrom(existing []string) string {
	highest := n.Floor
	for _, s := range existing {
		if seq, ok := n.Sequence(s); ok && seq > highest {
			highest = seq
		}
	}
	return n.Format(highest + 1)
}

// NextQuotationNumber scans column A of the Quotations sheet on every call.
// When the read fails it falls back to the first number above the floor;
// the result is best effort and not unique under concurrent writers.
func (s *QuoteStore) NextQuotationNumber(ctx context.Context) string {
	rows, err := s.backend.Read(ctx, QuotationsSheet.Name, "A2:A")
	if err != nil {
		s.logger.Warn("quotes: numbering read failed, using floor", zap.Error(err))
		return s.numbering.Format(s.numbering.Floor + 1)
	}

	existing := make([]string, 0, len(rows))
	for _, row := range rows {
		if v := cell(row, 0); v != "" {
			existing = append(existing, v)
		}
	}
	return s.numbering.NextNumberFrom(existing)
}
