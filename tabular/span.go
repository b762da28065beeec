package tabular

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Span is a parsed A1-style range. A zero EndRow means the span is open
// ended and runs to the last row of the sheet.
type Span struct {
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

// ParseSpan parses spans such as "A2:C", "A2:A", "A5:M5" or "B3".
// A missing start row defaults to 1.
func ParseSpan(s string) (Span, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Span{}, fmt.Errorf("empty span")
	}

	startRef, endRef, hasEnd := strings.Cut(s, ":")

	startCol, startRow, err := splitRef(startRef)
	if err != nil {
		return Span{}, fmt.Errorf("span %q: %w", s, err)
	}
	if startRow == 0 {
		startRow = 1
	}

	sp := Span{StartCol: startCol, StartRow: startRow, EndCol: startCol, EndRow: startRow}
	if hasEnd {
		endCol, endRow, err := splitRef(endRef)
		if err != nil {
			return Span{}, fmt.Errorf("span %q: %w", s, err)
		}
		sp.EndCol = endCol
		sp.EndRow = endRow
	}

	if sp.EndCol < sp.StartCol {
		return Span{}, fmt.Errorf("span %q: end column before start column", s)
	}
	if sp.EndRow != 0 && sp.EndRow < sp.StartRow {
		return Span{}, fmt.Errorf("span %q: end row before start row", s)
	}
	return sp, nil
}

// Width is the number of columns covered by the span.
func (sp Span) Width() int {
	return sp.EndCol - sp.StartCol + 1
}

// String renders the span back into A1 notation.
func (sp Span) String() string {
	start, _ := excelize.ColumnNumberToName(sp.StartCol)
	end, _ := excelize.ColumnNumberToName(sp.EndCol)
	if sp.EndRow == 0 {
		return fmt.Sprintf("%s%d:%s", start, sp.StartRow, end)
	}
	return fmt.Sprintf("%s%d:%s%d", start, sp.StartRow, end, sp.EndRow)
}

// RowSpan returns the span covering columns firstCol..lastCol of a single row,
// e.g. RowSpan("A", "M", 7) == "A7:M7".
func RowSpan(firstCol, lastCol string, row int) string {
	return fmt.Sprintf("%s%d:%s%d", firstCol, row, lastCol, row)
}

// splitRef splits "AB12" into column number 28 and row 12. The row part is
// optional and reported as 0 when absent.
func splitRef(ref string) (int, int, error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		i++
	}
	if i == 0 {
		return 0, 0, fmt.Errorf("reference %q has no column", ref)
	}

	col, err := excelize.ColumnNameToNumber(ref[:i])
	if err != nil {
		return 0, 0, err
	}

	if i == len(ref) {
		return col, 0, nil
	}
	row, err := strconv.Atoi(ref[i:])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("reference %q has an invalid row", ref)
	}
	return col, row, nil
}
