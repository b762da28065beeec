// Package tabular provides spreadsheet-like stores addressed by sheet name
// and A1-style spans. Row 1 of every sheet is a header row.
package tabular

import (
	"context"
	"errors"
)

// ErrSheetNotFound is returned when a read or write names a sheet the store
// does not have.
var ErrSheetNotFound = errors.New("sheet not found")

// Backend is a tabular store supporting range reads, row appends, row
// overwrites and range clears. Implementations do not retry and do not add
// timeouts of their own; callers rely on the transport's behaviour.
type Backend interface {
	// Read returns the cell values inside span as strings. Rows are returned
	// in sheet order starting at the span's first row; trailing empty cells
	// of a row may be omitted.
	Read(ctx context.Context, sheet, span string) ([][]string, error)
	// Append writes row after the last non-empty row of the sheet.
	Append(ctx context.Context, sheet string, row []any) error
	// Update overwrites the cells of span, left to right, with row.
	Update(ctx context.Context, sheet, span string, row []any) error
	// Clear empties every cell inside span. The row itself is kept.
	Clear(ctx context.Context, sheet, span string) error
}
