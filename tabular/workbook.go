package tabular

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const defaultSheet = "Sheet1"

// Workbook is a Backend stored in a single .xlsx file. Every write is saved
// to disk before it returns. Access to the file is serialised.
type Workbook struct {
	mu     sync.Mutex
	path   string
	file   *excelize.File
	logger *zap.Logger
}

// OpenWorkbook opens the workbook at path, creating an empty one (and its
// parent directory) when the file does not exist yet.
func OpenWorkbook(path string, logger *zap.Logger) (*Workbook, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var f *excelize.File
	if _, err := os.Stat(path); err == nil {
		f, err = excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("open workbook %s: %w", path, err)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create workbook dir: %w", err)
			}
		}
		f = excelize.NewFile()
		if err := f.SaveAs(path); err != nil {
			return nil, fmt.Errorf("create workbook %s: %w", path, err)
		}
		logger.Info("tabular: created workbook", zap.String("path", path))
	} else {
		return nil, fmt.Errorf("stat workbook %s: %w", path, err)
	}

	return &Workbook{path: path, file: f, logger: logger}, nil
}

// Path returns the file backing the workbook.
func (w *Workbook) Path() string {
	return w.path
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

// EnsureSheet creates sheet if it is missing and writes headers into row 1
// when that row is empty. The untouched default sheet of a fresh workbook
// is renamed instead of left behind.
func (w *Workbook) EnsureSheet(sheet string, headers []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx, err := w.file.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("lookup sheet %s: %w", sheet, err)
	}
	if idx == -1 {
		if w.isPristineDefault() {
			if err := w.file.SetSheetName(defaultSheet, sheet); err != nil {
				return fmt.Errorf("rename default sheet: %w", err)
			}
		} else if _, err := w.file.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}
		w.logger.Info("tabular: created sheet", zap.String("sheet", sheet))
	}

	rows, err := w.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) > 0 && !isEmptyRow(rows[0]) {
		return w.save()
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := w.file.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write headers %s: %w", sheet, err)
	}
	return w.save()
}

// isPristineDefault reports whether the workbook only holds the empty
// default sheet excelize creates.
func (w *Workbook) isPristineDefault() bool {
	list := w.file.GetSheetList()
	if len(list) != 1 || list[0] != defaultSheet {
		return false
	}
	rows, err := w.file.GetRows(defaultSheet)
	return err == nil && len(rows) == 0
}

func (w *Workbook) Read(ctx context.Context, sheet, span string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sp, err := ParseSpan(span)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	rows, err := w.rows(sheet)
	if err != nil {
		return nil, err
	}

	last := len(rows)
	if sp.EndRow != 0 && sp.EndRow < last {
		last = sp.EndRow
	}

	var out [][]string
	for r := sp.StartRow; r <= last; r++ {
		row := rows[r-1]
		var cells []string
		for c := sp.StartCol; c <= sp.EndCol && c <= len(row); c++ {
			cells = append(cells, row[c-1])
		}
		out = append(out, trimTrailingEmpty(cells))
	}
	return out, nil
}

func (w *Workbook) Append(ctx context.Context, sheet string, row []any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	rows, err := w.rows(sheet)
	if err != nil {
		return err
	}

	next := 1
	for i := len(rows) - 1; i >= 0; i-- {
		if !isEmptyRow(rows[i]) {
			next = i + 2
			break
		}
	}

	cell, err := excelize.CoordinatesToCellName(1, next)
	if err != nil {
		return err
	}
	if err := w.file.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("append to %s: %w", sheet, err)
	}
	w.logger.Debug("tabular: appended row", zap.String("sheet", sheet), zap.Int("row", next))
	return w.save()
}

func (w *Workbook) Update(ctx context.Context, sheet, span string, row []any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sp, err := ParseSpan(span)
	if err != nil {
		return err
	}
	if sp.EndRow != sp.StartRow {
		return fmt.Errorf("update span %q must cover exactly one row", span)
	}
	if len(row) > sp.Width() {
		return fmt.Errorf("update span %q holds %d cells, got %d", span, sp.Width(), len(row))
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.rows(sheet); err != nil {
		return err
	}

	padded := make([]any, sp.Width())
	for i := range padded {
		padded[i] = ""
	}
	copy(padded, row)

	cell, err := excelize.CoordinatesToCellName(sp.StartCol, sp.StartRow)
	if err != nil {
		return err
	}
	if err := w.file.SetSheetRow(sheet, cell, &padded); err != nil {
		return fmt.Errorf("update %s!%s: %w", sheet, span, err)
	}
	return w.save()
}

func (w *Workbook) Clear(ctx context.Context, sheet, span string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sp, err := ParseSpan(span)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	rows, err := w.rows(sheet)
	if err != nil {
		return err
	}

	last := sp.EndRow
	if last == 0 {
		last = len(rows)
	}
	for r := sp.StartRow; r <= last; r++ {
		for c := sp.StartCol; c <= sp.EndCol; c++ {
			cell, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				return err
			}
			if err := w.file.SetCellStr(sheet, cell, ""); err != nil {
				return fmt.Errorf("clear %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return w.save()
}

// rows returns all raw rows of sheet. Callers hold w.mu.
func (w *Workbook) rows(sheet string) ([][]string, error) {
	idx, err := w.file.GetSheetIndex(sheet)
	if err != nil {
		return nil, err
	}
	if idx == -1 {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, sheet)
	}
	rows, err := w.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

func (w *Workbook) save() error {
	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", w.path, err)
	}
	return nil
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}

func trimTrailingEmpty(cells []string) []string {
	n := len(cells)
	for n > 0 && cells[n-1] == "" {
		n--
	}
	return cells[:n]
}
