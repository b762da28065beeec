package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ImportError is a single field-level problem on one uploaded row.
type ImportError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportResult summarises a catalogue upload.
type ImportResult struct {
	Kind      CatalogKind   `json:"kind"`
	TotalRows int           `json:"total_rows"`
	ValidRows int           `json:"valid_rows"`
	ErrorRows int           `json:"error_rows"`
	Imported  int           `json:"imported"`
	Errors    []ImportError `json:"errors"`
}

type catalogRow struct {
	row      int
	product  Product
	customer Customer
}

// ErrNoDataRows is returned for an upload without a header row followed by
// at least one data row.
var ErrNoDataRows = errors.New("file must contain a header row and at least one data row")

// uploadTable is an uploaded sheet split into its header and data rows.
type uploadTable struct {
	header []string
	rows   [][]string
}

func newUploadTable(records [][]string) (uploadTable, error) {
	if len(records) < 2 {
		return uploadTable{}, ErrNoDataRows
	}
	return uploadTable{header: records[0], rows: records[1:]}, nil
}

// uploadReaders maps a file extension to the reader of that format.
var uploadReaders = map[string]func(io.Reader) (uploadTable, error){
	".csv":  readCSVTable,
	".xlsx": readXLSXTable,
}

func readCSVTable(file io.Reader) (uploadTable, error) {
	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return uploadTable{}, fmt.Errorf("read csv: %w", err)
		}
		records = append(records, rec)
	}
	return newUploadTable(records)
}

// readXLSXTable reads the first sheet of a workbook, streaming its rows.
func readXLSXTable(file io.Reader) (uploadTable, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return uploadTable{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	it, err := f.Rows(f.GetSheetName(0))
	if err != nil {
		return uploadTable{}, fmt.Errorf("read xlsx: %w", err)
	}
	defer it.Close()

	var records [][]string
	for it.Next() {
		cols, err := it.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return uploadTable{}, fmt.Errorf("read xlsx row %d: %w", len(records)+1, err)
		}
		records = append(records, cols)
	}
	if err := it.Error(); err != nil {
		return uploadTable{}, fmt.Errorf("read xlsx: %w", err)
	}
	return newUploadTable(records)
}

// mapHeadersToFields maps uploaded column headers to field keys, matching
// either the label or the key case-insensitively. Returns one key per column
// ("" for unknown columns) and the unrecognised headers.
func mapHeadersToFields(headers []string, fields []TemplateField) ([]string, []string) {
	lookup := make(map[string]string, len(fields)*2)
	for _, f := range fields {
		lookup[strings.ToLower(strings.TrimSpace(f.Label))] = f.Key
		lookup[strings.ToLower(f.Key)] = f.Key
	}

	mapped := make([]string, len(headers))
	var unrecognized []string

	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		// Strip trailing " *" that the template adds for required fields
		norm = strings.TrimSpace(strings.TrimSuffix(norm, " *"))

		if key, ok := lookup[norm]; ok {
			mapped[i] = key
		} else {
			unrecognized = append(unrecognized, h)
		}
	}
	return mapped, unrecognized
}

// ParseCatalogFile parses and validates an uploaded .csv or .xlsx file.
// Rows that fail validation are reported in the result and left out of the
// returned rows.
func ParseCatalogFile(file io.Reader, fileName string, kind CatalogKind) (*ImportResult, []catalogRow, error) {
	read, ok := uploadReaders[strings.ToLower(filepath.Ext(fileName))]
	if !ok {
		return nil, nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	table, err := read(file)
	if err != nil {
		return nil, nil, err
	}
	headers, dataRows := table.header, table.rows

	fields := CatalogTemplateFields(kind)
	columnKeys, _ := mapHeadersToFields(headers, fields)

	keyToLabel := make(map[string]string, len(fields))
	for _, f := range fields {
		keyToLabel[f.Key] = f.Label
	}
	for _, f := range fields {
		found := false
		for _, k := range columnKeys {
			if k == f.Key {
				found = true
				break
			}
		}
		if f.AlwaysRequired && !found {
			return nil, nil, fmt.Errorf("missing required column %q", f.Label)
		}
	}

	result := &ImportResult{Kind: kind, Errors: []ImportError{}}
	var valid []catalogRow

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		data := make(map[string]string)
		for colIdx, key := range columnKeys {
			if key != "" && colIdx < len(row) {
				data[key] = strings.TrimSpace(row[colIdx])
			}
		}
		if isBlankRow(data) {
			continue
		}
		result.TotalRows++

		parsed := catalogRow{row: rowNum}
		var rowErr error
		if kind == CatalogCustomers {
			parsed.customer = Customer{
				Name:    data["name"],
				Address: data["address"],
				Mobile:  data["mobile"],
				GSTIN:   strings.ToUpper(data["gstin"]),
			}
			rowErr = parsed.customer.Validate()
		} else {
			var rate float64
			var rateErr error
			if raw := data["ratePerSqft"]; raw == "" {
				rateErr = errors.New("cannot be blank")
			} else if rate, err = cast.ToFloat64E(raw); err != nil {
				rateErr = errors.New("must be a number")
			}
			parsed.product = Product{Name: data["name"], RatePerSqft: rate, GSTPercent: ParsePercent(data["gstPercent"])}

			fieldErrs := validation.Errors{}
			if err := parsed.product.Validate(); err != nil && !errors.As(err, &fieldErrs) {
				rowErr = err
			}
			if rateErr != nil {
				fieldErrs["ratePerSqft"] = rateErr
			}
			if rowErr == nil && len(fieldErrs) > 0 {
				rowErr = fieldErrs
			}
		}

		if rowErr != nil {
			result.Errors = append(result.Errors, importErrors(rowNum, rowErr, keyToLabel)...)
			result.ErrorRows++
			continue
		}
		valid = append(valid, parsed)
	}
	result.ValidRows = len(valid)
	return result, valid, nil
}

func isBlankRow(data map[string]string) bool {
	for _, v := range data {
		if v != "" {
			return false
		}
	}
	return true
}

// importErrors flattens an ozzo validation error into per-field rows,
// ordered by field label.
func importErrors(rowNum int, err error, labels map[string]string) []ImportError {
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return []ImportError{{Row: rowNum, Field: "", Message: err.Error()}}
	}

	out := make([]ImportError, 0, len(fieldErrs))
	for key, fe := range fieldErrs {
		label := labels[key]
		if label == "" {
			label = key
		}
		out = append(out, ImportError{Row: rowNum, Field: label, Message: fe.Error()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// ImportCatalog validates an uploaded file and appends every valid row to
// the matching sheet. Invalid rows are reported, not written. A backend
// write failure stops the import and is returned with the partial result.
func (s *QuoteStore) ImportCatalog(ctx context.Context, file io.Reader, fileName string, kind CatalogKind) (*ImportResult, error) {
	result, rows, err := ParseCatalogFile(file, fileName, kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalogItem, err)
	}

	for _, r := range rows {
		if kind == CatalogCustomers {
			err = s.AddCustomer(ctx, r.customer)
		} else {
			err = s.AddProduct(ctx, r.product)
		}
		if err != nil {
			return result, fmt.Errorf("import row %d: %w", r.row, err)
		}
		result.Imported++
	}

	s.logger.Info("catalog: imported",
		zap.String("kind", string(kind)),
		zap.String("file", fileName),
		zap.Int("imported", result.Imported),
		zap.Int("error_rows", result.ErrorRows),
	)
	return result, nil
}

// GenerateErrorReport creates a downloadable .xlsx file from import errors.
func GenerateErrorReport(importErrors []ImportError) ([]byte, error) {
	const sheet = "Errors"

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("name error sheet: %w", err)
	}

	sorted := slices.Clone(importErrors)
	slices.SortStableFunc(sorted, func(a, b ImportError) int { return a.Row - b.Row })

	if err := f.SetSheetRow(sheet, "A1", &[]any{"Row #", "Field", "Error"}); err != nil {
		return nil, fmt.Errorf("write error header: %w", err)
	}
	for i, e := range sorted {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{e.Row, sanitizeExcelCell(e.Field), sanitizeExcelCell(e.Message)}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write error row %d: %w", e.Row, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#B91C1C"}, Pattern: 1},
		Border: thinBorders(),
	})
	if err == nil {
		f.SetCellStyle(sheet, "A1", "C1", style)
	}
	for col, width := range map[string]float64{"A": 8, "B": 24, "C": 60} {
		f.SetColWidth(sheet, col, col, width)
	}
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}
