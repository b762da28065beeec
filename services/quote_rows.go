package services

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"drapequote/tabular"
)

// SheetSchema is the fixed column layout of one sheet. Row 1 holds the
// column names; data starts at row 2.
type SheetSchema struct {
	Name    string
	Columns []string
}

var (
	ProductsSheet = SheetSchema{
		Name:    "Products",
		Columns: []string{"name", "ratePerSqft", "gstPercent"},
	}
	CustomersSheet = SheetSchema{
		Name:    "Customers",
		Columns: []string{"name", "address", "mobile", "gstin"},
	}
	QuotationsSheet = SheetSchema{
		Name: "Quotations",
		Columns: []string{
			"quotationNo", "dateISO", "customerName", "gstin", "address", "mobile",
			"itemsJSON", "subtotal", "totalGst", "grandTotal", "notes", "createdAt", "updatedAt",
		},
	}
)

// Schemas lists every sheet the quotation store uses.
func Schemas() []SheetSchema {
	return []SheetSchema{ProductsSheet, CustomersSheet, QuotationsSheet}
}

// LastCol is the letter of the schema's final column.
func (s SheetSchema) LastCol() string {
	return columnName(len(s.Columns))
}

// DataSpan covers every data row, e.g. "A2:M".
func (s SheetSchema) DataSpan() string {
	return "A2:" + s.LastCol()
}

// RowSpan covers all schema columns of a single row.
func (s SheetSchema) RowSpan(row int) string {
	return tabular.RowSpan("A", s.LastCol(), row)
}

func columnName(n int) string {
	name := ""
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return name
}

// RowError reports a data row that could not be decoded.
type RowError struct {
	Sheet string
	Row   int
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s row %d: %v", e.Sheet, e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// cell returns column i of row, trimmed. Short rows yield "".
func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// numberCell reads a numeric column. An empty cell is zero; anything else
// that is not a number is an error.
func numberCell(row []string, i int, column string) (float64, error) {
	s := cell(row, i)
	if s == "" {
		return 0, nil
	}
	f, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", column, s)
	}
	return f, nil
}

func decodeProductRow(row []string) (Product, error) {
	rate, err := numberCell(row, 1, "ratePerSqft")
	if err != nil {
		return Product{}, err
	}
	p := Product{
		Name:        cell(row, 0),
		RatePerSqft: rate,
		GSTPercent:  ParsePercent(cell(row, 2)),
	}
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

func encodeProductRow(p Product) []any {
	return []any{p.Name, p.RatePerSqft, p.GSTPercent}
}

func decodeCustomerRow(row []string) (Customer, error) {
	c := Customer{
		Name:    cell(row, 0),
		Address: cell(row, 1),
		Mobile:  cell(row, 2),
		GSTIN:   cell(row, 3),
	}
	if err := c.Validate(); err != nil {
		return Customer{}, err
	}
	return c, nil
}

func encodeCustomerRow(c Customer) []any {
	return []any{c.Name, c.Address, c.Mobile, c.GSTIN}
}

// decodeQuotationRow rebuilds a quote from its row. Item amounts and quote
// totals are recomputed from the items blob, so stored totals never
// override the items they summarise.
func decodeQuotationRow(row []string) (Quote, error) {
	items, err := DecodeItems(cell(row, 6))
	if err != nil {
		return Quote{}, err
	}

	q := Quote{
		QuotationNo: cell(row, 0),
		DateISO:     cell(row, 1),
		Customer: Customer{
			Name:    cell(row, 2),
			GSTIN:   cell(row, 3),
			Address: cell(row, 4),
			Mobile:  cell(row, 5),
		},
		Items:     items,
		Notes:     cell(row, 10),
		CreatedAt: cell(row, 11),
		UpdatedAt: cell(row, 12),
	}
	q.Recompute()
	return q, nil
}

func encodeQuotationRow(q Quote) ([]any, error) {
	blob, err := EncodeItems(q.Items)
	if err != nil {
		return nil, err
	}
	return []any{
		q.QuotationNo,
		q.DateISO,
		q.Customer.Name,
		q.Customer.GSTIN,
		q.Customer.Address,
		q.Customer.Mobile,
		blob,
		q.Subtotal,
		q.TotalGST,
		q.GrandTotal,
		q.Notes,
		q.CreatedAt,
		q.UpdatedAt,
	}, nil
}
