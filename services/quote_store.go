package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"drapequote/tabular"
)

var (
	ErrQuotationNotFound  = errors.New("quotation not found")
	ErrQuotationExists    = errors.New("quotation number already in use")
	ErrInvalidQuote       = errors.New("invalid quotation")
	ErrInvalidCatalogItem = errors.New("invalid catalogue entry")
)

// QuoteStore reads and writes products, customers and quotations through a
// tabular backend. Reads degrade to empty results when the backend fails;
// writes return the failure. Nothing is cached between calls.
type QuoteStore struct {
	backend   tabular.Backend
	numbering Numbering
	logger    *zap.Logger
	now       func() time.Time
}

func NewQuoteStore(backend tabular.Backend, numbering Numbering, logger *zap.Logger) *QuoteStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuoteStore{
		backend:   backend,
		numbering: numbering,
		logger:    logger,
		now:       time.Now,
	}
}

// Numbering returns the store's quotation numbering scheme.
func (s *QuoteStore) Numbering() Numbering {
	return s.numbering
}

// ListProducts returns every product row with a name. Malformed rows are
// logged and skipped.
func (s *QuoteStore) ListProducts(ctx context.Context) []Product {
	rows, err := s.backend.Read(ctx, ProductsSheet.Name, ProductsSheet.DataSpan())
	if err != nil {
		s.logger.Warn("quotes: list products failed", zap.Error(err))
		return []Product{}
	}

	products := make([]Product, 0, len(rows))
	for i, row := range rows {
		if cell(row, 0) == "" {
			continue
		}
		p, err := decodeProductRow(row)
		if err != nil {
			s.logger.Warn("quotes: skipped product row", zap.Error(&RowError{Sheet: ProductsSheet.Name, Row: i + 2, Err: err}))
			continue
		}
		products = append(products, p)
	}
	return products
}

// ListCustomers returns every valid customer row. Rows that fail
// validation are logged and skipped.
func (s *QuoteStore) ListCustomers(ctx context.Context) []Customer {
	rows, err := s.backend.Read(ctx, CustomersSheet.Name, CustomersSheet.DataSpan())
	if err != nil {
		s.logger.Warn("quotes: list customers failed", zap.Error(err))
		return []Customer{}
	}

	customers := make([]Customer, 0, len(rows))
	for i, row := range rows {
		if cell(row, 0) == "" {
			continue
		}
		c, err := decodeCustomerRow(row)
		if err != nil {
			s.logger.Warn("quotes: skipped customer row", zap.Error(&RowError{Sheet: CustomersSheet.Name, Row: i + 2, Err: err}))
			continue
		}
		customers = append(customers, c)
	}
	return customers
}

// AddProduct appends p to the Products sheet.
func (s *QuoteStore) AddProduct(ctx context.Context, p Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCatalogItem, err)
	}
	if err := s.backend.Append(ctx, ProductsSheet.Name, encodeProductRow(p)); err != nil {
		s.logger.Error("quotes: add product failed", zap.String("name", p.Name), zap.Error(err))
		return fmt.Errorf("add product %s: %w", p.Name, err)
	}
	return nil
}

// AddCustomer appends c to the Customers sheet. The mobile number is stored
// in its normalised 10-digit form.
func (s *QuoteStore) AddCustomer(ctx context.Context, c Customer) error {
	c.Name = strings.TrimSpace(c.Name)
	c.GSTIN = strings.ToUpper(strings.TrimSpace(c.GSTIN))
	if err := c.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCatalogItem, err)
	}
	c.Mobile = NormalizeMobile(c.Mobile)
	if err := s.backend.Append(ctx, CustomersSheet.Name, encodeCustomerRow(c)); err != nil {
		s.logger.Error("quotes: add customer failed", zap.String("name", c.Name), zap.Error(err))
		return fmt.Errorf("add customer %s: %w", c.Name, err)
	}
	return nil
}

// AppendQuotation saves q as a new row. An empty quotation number is
// allocated from the sheet, an empty date defaults to today, and items and
// totals are recomputed before the row is written. q is updated in place.
func (s *QuoteStore) AppendQuotation(ctx context.Context, q *Quote) error {
	now := s.now()
	if strings.TrimSpace(q.QuotationNo) == "" {
		q.QuotationNo = s.NextQuotationNumber(ctx)
	}
	q.QuotationNo = strings.TrimSpace(q.QuotationNo)
	if q.DateISO == "" {
		q.DateISO = now.Format(dateLayout)
	}
	q.Recompute()
	if err := q.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuote, err)
	}

	if _, err := s.FindRowIndex(ctx, q.QuotationNo); err == nil {
		return fmt.Errorf("%w: %s", ErrQuotationExists, q.QuotationNo)
	}

	stamp := now.UTC().Format(time.RFC3339)
	q.CreatedAt = stamp
	q.UpdatedAt = stamp

	row, err := encodeQuotationRow(*q)
	if err != nil {
		return err
	}
	if err := s.backend.Append(ctx, QuotationsSheet.Name, row); err != nil {
		s.logger.Error("quotes: append failed", zap.String("quotation_no", q.QuotationNo), zap.Error(err))
		return fmt.Errorf("append quotation %s: %w", q.QuotationNo, err)
	}
	s.logger.Info("quotes: appended",
		zap.String("quotation_no", q.QuotationNo),
		zap.Int("items", len(q.Items)),
		zap.Float64("grand_total", q.GrandTotal),
	)
	return nil
}

// FindRowIndex returns the 1-based sheet row holding quotationNo, matched
// exactly after trimming. A read failure is returned as an error so that
// writes depending on the lookup do not proceed.
func (s *QuoteStore) FindRowIndex(ctx context.Context, quotationNo string) (int, error) {
	want := strings.TrimSpace(quotationNo)
	if want == "" {
		return 0, fmt.Errorf("%w: empty quotation number", ErrQuotationNotFound)
	}

	rows, err := s.backend.Read(ctx, QuotationsSheet.Name, "A2:A")
	if err != nil {
		return 0, fmt.Errorf("lookup quotation %s: %w", want, err)
	}
	for i, row := range rows {
		if cell(row, 0) == want {
			return i + 2, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrQuotationNotFound, want)
}

// GetQuotation loads a single quotation by number.
func (s *QuoteStore) GetQuotation(ctx context.Context, quotationNo string) (Quote, error) {
	rowNum, err := s.FindRowIndex(ctx, quotationNo)
	if err != nil {
		return Quote{}, err
	}

	rows, err := s.backend.Read(ctx, QuotationsSheet.Name, QuotationsSheet.RowSpan(rowNum))
	if err != nil {
		return Quote{}, fmt.Errorf("read quotation %s: %w", quotationNo, err)
	}
	if len(rows) == 0 {
		return Quote{}, fmt.Errorf("%w: %s", ErrQuotationNotFound, quotationNo)
	}

	q, err := decodeQuotationRow(rows[0])
	if err != nil {
		return Quote{}, &RowError{Sheet: QuotationsSheet.Name, Row: rowNum, Err: err}
	}
	return q, nil
}

// UpdateQuotation overwrites the row holding q.QuotationNo with q. The row
// must already exist; the original creation time is kept. The lookup and
// the write are not isolated from concurrent writers.
func (s *QuoteStore) UpdateQuotation(ctx context.Context, q *Quote) error {
	q.QuotationNo = strings.TrimSpace(q.QuotationNo)
	q.Recompute()
	if err := q.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuote, err)
	}

	rowNum, err := s.FindRowIndex(ctx, q.QuotationNo)
	if err != nil {
		return fmt.Errorf("update quotation: %w", err)
	}
	span := QuotationsSheet.RowSpan(rowNum)

	if existing, err := s.backend.Read(ctx, QuotationsSheet.Name, span); err == nil && len(existing) > 0 {
		if created := cell(existing[0], 11); created != "" {
			q.CreatedAt = created
		}
	}
	q.UpdatedAt = s.now().UTC().Format(time.RFC3339)

	row, err := encodeQuotationRow(*q)
	if err != nil {
		return err
	}
	if err := s.backend.Update(ctx, QuotationsSheet.Name, span, row); err != nil {
		s.logger.Error("quotes: update failed", zap.String("quotation_no", q.QuotationNo), zap.Int("row", rowNum), zap.Error(err))
		return fmt.Errorf("update quotation %s: %w", q.QuotationNo, err)
	}
	s.logger.Info("quotes: updated", zap.String("quotation_no", q.QuotationNo), zap.Int("row", rowNum))
	return nil
}

// DeleteQuotation clears the row holding quotationNo. The row stays in
// place with empty cells.
func (s *QuoteStore) DeleteQuotation(ctx context.Context, quotationNo string) error {
	rowNum, err := s.FindRowIndex(ctx, quotationNo)
	if err != nil {
		return fmt.Errorf("delete quotation: %w", err)
	}
	if err := s.backend.Clear(ctx, QuotationsSheet.Name, QuotationsSheet.RowSpan(rowNum)); err != nil {
		s.logger.Error("quotes: delete failed", zap.String("quotation_no", quotationNo), zap.Int("row", rowNum), zap.Error(err))
		return fmt.Errorf("delete quotation %s: %w", quotationNo, err)
	}
	s.logger.Info("quotes: deleted", zap.String("quotation_no", quotationNo), zap.Int("row", rowNum))
	return nil
}

// SearchQuotations returns the quotations whose number or customer name
// contains query, ignoring case. An empty query matches every quotation.
// Rows with a malformed items blob are logged and skipped.
func (s *QuoteStore) SearchQuotations(ctx context.Context, query string) []Quote {
	rows, err := s.backend.Read(ctx, QuotationsSheet.Name, QuotationsSheet.DataSpan())
	if err != nil {
		s.logger.Warn("quotes: search failed", zap.Error(err))
		return []Quote{}
	}

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(query))

	results := []Quote{}
	for i, row := range rows {
		no := cell(row, 0)
		if no == "" {
			continue
		}
		if needle != "" &&
			!strings.Contains(fold.String(no), needle) &&
			!strings.Contains(fold.String(cell(row, 2)), needle) {
			continue
		}

		q, err := decodeQuotationRow(row)
		if err != nil {
			s.logger.Warn("quotes: search skipped row",
				zap.String("quotation_no", no),
				zap.Error(&RowError{Sheet: QuotationsSheet.Name, Row: i + 2, Err: err}),
			)
			continue
		}
		results = append(results, q)
	}
	return results
}
