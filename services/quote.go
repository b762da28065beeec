package services

import (
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Product is a fabric listed on the Products sheet.
type Product struct {
	Name        string  `json:"name"`
	RatePerSqft float64 `json:"ratePerSqft"`
	GSTPercent  float64 `json:"gstPercent"`
}

// Customer is a buyer listed on the Customers sheet.
type Customer struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Mobile  string `json:"mobile,omitempty"`
	GSTIN   string `json:"gstin,omitempty"`
}

// QuoteItem is one line of a quotation. Sqft, Amount, GSTAmount and
// LineTotal are derived and only ever set together by RecomputeItem.
type QuoteItem struct {
	ID           string  `json:"id"`
	FabricCode   string  `json:"fabricCode"`
	Category     string  `json:"category,omitempty"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Unit         Unit    `json:"unit"`
	Quantity     int     `json:"quantity"`
	AddSixInches bool    `json:"addSixInches"`
	Sqft         float64 `json:"sqft"`
	Rate         float64 `json:"rate"`
	GSTPercent   float64 `json:"gstPercent"`
	Amount       float64 `json:"amount"`
	GSTAmount    float64 `json:"gstAmount"`
	LineTotal    float64 `json:"lineTotal"`
	Notes        string  `json:"notes,omitempty"`
}

// Quote is a quotation as stored on the Quotations sheet.
type Quote struct {
	QuotationNo string      `json:"quotationNo"`
	DateISO     string      `json:"date"`
	Customer    Customer    `json:"customer"`
	Items       []QuoteItem `json:"items"`
	Subtotal    float64     `json:"subtotal"`
	TotalGST    float64     `json:"totalGst"`
	GrandTotal  float64     `json:"grandTotal"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   string      `json:"createdAt,omitempty"`
	UpdatedAt   string      `json:"updatedAt,omitempty"`
}

// Totals are the aggregate amounts of a quotation.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	TotalGST   float64 `json:"totalGst"`
	GrandTotal float64 `json:"grandTotal"`
}

// GSTLine is one rate of the tax breakdown.
type GSTLine struct {
	Label  string  `json:"label"`
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

// NewQuoteItem creates a line for product, snapshotting its rate and GST so
// later catalogue changes do not alter the quotation.
func NewQuoteItem(p Product, width, height float64, unit Unit, qty int, addHem bool) QuoteItem {
	return RecomputeItem(QuoteItem{
		ID:           uuid.NewString(),
		FabricCode:   p.Name,
		Width:        width,
		Height:       height,
		Unit:         unit,
		Quantity:     qty,
		AddSixInches: addHem,
		Rate:         p.RatePerSqft,
		GSTPercent:   p.GSTPercent,
	})
}

// RecomputeItem returns item with its derived amounts recalculated from the
// dimensions, quantity, rate and GST percent.
func RecomputeItem(item QuoteItem) QuoteItem {
	item.Sqft = ComputeArea(item.Width, item.Height, item.Unit, item.AddSixInches)
	item.Amount = item.Sqft * item.Rate * float64(item.Quantity)
	item.GSTAmount = item.Amount * item.GSTPercent / 100
	item.LineTotal = item.Amount + item.GSTAmount
	return item
}

// RecomputeItems recomputes every item, assigning ids to items that have none.
func RecomputeItems(items []QuoteItem) []QuoteItem {
	out := make([]QuoteItem, len(items))
	for i, item := range items {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		out[i] = RecomputeItem(item)
	}
	return out
}

// RecomputeTotals sums the item amounts.
func RecomputeTotals(items []QuoteItem) Totals {
	var t Totals
	for _, item := range items {
		t.Subtotal += item.Amount
		t.TotalGST += item.GSTAmount
	}
	t.GrandTotal = t.Subtotal + t.TotalGST
	return t
}

// GSTBreakdown sums GST amounts per rate, keyed like "18%".
func GSTBreakdown(items []QuoteItem) map[string]float64 {
	out := make(map[string]float64)
	for _, item := range items {
		out[FormatPercent(item.GSTPercent)] += item.GSTAmount
	}
	return out
}

// GSTBreakdownLines is GSTBreakdown as a slice ordered by rate, for display.
func GSTBreakdownLines(items []QuoteItem) []GSTLine {
	rates := make(map[string]float64)
	for _, item := range items {
		rates[FormatPercent(item.GSTPercent)] = item.GSTPercent
	}

	breakdown := GSTBreakdown(items)
	lines := make([]GSTLine, 0, len(breakdown))
	for label, amount := range breakdown {
		lines = append(lines, GSTLine{Label: label, Rate: rates[label], Amount: amount})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Rate < lines[j].Rate })
	return lines
}

// Recompute refreshes every item and the quote totals in one step.
func (q *Quote) Recompute() {
	q.Items = RecomputeItems(q.Items)
	q.SetTotals(RecomputeTotals(q.Items))
}

// Totals returns the quote's aggregate amounts.
func (q Quote) Totals() Totals {
	return Totals{Subtotal: q.Subtotal, TotalGST: q.TotalGST, GrandTotal: q.GrandTotal}
}

// SetTotals copies t onto the quote.
func (q *Quote) SetTotals(t Totals) {
	q.Subtotal = t.Subtotal
	q.TotalGST = t.TotalGST
	q.GrandTotal = t.GrandTotal
}

// ItemEdit is a partial change to a QuoteItem; nil fields are left alone.
// Setting Product re-snapshots the fabric code, rate and GST percent.
type ItemEdit struct {
	Product      *Product `json:"product,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Width        *float64 `json:"width,omitempty"`
	Height       *float64 `json:"height,omitempty"`
	Unit         *Unit    `json:"unit,omitempty"`
	Quantity     *int     `json:"quantity,omitempty"`
	AddSixInches *bool    `json:"addSixInches,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}

// ApplyItemEdit applies edit to item. Derived amounts are recomputed when a
// field they depend on was touched; free-text edits pass through unchanged.
func ApplyItemEdit(item QuoteItem, edit ItemEdit) QuoteItem {
	pricing := false

	if edit.Product != nil {
		item.FabricCode = edit.Product.Name
		item.Rate = edit.Product.RatePerSqft
		item.GSTPercent = edit.Product.GSTPercent
		pricing = true
	}
	if edit.Width != nil {
		item.Width = *edit.Width
		pricing = true
	}
	if edit.Height != nil {
		item.Height = *edit.Height
		pricing = true
	}
	if edit.Unit != nil {
		item.Unit = *edit.Unit
		pricing = true
	}
	if edit.Quantity != nil {
		item.Quantity = *edit.Quantity
		pricing = true
	}
	if edit.AddSixInches != nil {
		item.AddSixInches = *edit.AddSixInches
		pricing = true
	}
	if edit.Category != nil {
		item.Category = *edit.Category
	}
	if edit.Notes != nil {
		item.Notes = *edit.Notes
	}

	if pricing {
		return RecomputeItem(item)
	}
	return item
}

// Upper bounds of a quotation line. They keep every amount, and the sum of
// MaxQuoteItems lines, finite and within int64 rupees.
const (
	MaxDimension  = 10000.0
	MaxQuantity   = 1000
	MaxRate       = 100000.0
	MaxQuoteItems = 200
)

// Validate checks a single line.
func (i QuoteItem) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.FabricCode, validation.Required),
		validation.Field(&i.Width, validation.Min(0.0), validation.Max(MaxDimension)),
		validation.Field(&i.Height, validation.Min(0.0), validation.Max(MaxDimension)),
		validation.Field(&i.Unit, validation.Required, validation.In(unitValues()...)),
		validation.Field(&i.Quantity, validation.Required, validation.Min(1), validation.Max(MaxQuantity)),
		validation.Field(&i.Rate, validation.Min(0.0), validation.Max(MaxRate)),
		validation.Field(&i.GSTPercent, validation.Min(0.0), validation.Max(100.0)),
	)
}

func unitValues() []any {
	units := Units()
	values := make([]any, len(units))
	for i, u := range units {
		values[i] = u
	}
	return values
}

// Validate checks the quotation header, customer and every line.
func (q Quote) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.QuotationNo, validation.Required),
		validation.Field(&q.DateISO, validation.Required, validation.Date(dateLayout)),
		validation.Field(&q.Customer),
		validation.Field(&q.Items, validation.Required, validation.Length(1, MaxQuoteItems)),
	)
}

const dateLayout = "2006-01-02"
