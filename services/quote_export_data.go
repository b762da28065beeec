package services

import (
	"fmt"
	"strings"
	"time"
)

// QuoteExportData holds everything printed on a quotation document.
type QuoteExportData struct {
	// Company
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string
	CompanyGSTIN   string

	// Header
	QuotationNo string
	Date        string

	Customer Customer

	Lines []QuoteExportLine

	// Totals
	Subtotal      float64
	GSTLines      []GSTLine
	TotalGST      float64
	GrandTotal    float64
	AmountInWords string

	// Payment
	BankAccountName string
	BankName        string
	BankAccountNo   string
	BankIFSC        string
	BankBranch      string
	UPIID           string
	UPILink         string

	Notes string
	Terms []string
}

// QuoteItemHeaders are the item table columns of every quotation document,
// in print order.
var QuoteItemHeaders = []string{
	"#", "Fabric Code", "Category", "Width", "Height", "Qty",
	"Sqft", "Rate", "Amount", "GST%", "GST Amt", "Line Total",
}

// QuoteExportLine is one printed item row.
type QuoteExportLine struct {
	Index      int
	FabricCode string
	Category   string
	Width      string
	Height     string
	Quantity   int
	Sqft       float64
	Rate       float64
	Amount     float64
	GSTPercent float64
	GSTAmount  float64
	LineTotal  float64
}

// BuildQuoteExportData assembles the printable view of q. Items and totals
// are recomputed first so the document always matches its lines.
func BuildQuoteExportData(q Quote, settings SiteSettings) *QuoteExportData {
	q.Recompute()

	lines := make([]QuoteExportLine, len(q.Items))
	for i, item := range q.Items {
		lines[i] = QuoteExportLine{
			Index:      i + 1,
			FabricCode: item.FabricCode,
			Category:   item.Category,
			Width:      formatDimension(item.Width, item.Unit, false),
			Height:     formatDimension(item.Height, item.Unit, item.AddSixInches),
			Quantity:   item.Quantity,
			Sqft:       item.Sqft,
			Rate:       item.Rate,
			Amount:     item.Amount,
			GSTPercent: item.GSTPercent,
			GSTAmount:  item.GSTAmount,
			LineTotal:  item.LineTotal,
		}
	}

	data := &QuoteExportData{
		CompanyName:    settings.CompanyName,
		CompanyAddress: settings.CompanyAddress,
		CompanyPhone:   settings.CompanyPhone,
		CompanyEmail:   settings.CompanyEmail,
		CompanyGSTIN:   settings.CompanyGSTIN,

		QuotationNo: q.QuotationNo,
		Date:        displayDate(q.DateISO),
		Customer:    q.Customer,
		Lines:       lines,

		Subtotal:      q.Subtotal,
		GSTLines:      GSTBreakdownLines(q.Items),
		TotalGST:      q.TotalGST,
		GrandTotal:    q.GrandTotal,
		AmountInWords: AmountInWords(q.GrandTotal),

		BankAccountName: settings.BankAccountName,
		BankName:        settings.BankName,
		BankAccountNo:   settings.BankAccountNo,
		BankIFSC:        settings.BankIFSC,
		BankBranch:      settings.BankBranch,
		UPIID:           settings.UPIID,

		Notes: q.Notes,
		Terms: settings.Terms,
	}
	if settings.UPIID != "" {
		data.UPILink = BuildUPILink(settings.UPIID, settings.CompanyName, q.GrandTotal)
	}
	return data
}

// QuoteFilename returns "<quotationNo>.<ext>" with path separators removed.
func QuoteFilename(quotationNo, ext string) string {
	name := strings.NewReplacer("/", "-", "\\", "-", "\"", "").Replace(strings.TrimSpace(quotationNo))
	if name == "" {
		name = "quotation"
	}
	return name + "." + ext
}

// formatDimension renders a measurement such as `48 inch` or, with the hem
// allowance, `84 inch + 6"`.
func formatDimension(v float64, unit Unit, hem bool) string {
	s := fmt.Sprintf("%s %s", formatQty(v), unit)
	if hem {
		s += ` + 6"`
	}
	return s
}

// displayDate turns 2026-03-14 into 14 Mar 2026; other values are returned
// unchanged.
func displayDate(iso string) string {
	t, err := time.Parse(dateLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006")
}
