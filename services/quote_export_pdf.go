package services

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	pdfInk       = &props.Color{Red: 33, Green: 37, Blue: 41}
	pdfMuted     = &props.Color{Red: 100, Green: 100, Blue: 100}
	pdfWhite     = &props.Color{Red: 255, Green: 255, Blue: 255}
	pdfLink      = &props.Color{Red: 13, Green: 110, Blue: 253}
	pdfSummaryBg = &props.Color{Red: 245, Green: 245, Blue: 245}
	pdfStripeBg  = &props.Color{Red: 248, Green: 249, Blue: 250}
)

// GenerateQuotePDF renders a quotation with maroto/v2.
func GenerateQuotePDF(data *QuoteExportData) ([]byte, error) {
	doc, err := newQuoteDocument(data).Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quotation PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// newQuoteDocument lays out a quotation. Sections appear in a fixed order:
// company header, number and date, customer, items, totals, amount in words,
// bank details, UPI payment and terms.
func newQuoteDocument(data *QuoteExportData) core.Maroto {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addQuoteCompanyHeader(m, data)
	addQuoteNumberDate(m, data)
	addQuoteCustomer(m, data)
	addQuoteItemsTable(m, data)
	addQuoteTotals(m, data)
	addQuoteAmountInWords(m, data)
	addQuoteBankDetails(m, data)
	addQuoteUPI(m, data)
	addQuoteTerms(m, data)
	return m
}

func sectionLabel() props.Text {
	return props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: pdfMuted}
}

func addQuoteCompanyHeader(m core.Maroto, data *QuoteExportData) {
	m.AddRows(
		row.New(10).Add(
			col.New(7).Add(text.New(data.CompanyName, props.Text{
				Size:  14,
				Style: fontstyle.Bold,
				Align: align.Left,
			})),
			col.New(5).Add(text.New("QUOTATION", props.Text{
				Size:  14,
				Style: fontstyle.Bold,
				Align: align.Right,
				Color: pdfInk,
			})),
		),
	)

	contact := joinNonEmpty([]string{data.CompanyAddress, data.CompanyPhone, data.CompanyEmail}, " | ")
	if contact != "" {
		m.AddRows(row.New(6).Add(col.New(12).Add(text.New(contact, props.Text{
			Size:  8,
			Align: align.Left,
			Color: pdfMuted,
		}))))
	}
	if data.CompanyGSTIN != "" {
		m.AddRows(row.New(6).Add(col.New(12).Add(text.New("GSTIN: "+data.CompanyGSTIN, props.Text{
			Size:  8,
			Align: align.Left,
			Color: pdfMuted,
		}))))
	}
	m.AddRows(row.New(3))
}

func addQuoteNumberDate(m core.Maroto, data *QuoteExportData) {
	label := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left}
	value := props.Text{Size: 8, Align: align.Left}
	m.AddRows(
		row.New(7).Add(
			col.New(2).Add(text.New("Quotation No:", label)),
			col.New(4).Add(text.New(data.QuotationNo, value)),
			col.New(2).Add(text.New("Date:", label)),
			col.New(4).Add(text.New(data.Date, value)),
		),
	)
	m.AddRows(row.New(3))
}

func addQuoteCustomer(m core.Maroto, data *QuoteExportData) {
	headerCell := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 243, Blue: 239}}
	value := props.Text{Size: 8, Align: align.Left}

	m.AddRows(row.New(7).Add(col.New(12).Add(text.New("QUOTATION FOR", sectionLabel())).WithStyle(headerCell)))
	m.AddRows(row.New(7).Add(col.New(12).Add(text.New(data.Customer.Name, props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Left,
	}))))

	for _, line := range []string{
		data.Customer.Address,
		fmtField("Mobile", data.Customer.Mobile),
		fmtField("GSTIN", data.Customer.GSTIN),
	} {
		if line == "" {
			continue
		}
		m.AddRows(row.New(6).Add(col.New(12).Add(text.New(line, value))))
	}
	m.AddRows(row.New(3))
}

// quoteTableAligns holds one alignment per QuoteItemHeaders column. Each
// column takes one slot of maroto's 12-slot grid.
var quoteTableAligns = []align.Type{
	align.Center, align.Left, align.Left, align.Center, align.Center, align.Center,
	align.Right, align.Right, align.Right, align.Center, align.Right, align.Right,
}

// quoteLineCells returns the printed cells of one item row.
func quoteLineCells(line QuoteExportLine) []string {
	return []string{
		fmt.Sprintf("%d", line.Index),
		line.FabricCode,
		line.Category,
		line.Width,
		line.Height,
		fmt.Sprintf("%d", line.Quantity),
		FormatSqft(line.Sqft),
		FormatINR(line.Rate),
		FormatINR(line.Amount),
		FormatPercent(line.GSTPercent),
		FormatINR(line.GSTAmount),
		FormatINR(line.LineTotal),
	}
}

func addQuoteItemsTable(m core.Maroto, data *QuoteExportData) {
	headerCell := &props.Cell{BackgroundColor: pdfInk}
	header := make([]core.Col, len(QuoteItemHeaders))
	for i, title := range QuoteItemHeaders {
		header[i] = col.New(1).Add(text.New(title, props.Text{
			Size:  6,
			Style: fontstyle.Bold,
			Align: quoteTableAligns[i],
			Color: pdfWhite,
		})).WithStyle(headerCell)
	}
	m.AddRows(row.New(8).Add(header...))

	for i, line := range data.Lines {
		var stripe *props.Cell
		if i%2 == 1 {
			stripe = &props.Cell{BackgroundColor: pdfStripeBg}
		}

		values := quoteLineCells(line)
		cols := make([]core.Col, len(values))
		for j, v := range values {
			cols[j] = col.New(1).Add(text.New(v, props.Text{Size: 6, Align: quoteTableAligns[j]}))
			if stripe != nil {
				cols[j] = cols[j].WithStyle(stripe)
			}
		}
		m.AddRows(row.New(8).Add(cols...))
	}
	m.AddRows(row.New(2))
}

func addQuoteTotals(m core.Maroto, data *QuoteExportData) {
	summaryCell := &props.Cell{BackgroundColor: pdfSummaryBg}
	label := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	value := props.Text{Size: 8, Align: align.Right}

	addLine := func(l, v string) {
		m.AddRows(row.New(7).Add(
			col.New(9).Add(text.New(l, label)).WithStyle(summaryCell),
			col.New(3).Add(text.New(v, value)).WithStyle(summaryCell),
		))
	}

	addLine("Subtotal", FormatINR(data.Subtotal))
	for _, g := range data.GSTLines {
		addLine("GST "+g.Label, FormatINR(g.Amount))
	}

	grandCell := &props.Cell{BackgroundColor: pdfInk}
	grand := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: pdfWhite}
	m.AddRows(row.New(8).Add(
		col.New(9).Add(text.New("Grand Total", grand)).WithStyle(grandCell),
		col.New(3).Add(text.New(FormatRupees(data.GrandTotal), grand)).WithStyle(grandCell),
	))
	m.AddRows(row.New(3))
}

func addQuoteAmountInWords(m core.Maroto, data *QuoteExportData) {
	if data.AmountInWords == "" {
		return
	}
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Amount in Words: "+data.AmountInWords, props.Text{
			Size:  8,
			Style: fontstyle.BoldItalic,
			Align: align.Left,
		}),
	)))
	m.AddRows(row.New(3))
}

func addQuoteBankDetails(m core.Maroto, data *QuoteExportData) {
	bankRows := []struct{ label, value string }{
		{"Account Name", data.BankAccountName},
		{"Bank Name", data.BankName},
		{"Account No", data.BankAccountNo},
		{"IFSC Code", data.BankIFSC},
		{"Branch", data.BankBranch},
	}
	has := false
	for _, br := range bankRows {
		if br.value != "" {
			has = true
			break
		}
	}
	if !has {
		return
	}

	m.AddRows(row.New(7).Add(col.New(12).Add(text.New("BANK TRANSFER", sectionLabel()))))
	fieldLabel := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: pdfMuted}
	fieldValue := props.Text{Size: 8, Align: align.Left}
	for _, br := range bankRows {
		if br.value == "" {
			continue
		}
		m.AddRows(row.New(6).Add(
			col.New(3).Add(text.New(br.label, fieldLabel)),
			col.New(9).Add(text.New(br.value, fieldValue)),
		))
	}
	m.AddRows(row.New(3))
}

func addQuoteUPI(m core.Maroto, data *QuoteExportData) {
	if data.UPILink == "" {
		return
	}
	link := data.UPILink

	m.AddRows(row.New(7).Add(col.New(12).Add(text.New("PAY BY UPI", sectionLabel()))))
	m.AddRows(row.New(30).Add(
		col.New(8).Add(
			text.New("UPI ID: "+data.UPIID, props.Text{Size: 8, Align: align.Left}),
			text.New("Tap to pay "+FormatINR(data.GrandTotal), props.Text{
				Top:       6,
				Size:      8,
				Style:     fontstyle.Bold,
				Align:     align.Left,
				Color:     pdfLink,
				Hyperlink: &link,
			}),
			text.New(link, props.Text{Top: 12, Size: 6, Align: align.Left, Color: pdfMuted, Hyperlink: &link}),
		),
		code.NewQrCol(4, link, props.Rect{Center: true, Percent: 90}),
	))
	m.AddRows(row.New(3))
}

func addQuoteTerms(m core.Maroto, data *QuoteExportData) {
	if data.Notes == "" && len(data.Terms) == 0 {
		return
	}
	value := props.Text{Size: 8, Align: align.Left}

	if data.Notes != "" {
		m.AddRows(row.New(6).Add(col.New(12).Add(text.New("NOTES", sectionLabel()))))
		m.AddRows(row.New(7).Add(col.New(12).Add(text.New(data.Notes, value))))
	}
	if len(data.Terms) > 0 {
		m.AddRows(row.New(7).Add(col.New(12).Add(text.New("TERMS & CONDITIONS", props.Text{
			Size:  8,
			Style: fontstyle.Bold,
			Align: align.Left,
			Color: pdfInk,
		}))))
		for i, term := range data.Terms {
			m.AddRows(row.New(6).Add(col.New(12).Add(
				text.New(fmt.Sprintf("%d. %s", i+1, strings.TrimSpace(term)), value),
			)))
		}
	}
}

// joinNonEmpty joins the non-empty parts with sep.
func joinNonEmpty(parts []string, sep string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, sep)
}

// fmtField returns "label: value", or "" when value is empty.
func fmtField(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}
